package host

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/blckbxtv/rumbledir/models"
)

// NDJSONDirectory emits the listing as newline-delimited JSON directives,
// one object per line: item entries, a sort directive, and an end marker.
type NDJSONDirectory struct {
	w io.Writer
}

func NewNDJSONDirectory(w io.Writer) *NDJSONDirectory {
	return &NDJSONDirectory{w: w}
}

type directive struct {
	Type   string            `json:"type"`
	Handle int               `json:"handle"`
	Method string            `json:"method,omitempty"`
	Item   *models.ListEntry `json:"item,omitempty"`
}

func (d *NDJSONDirectory) emit(dir directive) error {
	data, err := json.Marshal(dir)
	if err != nil {
		return fmt.Errorf("failed to encode directory directive: %w", err)
	}
	if _, err := fmt.Fprintln(d.w, string(data)); err != nil {
		return fmt.Errorf("failed to write directory directive: %w", err)
	}
	return nil
}

func (d *NDJSONDirectory) Add(handle int, entry models.ListEntry) error {
	return d.emit(directive{Type: "item", Handle: handle, Item: &entry})
}

func (d *NDJSONDirectory) SortByDateAdded(handle int) error {
	return d.emit(directive{Type: "sort", Handle: handle, Method: "dateadded"})
}

func (d *NDJSONDirectory) End(handle int) error {
	return d.emit(directive{Type: "end", Handle: handle})
}
