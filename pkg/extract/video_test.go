package extract

import (
	"errors"
	"testing"
)

func TestDetail_EmbedURL(t *testing.T) {
	markup := `<script type="application/ld+json">` +
		`{"@type":"VideoObject","embedUrl":"https://rumble.com/embed/v4xyz9/","name":"clip"}` +
		`</script>`

	detail, err := Detail(markup)
	if err != nil {
		t.Fatalf("Detail() error = %v", err)
	}
	if detail.EmbedURL != "https://rumble.com/embed/v4xyz9/" {
		t.Errorf("EmbedURL = %q, want %q", detail.EmbedURL, "https://rumble.com/embed/v4xyz9/")
	}
}

func TestDetail_NoEmbedMarker(t *testing.T) {
	tests := []struct {
		name   string
		markup string
	}{
		{"empty body", ""},
		{"page without marker", "<html><body><h1>oops</h1></body></html>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			detail, err := Detail(tt.markup)
			if !errors.Is(err, ErrNoEmbedURL) {
				t.Errorf("Detail() error = %v, want ErrNoEmbedURL", err)
			}
			if detail.EmbedURL != "" {
				t.Errorf("EmbedURL = %q, want empty on miss", detail.EmbedURL)
			}
		})
	}
}

func TestDetail_Description(t *testing.T) {
	markup := `<div class="container">` +
		`<p class="media-description">First block with <b>bold</b> &amp; entities.</p>` +
		`<p class="media-description">Second block.</p>` +
		`<p class="other">ignored</p>` +
		`</div>` +
		`"embedUrl":"https://rumble.com/embed/v1/"`

	detail, err := Detail(markup)
	if err != nil {
		t.Fatalf("Detail() error = %v", err)
	}
	want := "First block with bold & entities.\n\nSecond block."
	if detail.Description != want {
		t.Errorf("Description = %q, want %q", detail.Description, want)
	}
}

func TestDetail_NoDescriptionIsEmpty(t *testing.T) {
	detail, err := Detail(`"embedUrl":"https://rumble.com/embed/v1/"`)
	if err != nil {
		t.Fatalf("Detail() error = %v", err)
	}
	if detail.Description != "" {
		t.Errorf("Description = %q, want empty", detail.Description)
	}
}
