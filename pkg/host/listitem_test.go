package host

import (
	"errors"
	"testing"

	"github.com/blckbxtv/rumbledir/models"
)

func sampleEmbed() *models.EmbedMetadata {
	return &models.EmbedMetadata{
		VideoID:   42,
		Title:     "Interview &amp; analyse",
		Author:    models.Author{Name: "BLCKBX"},
		Duration:  301,
		PubDate:   "2023-04-05T06:07:08+00:00",
		Thumbnail: "https://sp.rmbl.ws/thumb.jpg",
		Streams: models.StreamSet{
			"mp4": {
				"360": {URL: "https://cdn/v360.mp4", Meta: models.StreamMeta{Width: 640, Height: 360}},
				"720": {URL: "https://cdn/v720.mp4", Meta: models.StreamMeta{Width: 1280, Height: 720}},
				"480": {URL: "https://cdn/v480.mp4", Meta: models.StreamMeta{Width: 854, Height: 480}},
			},
		},
	}
}

func TestBuildEntry_BestStreamSelection(t *testing.T) {
	entry, err := BuildEntry(sampleEmbed(), "", nil)
	if err != nil {
		t.Fatalf("BuildEntry() error = %v", err)
	}
	if entry.PlayURL != "https://cdn/v720.mp4" {
		t.Errorf("PlayURL = %q, want the 720 variant", entry.PlayURL)
	}
	if entry.Stream.Height != 720 || entry.Stream.Width != 1280 {
		t.Errorf("stream dims = %dx%d, want 1280x720", entry.Stream.Width, entry.Stream.Height)
	}
	if entry.Stream.Codec != "mpeg4" {
		t.Errorf("codec = %q, want mpeg4", entry.Stream.Codec)
	}
}

func TestBuildEntry_DateFormats(t *testing.T) {
	entry, err := BuildEntry(sampleEmbed(), "", nil)
	if err != nil {
		t.Fatalf("BuildEntry() error = %v", err)
	}

	if entry.Date != "05.04.2023" {
		t.Errorf("Date = %q, want 05.04.2023", entry.Date)
	}
	if entry.Aired != "2023-04-05" {
		t.Errorf("Aired = %q, want 2023-04-05", entry.Aired)
	}
	if entry.DateAdded != "2023-04-05 06:07:08" {
		t.Errorf("DateAdded = %q, want 2023-04-05 06:07:08", entry.DateAdded)
	}
}

func TestBuildEntry_UnparsableDateLeavesFieldsEmpty(t *testing.T) {
	embed := sampleEmbed()
	embed.PubDate = "yesterday-ish"

	entry, err := BuildEntry(embed, "", nil)
	if err != nil {
		t.Fatalf("BuildEntry() error = %v", err)
	}
	if entry.Date != "" || entry.Aired != "" || entry.DateAdded != "" {
		t.Errorf("date fields = %q/%q/%q, want all empty", entry.Date, entry.Aired, entry.DateAdded)
	}
}

func TestBuildEntry_TitleAndPlot(t *testing.T) {
	tests := []struct {
		name        string
		description string
		wantPlot    string
	}{
		{"no description", "", "Interview & analyse"},
		{"with description", "Lange toelichting.", "Interview & analyse\n\nLange toelichting."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, err := BuildEntry(sampleEmbed(), tt.description, nil)
			if err != nil {
				t.Fatalf("BuildEntry() error = %v", err)
			}
			if entry.Label != "Interview & analyse" {
				t.Errorf("Label = %q, entities must be decoded", entry.Label)
			}
			if entry.Plot != tt.wantPlot {
				t.Errorf("Plot = %q, want %q", entry.Plot, tt.wantPlot)
			}
		})
	}
}

func TestBuildEntry_AuthorAttribution(t *testing.T) {
	entry, err := BuildEntry(sampleEmbed(), "", nil)
	if err != nil {
		t.Fatalf("BuildEntry() error = %v", err)
	}
	if entry.Studio != "BLCKBX" {
		t.Errorf("Studio = %q, want BLCKBX", entry.Studio)
	}
	if len(entry.Cast) != 1 || entry.Cast[0] != "BLCKBX" {
		t.Errorf("Cast = %v, want [BLCKBX]", entry.Cast)
	}
}

func TestBuildEntry_NoPlayableStream(t *testing.T) {
	embed := sampleEmbed()
	embed.Streams = models.StreamSet{"webm": {"720": {URL: "u"}}}

	_, err := BuildEntry(embed, "", nil)
	if !errors.Is(err, ErrNoPlayableStream) {
		t.Errorf("BuildEntry() error = %v, want ErrNoPlayableStream", err)
	}
}

func TestBuildEntry_NonNumericHeightSkipped(t *testing.T) {
	embed := sampleEmbed()
	embed.Streams["mp4"]["best"] = models.Stream{URL: "https://cdn/bogus.mp4"}

	entry, err := BuildEntry(embed, "", nil)
	if err != nil {
		t.Fatalf("BuildEntry() error = %v", err)
	}
	if entry.PlayURL != "https://cdn/v720.mp4" {
		t.Errorf("PlayURL = %q, non-numeric height keys must be ignored", entry.PlayURL)
	}
}
