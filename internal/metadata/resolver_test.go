package metadata

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bogem/id3v2/v2"
)

// writeAudioFile creates a fake MP3 file, optionally with ID3v2 frames.
func writeAudioFile(t *testing.T, dir, name string, frames map[string]string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("not really audio data"), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	if len(frames) == 0 {
		return path
	}

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		t.Fatalf("failed to open fixture for tagging: %v", err)
	}
	defer tag.Close()

	for id, text := range frames {
		tag.AddTextFrame(tag.CommonID(id), tag.DefaultEncoding(), text)
	}
	if err := tag.Save(); err != nil {
		t.Fatalf("failed to save tag: %v", err)
	}

	return path
}

func TestResolver(t *testing.T) {
	resolver := NewResolver(nil)

	t.Run("Tagged File", func(t *testing.T) {
		path := writeAudioFile(t, t.TempDir(), "track01.mp3", map[string]string{
			"Artist": "AJ Tracey",
			"Title":  "Ladbroke Grove",
		})

		id := resolver.Resolve(path)

		if id.Source != SourceTag {
			t.Errorf("expected source tag, got %s", id.Source)
		}
		if id.Artist != "AJ Tracey" || id.Title != "Ladbroke Grove" {
			t.Errorf("unexpected identity: %s", id)
		}
	})

	t.Run("Tag Text Is Trimmed", func(t *testing.T) {
		path := writeAudioFile(t, t.TempDir(), "track02.mp3", map[string]string{
			"Artist": "  Little Simz  ",
			"Title":  " Venom ",
		})

		id := resolver.Resolve(path)

		if id.Artist != "Little Simz" || id.Title != "Venom" {
			t.Errorf("expected trimmed identity, got %q / %q", id.Artist, id.Title)
		}
		if id.Source != SourceTag {
			t.Errorf("expected source tag, got %s", id.Source)
		}
	})

	t.Run("Album Artist Fallback", func(t *testing.T) {
		path := writeAudioFile(t, t.TempDir(), "track03.mp3", map[string]string{
			"Band/Orchestra/Accompaniment": "Gorillaz",
			"Title":                        "On Melancholy Hill",
		})

		id := resolver.Resolve(path)

		if id.Artist != "Gorillaz" {
			t.Errorf("expected TPE2 fallback artist, got %q", id.Artist)
		}
		if id.Source != SourceTag {
			t.Errorf("expected source tag, got %s", id.Source)
		}
	})

	t.Run("Filename Pattern", func(t *testing.T) {
		path := writeAudioFile(t, t.TempDir(), "Dave - Location.mp3", nil)

		id := resolver.Resolve(path)

		if id.Source != SourceFilename {
			t.Errorf("expected source filename, got %s", id.Source)
		}
		if id.Artist != "Dave" || id.Title != "Location" {
			t.Errorf("unexpected identity: %s", id)
		}
	})

	t.Run("Filename Pattern Splits On First Separator", func(t *testing.T) {
		path := writeAudioFile(t, t.TempDir(), "Run - DMC - Walk This Way.mp3", nil)

		id := resolver.Resolve(path)

		if id.Artist != "Run" || id.Title != "DMC - Walk This Way" {
			t.Errorf("unexpected identity: %s", id)
		}
	})

	t.Run("Partial Tags Merge With Filename", func(t *testing.T) {
		path := writeAudioFile(t, t.TempDir(), "Wrong Artist - Feel Good Inc.mp3", map[string]string{
			"Artist": "Gorillaz",
		})

		id := resolver.Resolve(path)

		if id.Artist != "Gorillaz" {
			t.Errorf("tag artist should win, got %q", id.Artist)
		}
		if id.Title != "Feel Good Inc" {
			t.Errorf("expected filename title, got %q", id.Title)
		}
		if id.Source != SourceFilename {
			t.Errorf("expected source filename, got %s", id.Source)
		}
	})

	t.Run("Fallback", func(t *testing.T) {
		path := writeAudioFile(t, t.TempDir(), "live_recording.mp3", nil)

		id := resolver.Resolve(path)

		if id.Source != SourceFallback {
			t.Errorf("expected source fallback, got %s", id.Source)
		}
		if id.Artist != UnknownArtist {
			t.Errorf("expected unknown artist, got %q", id.Artist)
		}
		if id.Title != "live_recording" {
			t.Errorf("expected base name title, got %q", id.Title)
		}
	})

	t.Run("Missing File Never Fails", func(t *testing.T) {
		id := resolver.Resolve(filepath.Join(t.TempDir(), "Nines - Clout.mp3"))

		if id.Source != SourceFilename {
			t.Errorf("expected source filename, got %s", id.Source)
		}
		if id.Artist != "Nines" || id.Title != "Clout" {
			t.Errorf("unexpected identity: %s", id)
		}
	})
}

func TestSplitArtistTitle(t *testing.T) {
	tc := []struct {
		name   string
		base   string
		artist string
		title  string
		ok     bool
	}{
		{name: "basic", base: "Artist - Title", artist: "Artist", title: "Title", ok: true},
		{name: "no separator", base: "just_a_title", ok: false},
		{name: "hyphen without spaces", base: "Artist-Title", ok: false},
		{name: "empty artist", base: " - Title", ok: false},
		{name: "empty title", base: "Artist -  ", ok: false},
		{name: "extra whitespace", base: "  Artist  -  Title  ", artist: "Artist", title: "Title", ok: true},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			artist, title, ok := splitArtistTitle(tt.base)
			if ok != tt.ok {
				t.Fatalf("splitArtistTitle(%q) ok = %v, want %v", tt.base, ok, tt.ok)
			}
			if artist != tt.artist || title != tt.title {
				t.Errorf("splitArtistTitle(%q) = %q, %q, want %q, %q", tt.base, artist, title, tt.artist, tt.title)
			}
		})
	}
}
