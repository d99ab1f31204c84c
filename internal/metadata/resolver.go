// package metadata derives a canonical (artist, title) identity for audio files.
//
// Identity comes from embedded ID3 tags when present, then from an
// "Artist - Title" filename pattern, then from fallback values. Resolution
// never fails: every file gets a usable identity.
package metadata

import (
	"strings"

	"github.com/bogem/id3v2/v2"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/lrcdl/internal/shared"
)

// Source identifies where an [Identity] came from.
type Source string

const (
	SourceTag      Source = "tag"
	SourceFilename Source = "filename"
	SourceFallback Source = "fallback"
)

// UnknownArtist is substituted when no artist can be derived at all.
const UnknownArtist = "Unknown"

// Identity is the resolved (artist, title) pair for one audio file.
// Artist and Title are always non-empty and trimmed.
type Identity struct {
	Artist string
	Title  string
	Source Source
}

// String renders the identity as "Artist - Title" for logging and display.
func (i Identity) String() string {
	return i.Artist + " - " + i.Title
}

// Resolver extracts track identities from audio files.
type Resolver struct {
	logger *log.Logger
}

// NewResolver creates a Resolver. A nil logger falls back to the default shared logger.
func NewResolver(logger *log.Logger) *Resolver {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Resolver{logger: logger}
}

// Resolve produces an [Identity] for the audio file at path.
//
// Tag fields win per field; when the tags are incomplete the base name is
// parsed for an "Artist - Title" pattern, and whatever is still missing gets
// fallback values. Tag read errors are treated as "no tags present".
func (r *Resolver) Resolve(path string) Identity {
	artist, title := r.readTags(path)
	if artist != "" && title != "" {
		return Identity{Artist: artist, Title: title, Source: SourceTag}
	}

	base := shared.BaseName(path)
	if fArtist, fTitle, ok := splitArtistTitle(base); ok {
		if artist == "" {
			artist = fArtist
		}
		if title == "" {
			title = fTitle
		}
		return Identity{Artist: artist, Title: title, Source: SourceFilename}
	}

	if artist == "" {
		artist = UnknownArtist
	}
	if title == "" {
		title = strings.TrimSpace(base)
	}
	return Identity{Artist: artist, Title: title, Source: SourceFallback}
}

// readTags reads the artist and title frames from the file's ID3v2 block.
// Artist prefers TPE1, falling back to TPE2 (album artist). Any read failure
// is recovered as "no tags".
func (r *Resolver) readTags(path string) (artist, title string) {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		r.logger.Debug("no readable ID3 tags", "path", path, "err", err)
		return "", ""
	}
	defer tag.Close()

	artist = strings.TrimSpace(tag.Artist())
	if artist == "" {
		band := tag.GetTextFrame(tag.CommonID("Band/Orchestra/Accompaniment"))
		artist = strings.TrimSpace(band.Text)
	}
	title = strings.TrimSpace(tag.Title())

	return artist, title
}

// splitArtistTitle splits base on the first " - " separator.
func splitArtistTitle(base string) (artist, title string, ok bool) {
	parts := strings.SplitN(base, " - ", 2)
	if len(parts) != 2 {
		return "", "", false
	}

	artist = strings.TrimSpace(parts[0])
	title = strings.TrimSpace(parts[1])
	if artist == "" || title == "" {
		return "", "", false
	}

	return artist, title, true
}
