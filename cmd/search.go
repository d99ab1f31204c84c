package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/lrcdl/internal/lrclib"
	"github.com/desertthunder/lrcdl/internal/shared"
	"github.com/urfave/cli/v3"
)

// Search queries the lyrics service for a track and lists the candidates.
//
// The query takes the "Artist - Title" form the batch resolver uses for
// filenames.
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	query := cmd.StringArg("query")
	if query == "" {
		return fmt.Errorf("%w: query", shared.ErrMissingArgument)
	}

	parts := strings.SplitN(query, " - ", 2)
	if len(parts) != 2 || strings.TrimSpace(parts[0]) == "" || strings.TrimSpace(parts[1]) == "" {
		return fmt.Errorf("%w: query must take the form 'Artist - Title'", shared.ErrInvalidArgument)
	}
	artist := strings.TrimSpace(parts[0])
	title := strings.TrimSpace(parts[1])

	r.logger.Info("searching lyrics service", "artist", artist, "title", title)

	candidates, err := r.client.Search(ctx, artist, title)
	if err != nil {
		return err
	}

	limit := cmd.Int("limit")
	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}

	if cmd.Bool("json") {
		return r.writeJSON(candidates, cmd.Bool("pretty"))
	}

	if len(candidates) == 0 {
		r.writePlain("No candidates found for %s - %s\n", artist, title)
		return nil
	}

	for i, c := range candidates {
		r.writePlain("%d. %s - %s%s [%s]\n", i+1, c.Artist, c.Title, albumSuffix(c), lyricsKind(c))
	}

	return nil
}

// Get performs an exact-signature lookup and prints the lyric text.
func (r *Runner) Get(ctx context.Context, cmd *cli.Command) error {
	artist := cmd.String("artist")
	title := cmd.String("title")

	r.logger.Info("fetching lyrics", "artist", artist, "title", title)

	candidate, err := r.client.Get(ctx, artist, title, cmd.String("album"), cmd.Int("duration"))
	if err != nil {
		return err
	}

	if candidate == nil {
		r.writePlain("No lyrics found for %s - %s\n", artist, title)
		return nil
	}

	if cmd.Bool("json") {
		return r.writeJSON(candidate, true)
	}

	if !candidate.HasLyrics() {
		r.writePlain("Record found for %s - %s but it carries no lyrics\n", candidate.Artist, candidate.Title)
		return nil
	}

	r.writePlain("%s\n", candidate.Content())
	return nil
}

func albumSuffix(c lrclib.Candidate) string {
	if c.Album == "" {
		return ""
	}
	return fmt.Sprintf(" (%s)", c.Album)
}

func lyricsKind(c lrclib.Candidate) string {
	switch {
	case strings.TrimSpace(c.Synced) != "":
		return "synced"
	case strings.TrimSpace(c.Plain) != "":
		return "plain"
	default:
		return "no lyrics"
	}
}
