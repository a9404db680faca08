package blame

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/dustin/go-humanize"
)

// Options configures an Annotator.
type Options struct {
	// Window is both the recency cutoff and the decay constant.
	Window time.Duration
	Color  ColorTemplate

	// Now defaults to time.Now.
	Now func() time.Time
	// Logger receives debug output. Nil discards it.
	Logger *log.Logger
}

// revisionRecord is what the scan remembers about a revision it has seen.
type revisionRecord struct {
	owner int    // line aliases to this revision point at
	log   string // empty for revisions older than the window
}

// Annotator turns line history into per-line annotations.
type Annotator struct {
	history LineHistorySource
	logs    RevisionLogSource
	window  time.Duration
	color   ColorTemplate
	now     func() time.Time
	logger  *log.Logger
}

// NewAnnotator creates an Annotator reading from the given sources.
func NewAnnotator(history LineHistorySource, logs RevisionLogSource, opts Options) *Annotator {
	a := &Annotator{
		history: history,
		logs:    logs,
		window:  opts.Window,
		color:   opts.Color,
		now:     opts.Now,
		logger:  opts.Logger,
	}
	if a.now == nil {
		a.now = time.Now
	}
	if a.logger == nil {
		a.logger = log.New(io.Discard, "", 0)
	}
	return a
}

// Annotate scans the history of path once, in line order.
//
// The first line of each recent revision gets a full record. Later lines of
// a revision alias to the start of the nearest preceding block of that
// revision; an alias that begins a new block also carries that block's start
// and becomes the owner for subsequent aliases. Revisions older than the
// window get no record of their own, but later lines may still alias to them.
func (a *Annotator) Annotate(ctx context.Context, path string) (Annotations, error) {
	now := a.now()
	out := make(Annotations)
	seen := make(map[string]*revisionRecord)

	var last string
	start, lastLine := 0, 0

	err := a.history.Blame(ctx, path, func(text string) error {
		rec, err := ParseLine(text)
		if errors.Is(err, ErrUncommitted) {
			return nil
		}
		if err != nil {
			return err
		}
		// Lines arrive in increasing order, each exactly once
		if rec.Line <= lastLine {
			return &FormatError{Text: text}
		}
		lastLine = rec.Line

		if rec.Revision != last {
			start = rec.Line
		}
		last = rec.Revision

		if prev, ok := seen[rec.Revision]; ok {
			alias := Record{Alias: prev.owner}
			if rec.Line == start {
				alias.Start = start
				prev.owner = start
			}
			if prev.log == "" {
				a.logger.Printf("[DEBUG] line %d aliases to untracked revision %s", rec.Line, rec.Revision)
			}
			out[rec.Line] = alias
			return nil
		}

		when := time.Unix(rec.Timestamp, 0)
		age := now.Sub(when)
		if age >= a.window {
			seen[rec.Revision] = &revisionRecord{owner: rec.Line}
			return nil
		}

		logText, err := a.logs.Log(ctx, rec.Revision)
		if err != nil {
			return fmt.Errorf("failed to read log for revision %s: %w", rec.Revision, err)
		}
		boundary := ""
		if rec.Boundary {
			boundary = " (boundary)"
		}
		a.logger.Printf("[DEBUG] line %d: revision %s%s by %s, changed %s",
			rec.Line, rec.Revision, boundary, rec.Author, humanize.RelTime(when, now, "ago", "from now"))

		seen[rec.Revision] = &revisionRecord{owner: rec.Line, log: logText}
		out[rec.Line] = Record{
			Start: start,
			Text:  logText,
			Color: a.color.Render(Intensity(age, a.window)),
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to annotate %s: %w", path, err)
	}

	return out, nil
}
