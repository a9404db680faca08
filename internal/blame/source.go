package blame

import "context"

// LineHistorySource produces line-history output for a file, one text line
// per source line, in line order.
type LineHistorySource interface {
	// Blame calls fn with each line of output as it becomes available.
	// An error returned by fn stops the scan and is returned by Blame.
	Blame(ctx context.Context, path string, fn func(line string) error) error
}

// RevisionLogSource returns the log entry (message and metadata) of a revision.
type RevisionLogSource interface {
	Log(ctx context.Context, revision string) (string, error)
}
