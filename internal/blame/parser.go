package blame

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// uncommittedPrefix is the revision git blame reports for lines that are not
// yet committed.
const uncommittedPrefix = "00000000"

// ErrUncommitted is returned by ParseLine for lines attributed to the
// uncommitted placeholder revision. Callers skip these lines.
var ErrUncommitted = errors.New("line is not committed")

// blameLine matches one line of `git blame -t` output:
//
//	^abc1234 path/file.go (Jane Doe 1490000000 +0100 12) code
//
// The boundary marker and the file name column are optional.
var blameLine = regexp.MustCompile(`^(\^?)(\S+) (?:[^\s(]\S*\s+)*\((.+?) +(\d+) \S+ +(\d+)\)`)

// RawRecord is one parsed line of line-history output.
type RawRecord struct {
	Revision  string
	Boundary  bool // git prefixed the revision with ^
	Author    string
	Timestamp int64
	Line      int
}

// FormatError reports line-history output that does not have the expected shape.
type FormatError struct {
	Text string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("unexpected blame output: %q", e.Text)
}

// ParseLine parses a single line of `git blame -t` output.
func ParseLine(text string) (RawRecord, error) {
	m := blameLine.FindStringSubmatch(text)
	if m == nil {
		return RawRecord{}, &FormatError{Text: text}
	}

	if strings.HasPrefix(m[2], uncommittedPrefix) {
		return RawRecord{}, ErrUncommitted
	}

	timestamp, err := strconv.ParseInt(m[4], 10, 64)
	if err != nil {
		return RawRecord{}, &FormatError{Text: text}
	}
	line, err := strconv.Atoi(m[5])
	if err != nil || line < 1 {
		return RawRecord{}, &FormatError{Text: text}
	}

	return RawRecord{
		Revision:  m[2],
		Boundary:  m[1] != "",
		Author:    strings.TrimSpace(m[3]),
		Timestamp: timestamp,
		Line:      line,
	}, nil
}
