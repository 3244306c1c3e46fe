// Package entry parses raw list-response lines of the form
// "<timestamp>:<identifier>" into typed values. The timestamp is a string of
// digits counting microseconds since epoch; it is used for filtering and
// display only, never for ordering.
package entry

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/viant/parsly"
)

// Entry is a parsed (timestamp, identifier) pair from a raw list response.
type Entry struct {
	Timestamp  string
	Identifier string
}

// Key rebuilds the key addressing the secondary operation. The key is
// re-paired from the parsed fields rather than reused verbatim from the raw
// line so that parsing stays decoupled from the addressing format.
func (e Entry) Key() string {
	return e.Timestamp + ":" + e.Identifier
}

// Time converts the microsecond timestamp to wall-clock time.
func (e Entry) Time() time.Time {
	micros, err := strconv.ParseInt(e.Timestamp, 10, 64)
	if err != nil {
		return time.Time{}
	}
	return time.UnixMicro(micros)
}

// Filter selects entries for fan-out.
type Filter func(Entry) bool

// ByTimestamp returns a filter matching the exact timestamp, or a
// pass-through-all filter when timestamp is empty.
func ByTimestamp(timestamp string) Filter {
	if timestamp == "" {
		return func(Entry) bool { return true }
	}
	return func(e Entry) bool { return e.Timestamp == timestamp }
}

// ParseLine parses a single "<timestamp>:<identifier>" line.
func ParseLine(line string) (Entry, error) {
	cursor := parsly.NewCursor("", []byte(line), 0)

	matched := cursor.MatchOne(timestampToken)
	if matched.Code != timestampToken.Code {
		return Entry{}, cursor.NewError(timestampToken)
	}
	timestamp := matched.Text(cursor)

	matched = cursor.MatchOne(separatorToken)
	if matched.Code != separatorToken.Code {
		return Entry{}, cursor.NewError(separatorToken)
	}

	matched = cursor.MatchOne(identifierToken)
	if matched.Code != identifierToken.Code {
		return Entry{}, cursor.NewError(identifierToken)
	}
	return Entry{Timestamp: timestamp, Identifier: matched.Text(cursor)}, nil
}

// Parse extracts entries from a raw list chunk. Remote list calls deliver
// either a slice of lines or a single newline separated block.
func Parse(chunk interface{}) ([]Entry, error) {
	lines, err := linesOf(chunk)
	if err != nil {
		return nil, err
	}
	var entries []Entry
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		parsed, err := ParseLine(line)
		if err != nil {
			return nil, fmt.Errorf("failed to parse list entry %q: %w", line, err)
		}
		entries = append(entries, parsed)
	}
	return entries, nil
}

func linesOf(chunk interface{}) ([]string, error) {
	switch actual := chunk.(type) {
	case nil:
		return nil, nil
	case []string:
		return actual, nil
	case string:
		return strings.Split(actual, "\n"), nil
	case []byte:
		return strings.Split(string(actual), "\n"), nil
	case []interface{}:
		lines := make([]string, 0, len(actual))
		for _, item := range actual {
			line, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("unsupported list entry type %T", item)
			}
			lines = append(lines, line)
		}
		return lines, nil
	}
	return nil, fmt.Errorf("unsupported list chunk type %T", chunk)
}
