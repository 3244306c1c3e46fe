package crashlog

import (
	"time"

	"github.com/stratocloud/cascade/model/entry"
)

// Row is a crash-log entry prepared for display.
type Row struct {
	Timestamp  string
	Time       time.Time
	Identifier string
}

// Rows parses a raw list chunk into display rows, applying the optional
// timestamp filter. Row order follows the remote list order.
func Rows(chunk interface{}, timestamp string) ([]Row, error) {
	entries, err := entry.Parse(chunk)
	if err != nil {
		return nil, err
	}
	filter := entry.ByTimestamp(timestamp)
	var rows []Row
	for _, e := range entries {
		if !filter(e) {
			continue
		}
		rows = append(rows, Row{Timestamp: e.Timestamp, Time: e.Time(), Identifier: e.Identifier})
	}
	return rows, nil
}
