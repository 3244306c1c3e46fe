package node

import (
	"fmt"

	"github.com/viant/structology/conv"
)

// AppInfo describes one application in a status snapshot.
type AppInfo struct {
	State   string `json:"state"`
	Profile string `json:"profile"`
}

// Snapshot is a decoded node status response.
type Snapshot struct {
	Apps map[string]AppInfo `json:"apps"`
}

// App returns the info for the named application and whether it is known.
func (s *Snapshot) App(name string) (AppInfo, bool) {
	if s == nil {
		return AppInfo{}, false
	}
	info, ok := s.Apps[name]
	return info, ok
}

var converter = newConverter()

func newConverter() *conv.Converter {
	options := conv.DefaultOptions()
	options.ClonePointerData = true
	options.IgnoreUnmapped = true
	return conv.NewConverter(options)
}

// SnapshotFrom decodes a raw info chunk into a typed snapshot. Remote
// services deliver the snapshot as a generic map; an already typed snapshot
// passes through.
func SnapshotFrom(chunk interface{}) (*Snapshot, error) {
	switch actual := chunk.(type) {
	case *Snapshot:
		return actual, nil
	case Snapshot:
		return &actual, nil
	}
	snapshot := &Snapshot{}
	if err := converter.Convert(chunk, snapshot); err != nil {
		return nil, fmt.Errorf("failed to decode status snapshot: %w", err)
	}
	return snapshot, nil
}
