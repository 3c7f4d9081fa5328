package domain

import (
	"fmt"
	"strings"
	"time"
)

type RunID string

// OrderEntry records how one order file was produced so it can be
// regenerated from its seed.
type OrderEntry struct {
	RunID       RunID
	LagSet      string
	Order       int
	Schedule    string
	Seed        uint64
	Attempt     int
	Path        string
	DebugPath   string
	TotalTrials int
	CreatedAt   time.Time
}

func (e OrderEntry) Validate() error {
	if strings.TrimSpace(string(e.RunID)) == "" {
		return fmt.Errorf("run id is required")
	}
	if strings.TrimSpace(e.LagSet) == "" {
		return fmt.Errorf("lag set is required")
	}
	if e.Order < 1 {
		return fmt.Errorf("order must be positive, got %d", e.Order)
	}
	if strings.TrimSpace(e.Path) == "" {
		return fmt.Errorf("path is required")
	}
	return nil
}
