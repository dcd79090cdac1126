package model

import (
	"fmt"
	"time"
)

// ValidationError reports a malformed sample series. The run is aborted
// before any simulation state is touched.
type ValidationError struct {
	Index     int
	Field     string
	Msg       string
	Timestamp time.Time
}

func (e *ValidationError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("invalid series: %s: %s", e.Field, e.Msg)
	}
	if e.Timestamp.IsZero() {
		return fmt.Sprintf("invalid series: sample %d: %s %s", e.Index, e.Field, e.Msg)
	}
	return fmt.Sprintf("invalid series: sample %d (%s): %s %s",
		e.Index, e.Timestamp.Format("2006-01-02 15:04"), e.Field, e.Msg)
}
