package models

import (
	"fmt"
	"time"
)

const (
	PriorityLow    = "Low"
	PriorityMedium = "Medium"
	PriorityHigh   = "High"
)

// DefaultUserID is the identity assumed for callers that present no
// token. The dashboard is a single-user application; nothing validates
// this id against a user registry.
const DefaultUserID int64 = 1

type Todo struct {
	ID       int64
	Task     string
	DueDate  time.Time
	Priority string
	UserID   int64
}

func IsValidPriority(priority string) bool {
	return priority == PriorityLow ||
		priority == PriorityMedium ||
		priority == PriorityHigh
}

// ParseDueDate accepts a plain calendar date or an RFC 3339 timestamp
// and normalizes it to midnight UTC. Due dates are compared and
// displayed as dates even though the column is timestamp-capable.
func ParseDueDate(value string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		t, err = time.Parse(time.RFC3339, value)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid due date: %q", value)
		}
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}
