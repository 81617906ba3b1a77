package main

import (
	"fmt"
	"strconv"
	"strings"
)

// notFoundError indicates no task has the requested id.
type notFoundError struct {
	ID int64
}

func (e *notFoundError) Error() string {
	return fmt.Sprintf("task %d not found", e.ID)
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid task id %q", s)
	}
	return id, nil
}
