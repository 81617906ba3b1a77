// Package tasks holds the to-do list state: the ordered task store, the
// single edit session and the display filter, mirrored to one key-value
// slot after every change.
package tasks

import (
	"fmt"
	"strings"
)

type Task struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// Filter selects which tasks are visible.
type Filter string

const (
	FilterAll        Filter = "all"
	FilterCompleted  Filter = "completed"
	FilterIncomplete Filter = "incomplete"
)

// Filters lists every mode in display order.
func Filters() []Filter {
	return []Filter{FilterAll, FilterCompleted, FilterIncomplete}
}

func ParseFilter(v string) (Filter, error) {
	switch f := Filter(strings.ToLower(strings.TrimSpace(v))); f {
	case FilterAll, FilterCompleted, FilterIncomplete:
		return f, nil
	case "":
		return FilterAll, nil
	default:
		return FilterAll, fmt.Errorf("unknown filter %q (want all, completed or incomplete)", v)
	}
}

func (f Filter) Match(t Task) bool {
	switch f {
	case FilterCompleted:
		return t.Completed
	case FilterIncomplete:
		return !t.Completed
	default:
		return true
	}
}

// Next cycles all -> completed -> incomplete -> all.
func (f Filter) Next() Filter {
	switch f {
	case FilterAll:
		return FilterCompleted
	case FilterCompleted:
		return FilterIncomplete
	default:
		return FilterAll
	}
}

func (f Filter) Label() string {
	switch f {
	case FilterCompleted:
		return "Completed"
	case FilterIncomplete:
		return "Incomplete"
	default:
		return "All"
	}
}
