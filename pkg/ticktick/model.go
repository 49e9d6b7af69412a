package ticktick

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Flag is a boolean that also accepts the service's string encodings.
// The live API sends RRULE strings for repeatFlag; any non-empty string is true.
type Flag bool

// UnmarshalJSON implements the json.Unmarshaler interface for Flag.
func (f *Flag) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*f = false
		return nil
	case bytes.Equal(b, []byte("true")):
		*f = true
		return nil
	case bytes.Equal(b, []byte("false")):
		*f = false
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("failed to parse flag '%s': %w", string(b), err)
	}
	s = strings.TrimSpace(s)
	*f = Flag(s != "" && !strings.EqualFold(s, "false"))
	return nil
}

// Task is a task item as returned by the batch-check endpoint.
// Nullable timestamps decode to "".
type Task struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	ProjectID  string `json:"projectId"`
	DueDate    string `json:"dueDate"`
	RemindTime string `json:"remindTime"`
	Reminder   Flag   `json:"reminder"`
	RepeatFlag Flag   `json:"repeatFlag"`
	SortOrder  int64  `json:"sortOrder"`
}

// Project is an entry of the project list.
type Project struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type batchCheckResponse struct {
	SyncTaskBean struct {
		Update []Task `json:"update"`
	} `json:"syncTaskBean"`
}
