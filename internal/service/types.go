package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ResourceTasks is the only resource the backends serve.
const ResourceTasks = "tasks"

// AllID is the sentinel id that addresses every task in a delete.
const AllID ID = "all"

// ID identifies a task. Backends hand out numeric ids (SQLite, REST) or
// opaque strings (Google Tasks); both travel as ID.
type ID string

// MarshalJSON encodes all-digit ids as JSON numbers and anything else as a
// string, so {"id": 7} and {"id": "all"} round-trip unchanged.
func (id ID) MarshalJSON() ([]byte, error) {
	if isNumeric(string(id)) {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// UnmarshalJSON accepts either a JSON string or an integral JSON number.
// Numbers such as 1.5 or 1e3 are rejected.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid task id %s", data)
	}
	if _, err := n.Int64(); err != nil {
		return fmt.Errorf("invalid task id %s", data)
	}
	*id = ID(n.String())
	return nil
}

// Int64 returns the id as an integer for backends with numeric keys.
func (id ID) Int64() (int64, error) {
	n, err := strconv.ParseInt(string(id), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return n, nil
}

func (id ID) String() string { return string(id) }

func isNumeric(s string) bool {
	s = strings.TrimPrefix(s, "-")
	if s == "" || (len(s) > 1 && s[0] == '0') {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Task represents a single to-do item.
type Task struct {
	ID        ID     `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// NewTask is the body of a create call.
type NewTask struct {
	TaskName string `json:"taskName"`
}

// TaskUpdate is the body of an update call.
type TaskUpdate struct {
	ID        ID   `json:"id"`
	Completed bool `json:"completed"`
}

// TaskRef is the body of a delete call. ID may be AllID.
type TaskRef struct {
	ID ID `json:"id"`
}
