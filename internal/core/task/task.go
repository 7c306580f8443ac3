// Package task defines task collections and the operations that move tasks
// between the pending, completed and removed lists and merge collections.
package task

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Keys owned by Task. All other keys are carried in Fields untouched.
const (
	keyUUID     = "uuid"
	keyStart    = "start"
	keyEnd      = "end"
	keyModified = "modified"
)

// Task is a single task record.
//
// Timestamps are ISO-8601 strings kept exactly as read. End is empty unless
// the task is completed.
type Task struct {
	UUID     string
	Start    string
	End      string
	Modified string

	// Fields holds every other key of the record (text, priority, projects, ...).
	Fields map[string]json.RawMessage
}

// Completed reports whether the task carries an end timestamp.
func (t Task) Completed() bool {
	return t.End != ""
}

// Clone returns a copy of t that shares no memory with it.
func (t Task) Clone() Task {
	c := t
	if t.Fields != nil {
		c.Fields = make(map[string]json.RawMessage, len(t.Fields))
		for k, v := range t.Fields {
			c.Fields[k] = append(json.RawMessage(nil), v...)
		}
	}
	return c
}

// Field decodes the opaque field name into v. It returns false when the task
// has no such field.
func (t Task) Field(name string, v any) (bool, error) {
	raw, ok := t.Fields[name]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return true, fmt.Errorf("decode field %q: %w", name, err)
	}
	return true, nil
}

// SetField encodes v as the opaque field name.
func (t *Task) SetField(name string, v any) error {
	switch name {
	case keyUUID, keyStart, keyEnd, keyModified:
		return fmt.Errorf("field %q is not opaque", name)
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode field %q: %w", name, err)
	}
	if t.Fields == nil {
		t.Fields = make(map[string]json.RawMessage)
	}
	t.Fields[name] = raw
	return nil
}

// MarshalJSON flattens the known keys and Fields into one object.
func (t Task) MarshalJSON() ([]byte, error) {
	obj := make(map[string]any, len(t.Fields)+4)
	for k, v := range t.Fields {
		obj[k] = v
	}

	obj[keyUUID] = t.UUID
	obj[keyStart] = t.Start
	obj[keyModified] = t.Modified
	if t.End != "" {
		obj[keyEnd] = t.End
	}

	return json.Marshal(obj)
}

// UnmarshalJSON splits an object into the known keys and Fields.
// A null end is treated as absent. Field values are stored compacted.
func (t *Task) UnmarshalJSON(data []byte) error {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}

	var out Task
	for key, dst := range map[string]*string{
		keyUUID:     &out.UUID,
		keyStart:    &out.Start,
		keyEnd:      &out.End,
		keyModified: &out.Modified,
	} {
		raw, ok := obj[key]
		if !ok {
			continue
		}
		delete(obj, key)

		if string(raw) == "null" {
			continue
		}
		if err := json.Unmarshal(raw, dst); err != nil {
			return fmt.Errorf("task %s: %w", key, err)
		}
	}

	for k, v := range obj {
		var buf bytes.Buffer
		if err := json.Compact(&buf, v); err != nil {
			return fmt.Errorf("task field %s: %w", k, err)
		}
		if out.Fields == nil {
			out.Fields = make(map[string]json.RawMessage, len(obj))
		}
		out.Fields[k] = buf.Bytes()
	}

	*t = out
	return nil
}
