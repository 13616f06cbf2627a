package gateway

import (
	"time"

	"github.com/mikestefanello/backlite"
)

type TaskType uint8

const (
	Fetch TaskType = iota
	Deliver
)

// Task is a unit of federation work. A Fetch task discovers an actor; a
// Deliver task posts a serialized activity to one inbox. Next chains a
// follow-up task that is enqueued once this one succeeds, which lets a
// delivery wait for the discovery of its receiver.
type Task struct {
	Type    TaskType
	To      string
	From    string
	Inbox   string
	Payload map[string]any
	Next    *Task
}

func (t Task) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "tasks",
		MaxAttempts: 5,
		Backoff:     5 * time.Second,
		Timeout:     10 * time.Second,
		Retention: &backlite.Retention{
			Duration:   12 * time.Hour,
			OnlyFailed: false,
			Data: &backlite.RetainData{
				OnlyFailed: true,
			},
		},
	}
}
