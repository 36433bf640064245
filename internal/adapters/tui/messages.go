package tui

import "time"

// MsgPlan announces tasks that are about to run.
type MsgPlan struct {
	Tasks []string
}

// MsgTaskStart is sent when a task span starts.
type MsgTaskStart struct {
	SpanID    string
	ParentID  string
	Name      string
	StartTime time.Time
}

// MsgTaskLog carries output of a running task.
type MsgTaskLog struct {
	SpanID string
	Data   []byte
}

// MsgTaskComplete is sent when a task span ends.
type MsgTaskComplete struct {
	SpanID  string
	EndTime time.Time
	Err     error
}

// MsgDone is sent when the build is over.
type MsgDone struct{}
