package types

import (
	"time"
)

// StatusUpdate is a single status change of an SSCC. It is built once and
// written once.
type StatusUpdate struct {
	sscc              string
	label             string
	code              int
	timestamp         time.Time
	user              string
	location          string
	workflowReference string
}

func NewStatusUpdate(sscc string, label string, code int, timestamp time.Time, user string, location string, workflowReference string) StatusUpdate {
	return StatusUpdate{
		sscc:              sscc,
		label:             label,
		code:              code,
		timestamp:         timestamp.Truncate(time.Second),
		user:              user,
		location:          location,
		workflowReference: workflowReference,
	}
}

func (s StatusUpdate) SSCC() string              { return s.sscc }
func (s StatusUpdate) Label() string             { return s.label }
func (s StatusUpdate) Code() int                 { return s.code }
func (s StatusUpdate) Timestamp() time.Time      { return s.timestamp }
func (s StatusUpdate) User() string              { return s.user }
func (s StatusUpdate) Location() string          { return s.location }
func (s StatusUpdate) WorkflowReference() string { return s.workflowReference }
