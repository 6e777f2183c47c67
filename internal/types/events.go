package types

import "time"

// StatusEvent is published after a status export.
type StatusEvent struct {
	SSCC       string    `json:"sscc"`
	Status     string    `json:"status"`
	Code       int       `json:"code"`
	File       string    `json:"file"`
	Uploaded   bool      `json:"uploaded"`
	ExportedAt time.Time `json:"exported_at"`
}
