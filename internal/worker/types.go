package worker

import (
	domain "pdfshrink/internal/domain/compression"
)

// Message is one hand-off on a request's channel: zero or more progress
// messages followed by exactly one terminal message, which is either a
// result or an error string.
type Message struct {
	Progress *domain.ProgressUpdate `json:"progress,omitempty"`
	Result   *domain.Result         `json:"result,omitempty"`
	Error    string                 `json:"errorMessage,omitempty"`
}

// Terminal reports whether this message ends the request.
func (m Message) Terminal() bool {
	return m.Result != nil || m.Error != ""
}

// WorkItem represents a single file to be processed in a batch
type WorkItem struct {
	ID   string
	Path string
}
