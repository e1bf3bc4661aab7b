package model

import "time"

// Export is the decoded body of one exported message file.
type Export struct {
	Messages []Message `json:"messages"`
}

// Message is one entry of an export's "messages" list.
// Content and TimestampMs are pointers so that absent and null keys can be
// told apart from zero values.
type Message struct {
	TimestampMs *int64  `json:"timestamp_ms"`
	SenderName  string  `json:"sender_name"`
	Content     *string `json:"content"`
}

// HasContent reports whether the message carries non-empty text.
func (m Message) HasContent() bool {
	return m.Content != nil && *m.Content != ""
}

// Time converts timestamp_ms to a time.Time. ok is false when the key is missing.
func (m Message) Time() (t time.Time, ok bool) {
	if m.TimestampMs == nil {
		return time.Time{}, false
	}
	return time.UnixMilli(*m.TimestampMs), true
}

// Conversation identifies one exported chat thread on disk.
type Conversation struct {
	Folder string // raw folder name
	Name   string // display name written to the Conversation column
}
