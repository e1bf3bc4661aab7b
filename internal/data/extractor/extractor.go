package extractor

import (
	"fmt"
	"strings"

	"github.com/penwyp/go-inbox-csv/internal/core/constants"
	"github.com/penwyp/go-inbox-csv/internal/core/encoding"
	"github.com/penwyp/go-inbox-csv/internal/core/model"
	"github.com/penwyp/go-inbox-csv/internal/util"
)

// EmptyContent selects what happens to messages without text
type EmptyContent string

const (
	// EmptyContentDrop emits no row for the message
	EmptyContentDrop EmptyContent = "drop"
	// EmptyContentPlaceholder emits a row reading "No content available"
	EmptyContentPlaceholder EmptyContent = "placeholder"
)

// ParseEmptyContent parses a flag value
func ParseEmptyContent(s string) (EmptyContent, error) {
	switch EmptyContent(strings.ToLower(strings.TrimSpace(s))) {
	case EmptyContentDrop:
		return EmptyContentDrop, nil
	case EmptyContentPlaceholder:
		return EmptyContentPlaceholder, nil
	default:
		return "", fmt.Errorf("invalid empty-content mode '%s' (valid: drop, placeholder)", s)
	}
}

// Stats counts what happened to the messages of one or more exports
type Stats struct {
	Messages         int `json:"messages"`
	Rows             int `json:"rows"`
	EmptySkipped     int `json:"empty_skipped"`
	EncodingFailures int `json:"encoding_failures"`
	EncodingSkipped  int `json:"encoding_skipped"`
}

// Add accumulates other into s
func (s *Stats) Add(other Stats) {
	s.Messages += other.Messages
	s.Rows += other.Rows
	s.EmptySkipped += other.EmptySkipped
	s.EncodingFailures += other.EncodingFailures
	s.EncodingSkipped += other.EncodingSkipped
}

// Extractor turns decoded messages into CSV rows
type Extractor struct {
	timeProvider *util.TimeProvider
	emptyContent EmptyContent
	policy       encoding.Policy
}

// New creates an Extractor. A nil time provider renders in the global timezone.
func New(timeProvider *util.TimeProvider, emptyContent EmptyContent, policy encoding.Policy) *Extractor {
	if timeProvider == nil {
		timeProvider = util.GetTimeProvider()
	}
	if emptyContent == "" {
		emptyContent = EmptyContentDrop
	}
	if policy == "" {
		policy = encoding.PolicyKeep
	}
	return &Extractor{
		timeProvider: timeProvider,
		emptyContent: emptyContent,
		policy:       policy,
	}
}

// Extract converts every message of export into rows tagged with conversation,
// in file order. It fails on a kept message without timestamp_ms, and on
// unrepairable text under encoding.PolicyAbort.
func (e *Extractor) Extract(export *model.Export, conversation string) ([]model.Row, Stats, error) {
	var stats Stats
	if export == nil {
		return nil, stats, nil
	}

	rows := make([]model.Row, 0, len(export.Messages))
	for i, msg := range export.Messages {
		stats.Messages++

		content := constants.NoContentAvailable
		placeholder := true
		if msg.HasContent() {
			content = *msg.Content
			placeholder = false
		} else if e.emptyContent == EmptyContentDrop {
			stats.EmptySkipped++
			continue
		}

		if msg.TimestampMs == nil {
			return nil, stats, fmt.Errorf("message %d: missing timestamp_ms", i)
		}
		dateTime := e.timeProvider.FormatMillis(*msg.TimestampMs, constants.DateTimeLayout)

		name, keep, err := e.senderName(msg.SenderName, &stats)
		if err != nil {
			return nil, stats, fmt.Errorf("message %d sender_name: %w", i, err)
		}
		if !keep {
			stats.EncodingSkipped++
			continue
		}

		if !placeholder {
			var failed bool
			content, keep, failed, err = e.policy.Apply(content)
			if failed {
				stats.EncodingFailures++
			}
			if err != nil {
				return nil, stats, fmt.Errorf("message %d content: %w", i, err)
			}
			if !keep {
				stats.EncodingSkipped++
				continue
			}
		}

		rows = append(rows, model.Row{
			DateTime:     dateTime,
			Name:         name,
			Content:      content,
			Conversation: conversation,
		})
		stats.Rows++
	}

	return rows, stats, nil
}

func (e *Extractor) senderName(raw string, stats *Stats) (string, bool, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return constants.UnknownName, true, nil
	}

	fixed, keep, failed, err := e.policy.Apply(name)
	if failed {
		stats.EncodingFailures++
		util.LogDebugf("Sender name left unrepaired: %q", name)
	}
	return fixed, keep, err
}
