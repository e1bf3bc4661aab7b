package fixtures

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ExportMessage is one message in the export format. Content is a pointer so
// fixtures can produce missing (nil) as well as empty content.
type ExportMessage struct {
	SenderName  string  `json:"sender_name"`
	TimestampMs int64   `json:"timestamp_ms"`
	Content     *string `json:"content,omitempty"`
	IsUnsent    bool    `json:"is_unsent,omitempty"`
}

type participant struct {
	Name string `json:"name"`
}

type exportFile struct {
	Participants []participant  `json:"participants"`
	Messages     []ExportMessage `json:"messages"`
	Title        string          `json:"title"`
}

// Text builds a message with content
func Text(sender string, at time.Time, content string) ExportMessage {
	return ExportMessage{SenderName: sender, TimestampMs: at.UnixMilli(), Content: &content}
}

// NoContent builds a message without a content key, like a photo or sticker
func NoContent(sender string, at time.Time) ExportMessage {
	return ExportMessage{SenderName: sender, TimestampMs: at.UnixMilli()}
}

// InboxGenerator writes export folders into a base directory
type InboxGenerator struct {
	baseDir string
}

func NewInboxGenerator(baseDir string) *InboxGenerator {
	return &InboxGenerator{baseDir: baseDir}
}

func (g *InboxGenerator) GetBaseDir() string {
	return g.baseDir
}

// FolderPath returns the path of a conversation folder
func (g *InboxGenerator) FolderPath(folder string) string {
	return filepath.Join(g.baseDir, folder)
}

// WriteConversation writes files as message_1.json, message_2.json, ... in folder
func (g *InboxGenerator) WriteConversation(folder string, files ...[]ExportMessage) error {
	dir := g.FolderPath(folder)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	for i, messages := range files {
		path := filepath.Join(dir, fmt.Sprintf("message_%d.json", i+1))
		if err := g.WriteExport(path, messages); err != nil {
			return err
		}
	}
	return nil
}

// WriteExport writes one export file with the participants derived from senders
func (g *InboxGenerator) WriteExport(path string, messages []ExportMessage) error {
	seen := make(map[string]bool)
	body := exportFile{Messages: messages}
	for _, m := range messages {
		if m.SenderName != "" && !seen[m.SenderName] {
			seen[m.SenderName] = true
			body.Participants = append(body.Participants, participant{Name: m.SenderName})
		}
	}
	if len(body.Participants) > 0 {
		body.Title = body.Participants[0].Name
	}
	if body.Messages == nil {
		body.Messages = []ExportMessage{}
	}

	data, err := json.MarshalIndent(body, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// WriteRaw writes arbitrary bytes to a file in folder
func (g *InboxGenerator) WriteRaw(folder, name, content string) error {
	dir := g.FolderPath(folder)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, name), []byte(content), 0644)
}

// GenerateSampleInbox writes a named conversation, a numeric-only
// conversation and a folder without exports
func (g *InboxGenerator) GenerateSampleInbox(start time.Time) error {
	if err := g.WriteConversation("johnsmith_12345",
		[]ExportMessage{
			Text("John Smith", start, "Hey"),
			NoContent("John Smith", start.Add(time.Minute)),
			Text("Me", start.Add(2*time.Minute), "CafÃ© later?"),
		},
		[]ExportMessage{
			Text("", start.Add(3*time.Minute), "Sure"),
		},
	); err != nil {
		return err
	}

	if err := g.WriteConversation("100847392",
		[]ExportMessage{Text("Someone", start.Add(time.Hour), "Hi")},
	); err != nil {
		return err
	}

	return os.MkdirAll(g.FolderPath("empty_999"), 0755)
}
