package formatter

import (
	"bytes"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSummary() RunSummary {
	return RunSummary{
		BaseDir: "/inbox",
		Folders: []FolderSummary{
			{Folder: "/inbox/100847392", Conversation: "Unknown1", Files: 1, Messages: 4, Rows: 3, EmptySkipped: 1},
			{Folder: "/inbox/johnsmith_12345", Conversation: "johnsmith", Files: 2, Messages: 10, Rows: 8, EmptySkipped: 1, EncodingSkipped: 1, EncodingFailures: 1},
		},
		Dataset:     "/inbox/all_messages_dataset.csv",
		DatasetRows: 11,
		Duration:    1500 * time.Millisecond,
	}
}

func TestTableFormatterFormat(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTableFormatter(&buf).Format(sampleSummary()))

	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	assert.True(t, strings.HasPrefix(lines[0], "┌"))
	assert.Contains(t, lines[1], "Conversation")
	assert.Contains(t, out, "Unknown1")
	assert.Contains(t, out, "johnsmith_12345")
	assert.Contains(t, out, "2 folders")
	assert.Contains(t, out, "Dataset: /inbox/all_messages_dataset.csv (11 rows)")
	assert.Contains(t, out, "Completed in 1.5s")

	// Every boxed line has the same length
	width := utf8.RuneCountInString(lines[0])
	for _, line := range lines {
		if strings.HasPrefix(line, "Dataset") || strings.HasPrefix(line, "Completed") {
			continue
		}
		assert.Equal(t, width, utf8.RuneCountInString(line), line)
	}
}

func TestTableFormatterTotals(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTableFormatter(&buf).Format(sampleSummary()))

	var totalLine string
	for _, line := range strings.Split(buf.String(), "\n") {
		if strings.Contains(line, "Total") {
			totalLine = line
		}
	}
	require.NotEmpty(t, totalLine)
	fields := strings.Fields(strings.ReplaceAll(totalLine, "│", " "))
	// Total, 2, folders, files, messages, rows, skipped, enc errors
	assert.Equal(t, []string{"Total", "2", "folders", "3", "14", "11", "3", "1"}, fields)
}

func TestTableFormatterEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTableFormatter(&buf).Format(RunSummary{}))

	out := buf.String()
	assert.Contains(t, out, "0 folders")
	assert.NotContains(t, out, "Dataset:")
}

func TestTableFormatterTruncatesLongNames(t *testing.T) {
	var buf bytes.Buffer
	long := strings.Repeat("x", 100)
	require.NoError(t, NewTableFormatter(&buf).Format(RunSummary{
		Folders: []FolderSummary{{Folder: "/inbox/" + long, Conversation: long}},
	}))

	assert.NotContains(t, buf.String(), long)
	assert.Contains(t, buf.String(), "…")
}
