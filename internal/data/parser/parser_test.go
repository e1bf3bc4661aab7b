package parser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "message_1.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestParseFileValid(t *testing.T) {
	path := writeFile(t, `{
		"participants": [{"name": "Alice"}, {"name": "Bob"}],
		"messages": [
			{"sender_name": "Alice", "timestamp_ms": 1700000000000, "content": "Hi", "is_geoblocked_for_viewer": false},
			{"sender_name": "Bob", "timestamp_ms": 1700000060000, "photos": [{"uri": "x.jpg"}]}
		],
		"title": "Alice"
	}`)

	export, err := ParseFile(path)

	require.NoError(t, err)
	require.Len(t, export.Messages, 2)
	assert.Equal(t, "Alice", export.Messages[0].SenderName)
	assert.Equal(t, int64(1700000000000), *export.Messages[0].TimestampMs)
	assert.Equal(t, "Hi", *export.Messages[0].Content)
	assert.Nil(t, export.Messages[1].Content)
}

func TestParseFileWithoutMessages(t *testing.T) {
	export, err := ParseFile(writeFile(t, `{"title": "empty"}`))

	require.NoError(t, err)
	assert.Empty(t, export.Messages)
}

func TestParseFileMalformed(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"truncated", `{"messages": [`},
		{"empty file", ``},
		{"top-level array", `[{"content": "hi"}]`},
		{"wrong timestamp type", `{"messages": [{"timestamp_ms": "yesterday"}]}`},
		{"invalid UTF-8 in content", "{\"messages\": [{\"timestamp_ms\": 1, \"content\": \"bad \xff\xfe byte\"}]}"},
		{"invalid UTF-8 outside strings", "\xff{\"messages\": []}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.content)
			export, err := ParseFile(path)

			assert.Error(t, err)
			assert.Contains(t, err.Error(), path)
			assert.Nil(t, export)
		})
	}
}

func TestParseFileNonExistent(t *testing.T) {
	export, err := ParseFile("/path/that/does/not/exist.json")

	assert.Error(t, err)
	assert.Nil(t, export)
}

func TestParseUnicodeEscapes(t *testing.T) {
	export, err := Parse([]byte(`{"messages":[{"sender_name":"RenÃ©","timestamp_ms":1,"content":"ð\u009f\u0098\u0080"}]}`))

	require.NoError(t, err)
	assert.Equal(t, "RenÃ©", export.Messages[0].SenderName)
	assert.Equal(t, "ð\u009f\u0098\u0080", *export.Messages[0].Content)
}

func TestParseRejectsInvalidUTF8(t *testing.T) {
	export, err := Parse([]byte("{\"messages\":[{\"sender_name\":\"A\",\"timestamp_ms\":1,\"content\":\"\xc3\x28\"}]}"))

	assert.Error(t, err)
	assert.Nil(t, export)
}
