package formatter

import (
	"bytes"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONFormatterFormat(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONFormatter(&buf).Format(sampleSummary()))

	var decoded RunSummary
	require.NoError(t, sonic.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, sampleSummary(), decoded)
	assert.Contains(t, buf.String(), "\n  \"base_dir\"")
}

func TestJSONFormatterEmptyFolders(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONFormatter(&buf).Format(RunSummary{}))

	assert.Contains(t, buf.String(), `"folders": []`)
}

func TestNewFormatter(t *testing.T) {
	var buf bytes.Buffer

	f, err := NewFormatter("table", &buf)
	require.NoError(t, err)
	assert.IsType(t, &TableFormatter{}, f)

	f, err = NewFormatter("JSON", &buf)
	require.NoError(t, err)
	assert.IsType(t, &JSONFormatter{}, f)

	_, err = NewFormatter("xml", &buf)
	assert.Error(t, err)
}
