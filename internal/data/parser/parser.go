package parser

import (
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/bytedance/sonic"

	"github.com/penwyp/go-inbox-csv/internal/core/model"
	"github.com/penwyp/go-inbox-csv/internal/util"
)

var (
	errInvalidUTF8 = errors.New("input is not valid UTF-8")

	// strictAPI rejects strings holding invalid UTF-8 or raw control characters
	strictAPI = sonic.Config{ValidateString: true}.Froze()
)

// ParseFile reads one exported message file. A missing "messages" key yields
// an empty export; malformed JSON is an error.
func ParseFile(path string) (*model.Export, error) {
	util.LogDebugf("Start parsing file: %s", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	export, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	util.LogDebugf("Parsed %s: %d messages", path, len(export.Messages))
	return export, nil
}

// Parse decodes an export document held in memory. The document must be UTF-8.
func Parse(data []byte) (*model.Export, error) {
	if !utf8.Valid(data) {
		return nil, errInvalidUTF8
	}

	var export model.Export
	if err := strictAPI.Unmarshal(data, &export); err != nil {
		return nil, err
	}
	return &export, nil
}
