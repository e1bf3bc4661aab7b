package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFolderScanner(t *testing.T) {
	scanner := NewFolderScanner("/tmp/inbox")

	assert.NotNil(t, scanner)
	assert.Equal(t, "/tmp/inbox", scanner.BaseDir())
}

func TestFoldersEmptyDirectory(t *testing.T) {
	folders, err := NewFolderScanner(t.TempDir()).Folders()

	require.NoError(t, err)
	assert.Empty(t, folders)
}

func TestFoldersNonExistentDirectory(t *testing.T) {
	folders, err := NewFolderScanner("/path/that/does/not/exist").Folders()

	assert.Error(t, err, "missing inbox is fatal")
	assert.Nil(t, folders)
}

func TestFoldersOnlyImmediateSubdirectories(t *testing.T) {
	tempDir := t.TempDir()

	for _, dir := range []string{"zoe_1", "alice_2", "123456", "alice_2/photos"} {
		require.NoError(t, os.MkdirAll(filepath.Join(tempDir, dir), 0755))
	}
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "all_messages_dataset.csv"), []byte("x"), 0644))

	folders, err := NewFolderScanner(tempDir).Folders()

	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(tempDir, "123456"),
		filepath.Join(tempDir, "alice_2"),
		filepath.Join(tempDir, "zoe_1"),
	}, folders, "sorted by name, files and nested folders excluded")
}

func TestFoldersFollowsSymlinks(t *testing.T) {
	tempDir := t.TempDir()
	target := t.TempDir()

	link := filepath.Join(tempDir, "linked_1")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("Skipping symlink test: %v", err)
	}
	require.NoError(t, os.Symlink(filepath.Join(tempDir, "missing"), filepath.Join(tempDir, "broken")))

	folders, err := NewFolderScanner(tempDir).Folders()

	require.NoError(t, err)
	assert.Equal(t, []string{link}, folders)
}

func TestFiles(t *testing.T) {
	tempDir := t.TempDir()

	testFiles := []struct {
		name   string
		isJSON bool
	}{
		{"message_1.json", true},
		{"message_2.JSON", true},
		{"message_3.json.bak", false},
		{"combined_messages.csv", false},
		{"notes.txt", false},
	}
	var expected []string
	for _, f := range testFiles {
		path := filepath.Join(tempDir, f.name)
		require.NoError(t, os.WriteFile(path, []byte("{}"), 0644))
		if f.isJSON {
			expected = append(expected, path)
		}
	}
	require.NoError(t, os.MkdirAll(filepath.Join(tempDir, "dir.json"), 0755))

	files, err := Files(tempDir, ".json")

	require.NoError(t, err)
	assert.ElementsMatch(t, expected, files)
}

func TestFilesNonExistentDirectory(t *testing.T) {
	_, err := Files("/path/that/does/not/exist", ".json")
	assert.Error(t, err)
}
