package processor

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
}

func TestCleanupIntermediates(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir,
		"holiday.mp4",
		"holiday_774x436_1300kbps.mp4",
		"holiday_640x360_1122kbps.mp4",
		"holiday_1280x720_2730kbps.mp4",
		"holiday_640x360_1122kbps.mkv",
		"holiday-notes.txt",
		"other_640x360_1122kbps.mp4",
	)
	final := filepath.Join(dir, "holiday_774x436_1300kbps.mp4")

	removed, err := CleanupIntermediates(final, quietLogger())
	require.NoError(t, err)

	sort.Strings(removed)
	assert.Equal(t, []string{
		filepath.Join(dir, "holiday_1280x720_2730kbps.mp4"),
		filepath.Join(dir, "holiday_640x360_1122kbps.mp4"),
	}, removed)

	assert.FileExists(t, final)
	assert.FileExists(t, filepath.Join(dir, "holiday.mp4"))
	assert.FileExists(t, filepath.Join(dir, "holiday_640x360_1122kbps.mkv"))
	assert.FileExists(t, filepath.Join(dir, "other_640x360_1122kbps.mp4"))
	assert.NoFileExists(t, filepath.Join(dir, "holiday_640x360_1122kbps.mp4"))
}

func TestCleanupIgnoresUnpatternedOutput(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "movie.mp4", "movie_640x360_1122kbps.mp4")

	removed, err := CleanupIntermediates(filepath.Join(dir, "movie.mp4"), quietLogger())
	require.NoError(t, err)

	assert.Empty(t, removed)
	assert.FileExists(t, filepath.Join(dir, "movie_640x360_1122kbps.mp4"))
}

func TestCleanupUnreadableDirectory(t *testing.T) {
	final := filepath.Join(t.TempDir(), "gone", "clip_320x240_10kbps.mp4")

	_, err := CleanupIntermediates(final, quietLogger())
	assert.Error(t, err)
}
