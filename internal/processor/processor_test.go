package processor

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOutputPath(t *testing.T) {
	params := EncodeParameters{Width: 774, Height: 436, Bitrate: 1_300_999}

	assert.Equal(t, "clip_774x436_1300kbps.mp4", OutputPath("clip.mp4", params))
	assert.Equal(t,
		filepath.Join("videos", "my.trip_774x436_1300kbps.MP4"),
		OutputPath(filepath.Join("videos", "my.trip.MP4"), params))
	assert.Equal(t, "noext_774x436_1300kbps", OutputPath("noext", params))
}

func TestOutputPathMatchesCleanupPattern(t *testing.T) {
	name := filepath.Base(OutputPath("clip.mp4", EncodeParameters{Width: 320, Height: 240, Bitrate: 999}))

	assert.Equal(t, "clip_320x240_0kbps.mp4", name)
	assert.True(t, variantPattern.MatchString(name))
}

func TestLockPath(t *testing.T) {
	assert.Equal(t,
		filepath.Join("videos", ".clip.mp4.mp4-shrinker.lock"),
		LockPath(filepath.Join("videos", "clip.mp4")))
	assert.Equal(t, ".clip.mp4.mp4-shrinker.lock", LockPath("clip.mp4"))
}
