package processor

import (
	"math"
	"testing"

	"github.com/ZacxDev/mp4-shrinker/internal/ffmpeg"
	"github.com/ZacxDev/mp4-shrinker/internal/units"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullHD() *ffmpeg.VideoMetadata {
	return &ffmpeg.VideoMetadata{
		Duration: 60,
		Size:     60_000_000,
		Width:    1920,
		Height:   1080,
		Bitrate:  8_000_000,
	}
}

func seconds(v float64) *float64 { return &v }

func TestCalculateWorkedExample(t *testing.T) {
	params, err := Calculate(fullHD(), 10_000_000, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, EncodeParameters{Width: 774, Height: 436, Bitrate: 1_300_000}, params)
}

func TestCalculateIsIdempotent(t *testing.T) {
	md := fullHD()
	first, err := Calculate(md, 7_340_032, seconds(3), seconds(41.5))
	require.NoError(t, err)
	second, err := Calculate(md, 7_340_032, seconds(3), seconds(41.5))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCalculateTimeRange(t *testing.T) {
	// 30s segment: twice the bitrate of the full 60s for the same size
	params, err := Calculate(fullHD(), 10_000_000, seconds(15), seconds(45))
	require.NoError(t, err)
	assert.Equal(t, int64(2_600_000), params.Bitrate)

	startOnly, err := Calculate(fullHD(), 10_000_000, seconds(30), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2_600_000), startOnly.Bitrate)
}

func TestCalculateNeverUpscales(t *testing.T) {
	params, err := Calculate(fullHD(), 1_000_000_000, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, 1920, params.Width)
	assert.Equal(t, 1080, params.Height)
	assert.Equal(t, int64(130_000_000), params.Bitrate)
}

func TestCalculateDimensionFloor(t *testing.T) {
	// Scale clamps at 0.2 -> 384x216, then the height floor lifts it to 240.
	// The bitrate is left as computed.
	params, err := Calculate(fullHD(), 10_000, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, 384, params.Width)
	assert.Equal(t, 240, params.Height)
	assert.Equal(t, int64(1300), params.Bitrate)

	tiny := &ffmpeg.VideoMetadata{Duration: 10, Width: 640, Height: 480, Bitrate: 2_000_000}
	params, err = Calculate(tiny, 1000, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 320, params.Width)
	assert.Equal(t, 240, params.Height)
}

func TestCalculateInvariants(t *testing.T) {
	sources := []*ffmpeg.VideoMetadata{
		fullHD(),
		{Duration: 5, Width: 3840, Height: 2160, Bitrate: 50_000_000},
		{Duration: 600, Width: 720, Height: 1280, Bitrate: 1_500_000},
		{Duration: 1, Width: 100, Height: 100, Bitrate: 10_000},
		{Duration: 3600, Width: 2560, Height: 1080, Bitrate: 300_000},
	}
	targets := []int64{1, 1024, 500_000, 10_000_000, 1 << 32}

	for _, md := range sources {
		for _, target := range targets {
			params, err := Calculate(md, target, nil, nil)
			require.NoError(t, err)

			assert.GreaterOrEqual(t, params.Width, 320)
			assert.GreaterOrEqual(t, params.Height, 240)
			assert.Zero(t, params.Width%2, "width %d", params.Width)
			assert.Zero(t, params.Height%2, "height %d", params.Height)

			expected := int64(math.Floor(float64(target) * 8 * 0.975 / md.Duration))
			assert.Equal(t, expected, params.Bitrate)
		}
	}
}

func TestScaleFactorClamped(t *testing.T) {
	for _, ratio := range []float64{0, 1e-12, 0.01, 0.04, 0.1625, 0.5, 1, 4, 1e12, math.Inf(1)} {
		f := scaleFactor(ratio)
		assert.GreaterOrEqual(t, f, 0.2, "ratio %v", ratio)
		assert.LessOrEqual(t, f, 1.0, "ratio %v", ratio)
	}
	assert.InDelta(t, 0.4031, scaleFactor(1_300_000.0/8_000_000.0), 1e-4)
}

func TestRoundToEven(t *testing.T) {
	assert.Equal(t, 774, roundToEven(773.976))
	assert.Equal(t, 436, roundToEven(435.375))
	assert.Equal(t, 4, roundToEven(5)) // 2.5 -> 2
	assert.Equal(t, 8, roundToEven(7)) // 3.5 -> 4
	assert.Equal(t, 0, roundToEven(0.9))
}

func TestCalculateRejectsEmptyRange(t *testing.T) {
	_, err := Calculate(fullHD(), 10_000_000, seconds(30), seconds(30))

	var formatErr *units.FormatError
	require.True(t, errors.As(err, &formatErr))
	assert.Equal(t, "time", formatErr.Kind)

	_, err = Calculate(fullHD(), 10_000_000, seconds(90), nil)
	assert.Error(t, err)
}
