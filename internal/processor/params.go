package processor

import (
	"fmt"
	"math"

	"github.com/ZacxDev/mp4-shrinker/internal/config"
	"github.com/ZacxDev/mp4-shrinker/internal/ffmpeg"
	"github.com/ZacxDev/mp4-shrinker/internal/units"
	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"
)

// EncodeParameters are the resolution and bitrate for one encode attempt
type EncodeParameters struct {
	Width   int
	Height  int
	Bitrate int64 // bits per second
}

// Calculate derives the output resolution and bitrate that should land an
// encode of [start, end) near targetSize bytes.
//
// Resolution follows the square root of the bitrate reduction, since encoded
// size tracks pixel area at a fixed quality. The 320x240 floor is applied
// after scaling and does not feed back into the bitrate.
func Calculate(metadata *ffmpeg.VideoMetadata, targetSize int64, start, end *float64) (EncodeParameters, error) {
	startTime, endTime := timeRange(metadata, start, end)

	outputDuration := endTime - startTime
	if outputDuration <= 0 {
		return EncodeParameters{}, errors.WithStack(&units.FormatError{
			Kind:   "time",
			Value:  rangeString(startTime, endTime),
			Reason: "end time must be after start time",
		})
	}

	targetBitrate := int64(math.Floor(float64(targetSize) * 8 * config.ContainerOverhead / outputDuration))

	aspectRatio := float64(metadata.Width) / float64(metadata.Height)
	bitrateRatio := float64(targetBitrate) / float64(metadata.Bitrate)
	scale := scaleFactor(bitrateRatio)

	width := roundToEven(float64(metadata.Width) * scale)
	height := roundToEven(float64(width) / aspectRatio)

	return EncodeParameters{
		Width:   max(width, config.MinWidth),
		Height:  max(height, config.MinHeight),
		Bitrate: targetBitrate,
	}, nil
}

func timeRange(metadata *ffmpeg.VideoMetadata, start, end *float64) (float64, float64) {
	startTime := 0.0
	if start != nil {
		startTime = *start
	}
	endTime := metadata.Duration
	if end != nil {
		endTime = *end
	}
	return startTime, endTime
}

func scaleFactor(bitrateRatio float64) float64 {
	return clamp(math.Sqrt(bitrateRatio), config.MinScaleFactor, config.MaxScaleFactor)
}

// roundToEven rounds v to an even integer; a tie in v/2 goes to the even half.
func roundToEven(v float64) int {
	return 2 * int(math.RoundToEven(v/2))
}

func clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func rangeString(start, end float64) string {
	return fmt.Sprintf("%gs-%gs", start, end)
}
