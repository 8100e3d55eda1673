package ffmpeg

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// VideoMetadata contains metadata about a video file
type VideoMetadata struct {
	Duration float64 // seconds
	Size     int64   // container size in bytes
	Width    int
	Height   int
	Bitrate  int64 // bits per second
	Codec    string
}

type probeOutput struct {
	Streams []probeStream `json:"streams"`
	Format  probeFormat   `json:"format"`
}

type probeStream struct {
	CodecName string `json:"codec_name"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	BitRate   string `json:"bit_rate"`
	Duration  string `json:"duration"`
}

type probeFormat struct {
	Duration string `json:"duration"`
	Size     string `json:"size"`
	BitRate  string `json:"bit_rate"`
}

// ParseProbeOutput decodes ffprobe JSON for the first video stream.
//
// Bitrate comes from the stream, then the container, and is otherwise
// derived from the container size and duration. Duration prefers the stream
// value over the container's.
func ParseProbeOutput(data []byte) (*VideoMetadata, error) {
	var out probeOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, errors.Wrap(err, "parse ffprobe output")
	}
	if len(out.Streams) == 0 {
		return nil, errors.New("no video stream found")
	}
	stream := out.Streams[0]

	if stream.Width <= 0 || stream.Height <= 0 {
		return nil, errors.Errorf("invalid video dimensions %dx%d", stream.Width, stream.Height)
	}

	duration, ok, err := optionalNumber(stream.Duration)
	if err != nil {
		return nil, errors.Wrap(err, "stream duration")
	}
	if !ok {
		duration, ok, err = optionalNumber(out.Format.Duration)
		if err != nil {
			return nil, errors.Wrap(err, "format duration")
		}
	}
	if !ok || duration <= 0 {
		return nil, errors.New("could not determine video duration")
	}

	size, _, err := optionalNumber(out.Format.Size)
	if err != nil {
		return nil, errors.Wrap(err, "format size")
	}
	if size < 0 {
		size = 0
	}

	bitrate, ok, err := optionalNumber(stream.BitRate)
	if err != nil {
		return nil, errors.Wrap(err, "stream bit_rate")
	}
	if !ok {
		bitrate, ok, err = optionalNumber(out.Format.BitRate)
		if err != nil {
			return nil, errors.Wrap(err, "format bit_rate")
		}
	}
	if !ok {
		bitrate = size * 8 / duration
	}
	if bitrate <= 0 {
		return nil, errors.New("could not determine video bitrate")
	}

	return &VideoMetadata{
		Duration: duration,
		Size:     int64(size),
		Width:    stream.Width,
		Height:   stream.Height,
		Bitrate:  int64(bitrate),
		Codec:    stream.CodecName,
	}, nil
}

// optionalNumber parses an ffprobe numeric string. Empty and "N/A" values
// are reported as absent rather than as errors.
func optionalNumber(value string) (float64, bool, error) {
	cleaned := strings.TrimSpace(value)
	if cleaned == "" || strings.EqualFold(cleaned, "N/A") {
		return 0, false, nil
	}
	parsed, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false, errors.Wrapf(err, "invalid number %q", value)
	}
	if math.IsNaN(parsed) || math.IsInf(parsed, 0) {
		return 0, false, errors.Errorf("invalid number %q", value)
	}
	return parsed, true, nil
}
