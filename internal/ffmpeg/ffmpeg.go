package ffmpeg

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/ZacxDev/mp4-shrinker/internal/config"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// probeArgs select the first video stream and only the fields the size
// calculation needs.
var probeArgs = ffmpeg.KwArgs{
	"v":              "error",
	"select_streams": "v:0",
	"show_entries":   "stream=width,height,bit_rate,duration,codec_name:format=duration,size,bit_rate",
}

// ProbeError reports a failed or unusable ffprobe run.
type ProbeError struct {
	Path string
	Err  error
}

func (e *ProbeError) Error() string {
	return fmt.Sprintf("error probing video %s: %v", e.Path, e.Err)
}

func (e *ProbeError) Unwrap() error { return e.Err }

// TranscodeError reports a failed ffmpeg run.
type TranscodeError struct {
	Output string
	Err    error
}

func (e *TranscodeError) Error() string {
	return fmt.Sprintf("error processing video into %s: %v", e.Output, e.Err)
}

func (e *TranscodeError) Unwrap() error { return e.Err }

// EncodeJob describes one ffmpeg invocation
type EncodeJob struct {
	InputPath  string
	OutputPath string
	Start      float64 // seek offset in seconds, 0 for none
	Limit      float64 // output duration in seconds, 0 for the rest of the input
	Width      int
	Height     int
	Bitrate    int64 // bits per second
}

// Processor wraps FFmpeg functionality
type Processor struct {
	settings config.EncoderSettings
	log      logrus.FieldLogger
}

// NewProcessor creates a new FFmpeg processor
func NewProcessor(settings config.EncoderSettings, logger logrus.FieldLogger) *Processor {
	return &Processor{
		settings: settings,
		log:      logger.WithField("component", "ffmpeg"),
	}
}

// Probe retrieves metadata about a video file
func (p *Processor) Probe(inputPath string) (*VideoMetadata, error) {
	if _, err := os.Stat(inputPath); err != nil {
		return nil, errors.WithStack(&ProbeError{Path: inputPath, Err: err})
	}

	p.log.WithField("path", inputPath).Debug("running ffprobe")
	out, err := ffmpeg.Probe(inputPath, probeArgs)
	if err != nil {
		return nil, errors.WithStack(&ProbeError{Path: inputPath, Err: err})
	}

	metadata, err := ParseProbeOutput([]byte(out))
	if err != nil {
		return nil, errors.WithStack(&ProbeError{Path: inputPath, Err: err})
	}

	p.log.WithFields(logrus.Fields{
		"duration": metadata.Duration,
		"size":     metadata.Size,
		"width":    metadata.Width,
		"height":   metadata.Height,
		"bitrate":  metadata.Bitrate,
		"codec":    metadata.Codec,
	}).Debug("video metadata")

	return metadata, nil
}

// Transcode runs ffmpeg for job and blocks until it exits.
func (p *Processor) Transcode(job EncodeJob) error {
	stream := p.command(job)
	p.log.WithField("args", strings.Join(stream.GetArgs(), " ")).Debug("running ffmpeg")

	if err := stream.ErrorToStdOut().Run(); err != nil {
		return errors.WithStack(&TranscodeError{Output: job.OutputPath, Err: err})
	}
	return nil
}

func (p *Processor) command(job EncodeJob) *ffmpeg.Stream {
	inputKwargs := ffmpeg.KwArgs{}
	if job.Start > 0 {
		inputKwargs["ss"] = formatSeconds(job.Start)
	}

	outputKwargs := ffmpeg.KwArgs{
		"c:v":      p.settings.VideoCodec,
		"b:v":      strconv.FormatInt(job.Bitrate, 10),
		"maxrate":  strconv.FormatInt(int64(float64(job.Bitrate)*config.MaxrateMultiplier), 10),
		"bufsize":  strconv.FormatInt(job.Bitrate*config.BufsizeMultiplier, 10),
		"vf":       fmt.Sprintf("scale=%d:%d", job.Width, job.Height),
		"c:a":      p.settings.AudioCodec,
		"b:a":      p.settings.AudioBitrate,
		"movflags": "+faststart",
	}
	if job.Limit > 0 {
		outputKwargs["t"] = formatSeconds(job.Limit)
	}

	return ffmpeg.Input(job.InputPath, inputKwargs).
		Output(job.OutputPath, outputKwargs).
		OverWriteOutput()
}

func formatSeconds(seconds float64) string {
	return strconv.FormatFloat(seconds, 'f', -1, 64)
}
