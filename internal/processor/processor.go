package processor

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ZacxDev/mp4-shrinker/internal/config"
	"github.com/ZacxDev/mp4-shrinker/internal/ffmpeg"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var (
	// ErrInputNotFound is returned when the input video does not exist
	ErrInputNotFound = errors.New("input file not found")

	// ErrLocked is returned when another run is already shrinking the same input
	ErrLocked = errors.New("input is being processed by another run")
)

// Prober reads video metadata
type Prober interface {
	Probe(path string) (*ffmpeg.VideoMetadata, error)
}

// Transcoder re-encodes a video
type Transcoder interface {
	Transcode(job ffmpeg.EncodeJob) error
}

// Shrinker drives a video toward a target file size
type Shrinker struct {
	opts       *config.ShrinkOptions
	prober     Prober
	transcoder Transcoder
	log        logrus.FieldLogger
	report     io.Writer
}

// NewShrinker creates a new video shrinker
func NewShrinker(opts *config.ShrinkOptions, prober Prober, transcoder Transcoder, logger logrus.FieldLogger) *Shrinker {
	return &Shrinker{
		opts:       opts,
		prober:     prober,
		transcoder: transcoder,
		log:        logger.WithField("component", "shrinker"),
		report:     io.Discard,
	}
}

// WithReport sets where the human-readable summaries are written.
func (s *Shrinker) WithReport(w io.Writer) *Shrinker {
	if w == nil {
		w = io.Discard
	}
	s.report = w
	return s
}

// OutputPath derives the output name {base}_{w}x{h}_{kbps}kbps{ext}, next to the input.
func OutputPath(inputPath string, params EncodeParameters) string {
	ext := filepath.Ext(inputPath)
	base := strings.TrimSuffix(inputPath, ext)
	return fmt.Sprintf("%s_%dx%d_%dkbps%s", base, params.Width, params.Height, params.Bitrate/1000, ext)
}

// LockPath is the advisory lock file guarding inputPath.
func LockPath(inputPath string) string {
	dir, name := filepath.Split(inputPath)
	return filepath.Join(dir, "."+name+config.LockFileSuffix)
}
