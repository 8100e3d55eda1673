package videoprocessor

import (
	"io"

	"github.com/ZacxDev/mp4-shrinker/internal/config"
	ffmpegWrap "github.com/ZacxDev/mp4-shrinker/internal/ffmpeg"
	"github.com/ZacxDev/mp4-shrinker/internal/platform"
	"github.com/ZacxDev/mp4-shrinker/internal/processor"
	"github.com/ZacxDev/mp4-shrinker/internal/units"
	"github.com/ZacxDev/mp4-shrinker/pkg/types"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Settings are the encoder and player settings read from the config file
type Settings = config.EncoderSettings

// Error types callers can match with errors.Is / errors.As
type (
	FormatError    = units.FormatError
	ProbeError     = ffmpegWrap.ProbeError
	TranscodeError = ffmpegWrap.TranscodeError
)

var (
	ErrInputNotFound = processor.ErrInputNotFound
	ErrLocked        = processor.ErrLocked
)

// ShrinkVideoOptions defines options for shrinking a video
type ShrinkVideoOptions struct {
	InputPath  string
	TargetSize string // e.g. "10m", "800k", "1g" or a byte count
	StartTime  string // optional, "seconds" or "minutes:seconds[.fraction]"
	EndTime    string // optional, same format as StartTime
	Settings   Settings
	Logger     logrus.FieldLogger // defaults to the logrus standard logger
	Report     io.Writer          // human-readable summaries, discarded when nil
}

// LoadSettings reads settings from path, or from the default location when path is empty.
func LoadSettings(path string) (Settings, error) {
	return config.Load(path)
}

// DefaultSettings returns the built-in settings.
func DefaultSettings() Settings {
	return config.Default()
}

// ShrinkVideo re-encodes the input until it lands near the target size.
// Size and time arguments are validated before anything is probed.
func ShrinkVideo(opts *ShrinkVideoOptions) (*types.Result, error) {
	targetSize, err := units.ParseSize(opts.TargetSize)
	if err != nil {
		return nil, err
	}
	start, err := optionalTime(opts.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := optionalTime(opts.EndTime)
	if err != nil {
		return nil, err
	}

	settings := opts.Settings
	if settings == (Settings{}) {
		settings = config.Default()
	}
	if err := settings.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid settings")
	}

	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	shrinkOpts := &config.ShrinkOptions{
		InputPath:  opts.InputPath,
		TargetSize: targetSize,
		Start:      start,
		End:        end,
	}
	ffmpeg := ffmpegWrap.NewProcessor(settings, logger)

	return processor.NewShrinker(shrinkOpts, ffmpeg, ffmpeg, logger).
		WithReport(opts.Report).
		Process()
}

// PlayVideo opens path with the configured player or the OS default application.
func PlayVideo(path string, settings Settings) error {
	player, err := platform.Resolve(settings.Player)
	if err != nil {
		return err
	}
	return player.Open(path)
}

// CleanupIntermediates removes superseded outputs that sit next to finalPath.
func CleanupIntermediates(finalPath string, logger logrus.FieldLogger) ([]string, error) {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return processor.CleanupIntermediates(finalPath, logger)
}

// FormatSize renders a byte count for display.
func FormatSize(size int64) string {
	return units.FormatSize(float64(size))
}

// GetSupportedPlatforms returns the built-in players for this build
func GetSupportedPlatforms() []string {
	return platform.GetSupportedPlatforms()
}

func optionalTime(value string) (*float64, error) {
	if value == "" {
		return nil, nil
	}
	seconds, err := units.ParseTime(value)
	if err != nil {
		return nil, err
	}
	return &seconds, nil
}
