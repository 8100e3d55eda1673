package config

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
)

// ShrinkOptions defines options for shrinking a video to a target size
type ShrinkOptions struct {
	InputPath  string
	TargetSize int64    // bytes
	Start      *float64 // seconds, nil means the beginning of the input
	End        *float64 // seconds, nil means the full duration
}

// EncoderSettings holds the user-tunable encoder and playback settings
type EncoderSettings struct {
	VideoCodec   string `toml:"video_codec"`
	AudioCodec   string `toml:"audio_codec"`
	AudioBitrate string `toml:"audio_bitrate"`
	Player       string `toml:"player"` // empty: OS default application
}

const (
	// Convergence
	MaxIterations       = 3
	ToleranceLow        = 95.0  // percent of target
	ToleranceHigh       = 100.0 // percent of target
	OversizeCorrection  = 0.95
	UndersizeCorrection = 1.05

	// Share of the target size spent on audio/video payload; the rest is muxing overhead
	ContainerOverhead = 0.975

	// Resolution scaling
	MinScaleFactor = 0.2
	MaxScaleFactor = 1.0
	MinWidth       = 320
	MinHeight      = 240

	// Rate control, relative to the target video bitrate
	MaxrateMultiplier = 1.5
	BufsizeMultiplier = 3

	DefaultVideoCodec   = "libx264"
	DefaultAudioCodec   = "aac"
	DefaultAudioBitrate = "128k"

	// ConfigEnvVar selects a config file explicitly
	ConfigEnvVar = "MP4_SHRINKER_CONFIG"

	appName        = "mp4-shrinker"
	configFileName = "config.toml"

	// LockFileSuffix is appended to ".<input name>" to build the per-input lock file
	LockFileSuffix = ".mp4-shrinker.lock"
)

var audioBitratePattern = regexp.MustCompile(`^\d+(\.\d+)?[kKmM]?$`)

// Default returns the built-in encoder settings
func Default() EncoderSettings {
	return EncoderSettings{
		VideoCodec:   DefaultVideoCodec,
		AudioCodec:   DefaultAudioCodec,
		AudioBitrate: DefaultAudioBitrate,
	}
}

// DefaultPath returns the config file consulted when none is given.
func DefaultPath() string {
	if value, exists := os.LookupEnv(ConfigEnvVar); exists {
		return value
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, appName, configFileName)
}

// Load reads encoder settings from path, layered over Default.
// An empty path falls back to DefaultPath; a missing file is only an error
// when the location was asked for explicitly.
func Load(path string) (EncoderSettings, error) {
	settings := Default()

	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		if _, exists := os.LookupEnv(ConfigEnvVar); exists {
			explicit = true
		}
		path = DefaultPath()
	}
	if path == "" {
		return settings, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return settings, nil
		}
		return EncoderSettings{}, errors.Wrapf(err, "read config %s", path)
	}

	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&settings); err != nil {
		return EncoderSettings{}, errors.Wrapf(err, "parse config %s", path)
	}

	settings.normalize()
	if err := settings.Validate(); err != nil {
		return EncoderSettings{}, errors.Wrapf(err, "config %s", path)
	}
	return settings, nil
}

func (s *EncoderSettings) normalize() {
	s.VideoCodec = strings.TrimSpace(s.VideoCodec)
	s.AudioCodec = strings.TrimSpace(s.AudioCodec)
	s.AudioBitrate = strings.TrimSpace(s.AudioBitrate)
	s.Player = strings.TrimSpace(s.Player)
}

// Validate reports the first invalid setting.
func (s EncoderSettings) Validate() error {
	if s.VideoCodec == "" {
		return errors.New("video_codec must not be empty")
	}
	if s.AudioCodec == "" {
		return errors.New("audio_codec must not be empty")
	}
	if !audioBitratePattern.MatchString(s.AudioBitrate) {
		return errors.Errorf("audio_bitrate %q is not a bitrate such as 128k", s.AudioBitrate)
	}
	return nil
}
