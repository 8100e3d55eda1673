package platform

import (
	"os/exec"
	"runtime"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Platform opens a file with an application on the host
type Platform interface {
	// GetName returns the platform name, a GOOS value for built-in platforms
	GetName() string

	// Open hands path to the player and waits for the launcher to return
	Open(path string) error
}

var platforms = make(map[string]Platform)

// Register adds a platform to the registry
func Register(p Platform) {
	platforms[p.GetName()] = p
}

// Get returns a platform by name
func Get(name string) (Platform, error) {
	p, ok := platforms[name]
	if !ok {
		return nil, errors.Errorf("unsupported platform: %s", name)
	}
	return p, nil
}

// GetSupportedPlatforms returns a sorted list of supported platform names
func GetSupportedPlatforms() []string {
	names := make([]string, 0, len(platforms))
	for name := range platforms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve returns the configured player command, or the default
// application launcher of the running OS when player is empty.
func Resolve(player string) (Platform, error) {
	if strings.TrimSpace(player) != "" {
		return NewCommand(player)
	}
	return Get(runtime.GOOS)
}

// Command runs a user-configured player, e.g. "mpv --loop".
type Command struct {
	name string
	args []string
}

// NewCommand splits cmdline on whitespace into a program and its arguments.
func NewCommand(cmdline string) (*Command, error) {
	fields := strings.Fields(cmdline)
	if len(fields) == 0 {
		return nil, errors.New("empty player command")
	}
	return &Command{name: fields[0], args: fields[1:]}, nil
}

func (c *Command) GetName() string {
	return c.name
}

func (c *Command) Open(path string) error {
	return runLauncher(c.name, append(append([]string{}, c.args...), path)...)
}

func runLauncher(name string, args ...string) error {
	if err := exec.Command(name, args...).Run(); err != nil {
		return errors.Wrapf(err, "run %s", name)
	}
	return nil
}
