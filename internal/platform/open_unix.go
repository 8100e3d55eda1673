//go:build !darwin && !windows

package platform

import "runtime"

// XDG opens files through xdg-open on Linux and the BSDs
type XDG struct{}

func init() {
	Register(&XDG{})
}

func (p *XDG) GetName() string {
	return runtime.GOOS
}

func (p *XDG) Open(path string) error {
	return runLauncher("xdg-open", path)
}
