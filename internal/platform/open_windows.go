//go:build windows

package platform

import (
	"github.com/pkg/errors"
	"golang.org/x/sys/windows"
)

type Windows struct{}

func init() {
	Register(&Windows{})
}

func (p *Windows) GetName() string {
	return "windows"
}

// Open asks the shell to open path with its associated application.
func (p *Windows) Open(path string) error {
	verb, err := windows.UTF16PtrFromString("open")
	if err != nil {
		return errors.WithStack(err)
	}
	file, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return errors.WithStack(err)
	}
	if err := windows.ShellExecute(0, verb, file, nil, nil, windows.SW_SHOWNORMAL); err != nil {
		return errors.Wrapf(err, "open %s", path)
	}
	return nil
}
