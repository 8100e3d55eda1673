//go:build darwin

package platform

type MacOS struct{}

func init() {
	Register(&MacOS{})
}

func (p *MacOS) GetName() string {
	return "darwin"
}

func (p *MacOS) Open(path string) error {
	return runLauncher("open", path)
}
