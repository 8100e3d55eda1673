package platform

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrentOSIsRegistered(t *testing.T) {
	p, err := Resolve("")
	require.NoError(t, err)
	assert.Equal(t, runtime.GOOS, p.GetName())
	assert.Contains(t, GetSupportedPlatforms(), runtime.GOOS)
}

func TestGetUnknownPlatform(t *testing.T) {
	_, err := Get("plan9-toaster")
	assert.Error(t, err)
}

func TestNewCommandRejectsEmpty(t *testing.T) {
	_, err := NewCommand("   ")
	assert.Error(t, err)
}

func TestCommandPassesPathLast(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell script stub")
	}
	dir := t.TempDir()
	record := filepath.Join(dir, "args.txt")
	script := filepath.Join(dir, "player")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\necho \"$@\" > "+record+"\n"), 0o755))

	p, err := Resolve(script + " --loop  --fs")
	require.NoError(t, err)
	assert.Equal(t, script, p.GetName())

	require.NoError(t, p.Open("/videos/out.mp4"))

	got, err := os.ReadFile(record)
	require.NoError(t, err)
	assert.Equal(t, "--loop --fs /videos/out.mp4\n", string(got))
}

func TestCommandReportsFailure(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell script stub")
	}
	script := filepath.Join(t.TempDir(), "broken-player")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\nexit 3\n"), 0o755))

	p, err := NewCommand(script)
	require.NoError(t, err)
	assert.Error(t, p.Open("x.mp4"))
}
