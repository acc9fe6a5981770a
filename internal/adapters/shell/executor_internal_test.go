package shell

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveEnvironment(t *testing.T) {
	sysEnv := []string{
		"PATH=/usr/bin",
		"HOME=/home/user",
		"SECRET_TOKEN=abc",
		"ANDROID_DATA=/data",
		"MALFORMED",
	}

	env := resolveEnvironment(sysEnv, map[string]string{
		"PATH":         "/opt/art/bin",
		"ANDROID_ROOT": "/system",
	})
	slices.Sort(env)

	assert.Equal(t, []string{
		"ANDROID_DATA=/data",
		"ANDROID_ROOT=/system",
		"HOME=/home/user",
		"PATH=/opt/art/bin" + string(os.PathListSeparator) + "/usr/bin",
	}, env)
}

func TestResolveEnvironment_PathWithoutHostPath(t *testing.T) {
	env := resolveEnvironment(nil, map[string]string{"PATH": "/opt/art/bin"})
	assert.Equal(t, []string{"PATH=/opt/art/bin"}, env)
}

func TestLookPath(t *testing.T) {
	dir := t.TempDir()
	exe := filepath.Join(dir, "dex2oat")
	require.NoError(t, os.WriteFile(exe, []byte("#!/bin/sh\n"), 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "plain"), []byte("x"), 0o600))

	got, err := lookPath("dex2oat", []string{"PATH=" + dir})
	require.NoError(t, err)
	assert.Equal(t, exe, got)

	_, err = lookPath("plain", []string{"PATH=" + dir})
	require.Error(t, err)

	_, err = lookPath("dex2oat", []string{"HOME=/"})
	require.Error(t, err)
}
