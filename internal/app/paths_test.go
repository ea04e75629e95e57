package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPaths(t *testing.T) {
	p := NewPaths("/project")
	assert.Equal(t, filepath.Join("/project", ".faq"), p.Root)
	assert.Equal(t, filepath.Join("/project", ".faq", "faq.db"), p.DB)
	assert.Equal(t, filepath.Join("/project", ".faq", "config.yaml"), p.Config)
	assert.Equal(t, filepath.Join("/project", ".faq", "log"), p.LogDir)
	assert.Equal(t, filepath.Join("/project", ".faq", "log", "daemon.log"), p.DaemonLog)
	assert.Equal(t, filepath.Join("/project", ".faq", "run"), p.RunDir)
	assert.Equal(t, filepath.Join("/project", ".faq", "run", "daemon.pid"), p.PIDFile)
	assert.Equal(t, filepath.Join("/project", ".faq", "run", "http.addr"), p.AddrFile)
}

func TestEnsureDirs(t *testing.T) {
	p := NewPaths(t.TempDir())

	require.NoError(t, p.EnsureDirs())
	for _, d := range []string{p.Root, p.LogDir, p.RunDir} {
		info, err := os.Stat(d)
		require.NoError(t, err, "dir %s should exist", d)
		assert.True(t, info.IsDir())
	}

	// Second call is idempotent.
	require.NoError(t, p.EnsureDirs())
}

func TestCleanEphemeral(t *testing.T) {
	p := NewPaths(t.TempDir())
	require.NoError(t, p.EnsureDirs())
	require.NoError(t, os.WriteFile(p.PIDFile, []byte("42"), 0644))
	require.NoError(t, os.WriteFile(p.AddrFile, []byte("127.0.0.1:18001"), 0644))
	require.NoError(t, os.WriteFile(p.DaemonLog, []byte("keep"), 0644))

	p.CleanEphemeral()

	for _, f := range []string{p.PIDFile, p.AddrFile} {
		_, err := os.Stat(f)
		assert.True(t, os.IsNotExist(err), "%s should be removed", f)
	}
	_, err := os.Stat(p.DaemonLog)
	assert.NoError(t, err, "logs survive shutdown")

	// Missing files are fine.
	p.CleanEphemeral()
}
