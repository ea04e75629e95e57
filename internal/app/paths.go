package app

import (
	"os"
	"path/filepath"
)

// Paths holds all resolved filesystem paths for the .faq/ project directory.
// All fields are pre-computed strings.
type Paths struct {
	Root   string // .faq/
	DB     string // .faq/faq.db
	Config string // .faq/config.yaml

	LogDir    string // .faq/log/
	DaemonLog string // .faq/log/daemon.log

	RunDir   string // .faq/run/
	PIDFile  string // .faq/run/daemon.pid
	AddrFile string // .faq/run/http.addr
}

// NewPaths constructs all resolved paths from a project root directory.
func NewPaths(projectRoot string) *Paths {
	root := filepath.Join(projectRoot, ".faq")
	return &Paths{
		Root:   root,
		DB:     filepath.Join(root, "faq.db"),
		Config: filepath.Join(root, "config.yaml"),

		LogDir:    filepath.Join(root, "log"),
		DaemonLog: filepath.Join(root, "log", "daemon.log"),

		RunDir:   filepath.Join(root, "run"),
		PIDFile:  filepath.Join(root, "run", "daemon.pid"),
		AddrFile: filepath.Join(root, "run", "http.addr"),
	}
}

// EnsureDirs creates all subdirectories under .faq/. Idempotent.
func (p *Paths) EnsureDirs() error {
	for _, d := range []string{p.Root, p.LogDir, p.RunDir} {
		if err := os.MkdirAll(d, 0755); err != nil {
			return err
		}
	}
	return nil
}

// CleanEphemeral removes ephemeral runtime files (PID file and address file).
// Called on clean daemon shutdown.
func (p *Paths) CleanEphemeral() {
	os.Remove(p.PIDFile)
	os.Remove(p.AddrFile)
}
