package app

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Environment variables that override file configuration.
const (
	EnvKBFile   = "FAQ_KB_FILE"
	EnvHTTPAddr = "FAQ_HTTP_ADDR"
	EnvLogLevel = "FAQ_LOG_LEVEL"
	EnvWatch    = "FAQ_WATCH"
)

// DefaultSnapshot is the bbolt snapshot name the daemon serves from.
const DefaultSnapshot = "active"

// Config holds initialization parameters for the App.
type Config struct {
	ProjectRoot string `yaml:"-"`
	KBFile      string `yaml:"kb_file"`   // YAML/JSON knowledge base; empty = stored snapshot or built-in
	DBPath      string `yaml:"db_path"`   // bbolt file (default: .faq/faq.db)
	Snapshot    string `yaml:"snapshot"`  // snapshot name inside DBPath (default: active)
	HTTPAddr    string `yaml:"http_addr"` // host:port (default: 127.0.0.1 + port derived from project root)
	LogLevel    string `yaml:"log_level"` // debug, info, warn, error
	Watch       bool   `yaml:"watch"`     // reload KBFile when it changes
}

// LoadConfig resolves configuration for projectRoot in increasing priority:
// built-in defaults, .env in the project root, .faq/config.yaml, then
// FAQ_* environment variables. Missing files are not errors.
func LoadConfig(projectRoot string) (Config, error) {
	paths := NewPaths(projectRoot)
	cfg := Config{
		ProjectRoot: projectRoot,
		DBPath:      paths.DB,
		Snapshot:    DefaultSnapshot,
		LogLevel:    "info",
	}

	// godotenv never overrides variables already set in the process.
	if err := godotenv.Load(filepath.Join(projectRoot, ".env")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("load .env: %w", err)
	}

	if data, err := os.ReadFile(paths.Config); err == nil {
		if err := decodeConfig(data, &cfg); err != nil {
			return cfg, fmt.Errorf("%s: %w", paths.Config, err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if v := os.Getenv(EnvKBFile); v != "" {
		cfg.KBFile = v
	}
	if v := os.Getenv(EnvHTTPAddr); v != "" {
		cfg.HTTPAddr = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv(EnvWatch); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, fmt.Errorf("%s=%q: %w", EnvWatch, v, err)
		}
		cfg.Watch = b
	}

	if cfg.KBFile != "" && !filepath.IsAbs(cfg.KBFile) {
		cfg.KBFile = filepath.Join(projectRoot, cfg.KBFile)
	}
	if cfg.DBPath != "" && !filepath.IsAbs(cfg.DBPath) {
		cfg.DBPath = filepath.Join(projectRoot, cfg.DBPath)
	}
	if cfg.Snapshot == "" {
		cfg.Snapshot = DefaultSnapshot
	}
	if _, err := zapcore.ParseLevel(cfg.LogLevel); err != nil {
		return cfg, fmt.Errorf("log level: %w", err)
	}
	return cfg, nil
}

func decodeConfig(data []byte, cfg *Config) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	return nil
}
