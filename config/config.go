// Package config loads the TOML-backed configuration cmd/noms reads for its
// value cache size and a backend name (which cmd/noms logs but does not use
// to choose a chunk store). It is deliberately small:
// unlike the teacher's config package, there are no per-alias remote database
// specs or AWS credential resolution here, since this module only ever talks
// to a local chunk store.
package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// NomsConfigFile is the name FindNomsConfig searches for, walking up from the
// current directory the same way the teacher's CLI does.
const NomsConfigFile = ".nomsconfig"

// DefaultCacheSize is used when a config file omits CacheSize or none is found.
const DefaultCacheSize = uint64(1 << 27) // 128MiB

// DefaultBackend is used when a config file omits Backend or none is found.
const DefaultBackend = "mem"

// ErrNoConfig is returned by FindNomsConfig when no .nomsconfig file is found
// between the current directory and the filesystem root.
var ErrNoConfig = errors.New("no config file found")

// Config is the on-disk shape of a .nomsconfig file (TOML).
type Config struct {
	File      string `toml:"-"`
	CacheSize uint64 `toml:"cache_size"`
	Backend   string `toml:"backend"`
}

// NewDefaultConfig returns the config cmd/noms falls back to when no
// .nomsconfig file is found.
func NewDefaultConfig() *Config {
	return &Config{CacheSize: DefaultCacheSize, Backend: DefaultBackend}
}

// WriteTo serializes c as TOML into dir/NomsConfigFile, creating dir if
// necessary, and returns the path written.
func (c *Config) WriteTo(dir string) (string, error) {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return "", err
	}
	file := filepath.Join(dir, NomsConfigFile)
	f, err := os.Create(file)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return "", err
	}
	return file, nil
}

// FindNomsConfig walks up from the current working directory looking for a
// NomsConfigFile, the way the teacher's CLI resolves config relative to
// wherever it's invoked from rather than requiring an absolute path.
func FindNomsConfig() (*Config, error) {
	dir, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return findNomsConfigFrom(dir)
}

func findNomsConfigFrom(dir string) (*Config, error) {
	for {
		file := filepath.Join(dir, NomsConfigFile)
		if info, err := os.Stat(file); err == nil && !info.IsDir() {
			return readConfig(file)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, ErrNoConfig
		}
		dir = parent
	}
}

func readConfig(file string) (*Config, error) {
	c := &Config{}
	if _, err := toml.DecodeFile(file, c); err != nil {
		return nil, err
	}
	c.File = file
	if c.CacheSize == 0 {
		c.CacheSize = DefaultCacheSize
	}
	if c.Backend == "" {
		c.Backend = DefaultBackend
	}
	return c, nil
}
