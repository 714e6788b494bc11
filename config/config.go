// Package config locates the Chromium source tree and describes the layout
// of a rebrand config dir.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// VersionFile marks the root of a Chromium checkout.
const VersionFile = "chrome/VERSION"

// EnvChromeSrc names the environment variable consulted when no source dir
// is given on the command line.
const EnvChromeSrc = "REBRAND_CHROME_SRC"

// ErrNoChromeSrc is returned when no Chromium source dir can be found.
var ErrNoChromeSrc = errors.New("no chrome source dir found")

// EnvFile is read by LoadEnv from the working directory.
const EnvFile = ".env"

// LoadEnv loads variables from .env without overriding ones already set.
// It reports whether a file was loaded.
func LoadEnv() (bool, error) {
	if err := godotenv.Load(EnvFile); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("reading %s: %w", EnvFile, err)
	}
	return true, nil
}

// IsChromeSrc reports whether dir contains chrome/VERSION.
func IsChromeSrc(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, filepath.FromSlash(VersionFile)))
	return err == nil && !info.IsDir()
}

// ResolveChromeSrc returns the absolute Chromium source dir. An explicit dir
// must contain chrome/VERSION; an empty dir falls back to $REBRAND_CHROME_SRC
// and then to FindChromeSrc starting at the working directory.
func ResolveChromeSrc(dir string) (string, error) {
	if dir == "" {
		dir = os.Getenv(EnvChromeSrc)
	}
	if dir != "" {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return "", err
		}
		if !IsChromeSrc(abs) {
			return "", fmt.Errorf("%w: %s has no %s", ErrNoChromeSrc, abs, VersionFile)
		}
		return abs, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	return FindChromeSrc(wd)
}

// FindChromeSrc walks up from start to the first directory containing
// chrome/VERSION.
func FindChromeSrc(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}
	for {
		if IsChromeSrc(dir) {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNoChromeSrc
		}
		dir = parent
	}
}

// IsDir reports whether path is an existing directory.
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
