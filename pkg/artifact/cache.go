// pkg/artifact/cache.go
package artifact

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Cache manages prebuilt OpenCV trees unpacked from CI artifacts.
// Unpacked prefixes feed the sysroot mechanism ahead of the
// conventional install directories.
type Cache struct {
	dir    string
	logger *log.Logger
}

// Config configures the artifact cache
type Config struct {
	CachePath string      // cache root (default: ~/.cache/cvprobe)
	Debug     bool        // enable debug logging
	Logger    *log.Logger // custom logger (optional)
}

// New creates an artifact cache rooted under the cache path
func New(cfg *Config) *Cache {
	if cfg == nil {
		cfg = &Config{}
	}

	dir := cfg.CachePath
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			dir = filepath.Join(os.TempDir(), "cvprobe")
		} else {
			dir = filepath.Join(home, ".cache", "cvprobe")
		}
	}

	logger := cfg.Logger
	if logger == nil {
		if cfg.Debug {
			logger = log.New(os.Stdout, "[ARTIFACT] ", log.LstdFlags)
		} else {
			logger = log.New(io.Discard, "", 0)
		}
	}

	return &Cache{
		dir:    filepath.Join(dir, "prebuilt"),
		logger: logger,
	}
}

// Unpack extracts a prebuilt archive into the cache and returns the
// unpacked prefix. Supported formats: .tar.xz and .nar.xz. When
// expectedSHA256 is non-empty the archive hash is verified before
// anything is written. Extraction is staged and renamed so a partial
// unpack never appears as a valid prefix.
func (c *Cache) Unpack(archivePath, expectedSHA256 string) (string, error) {
	name, format, err := splitArchiveName(archivePath)
	if err != nil {
		return "", err
	}

	if expectedSHA256 != "" {
		if err := verifySHA256(archivePath, expectedSHA256); err != nil {
			return "", err
		}
	}

	dest := filepath.Join(c.dir, name)
	if _, err := os.Stat(dest); err == nil {
		c.logger.Printf("artifact %s already unpacked", name)
		return dest, nil
	}

	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return "", fmt.Errorf("creating cache directory: %w", err)
	}

	staging, err := os.MkdirTemp(c.dir, name+".tmp-*")
	if err != nil {
		return "", fmt.Errorf("staging artifact: %w", err)
	}
	defer os.RemoveAll(staging)

	c.logger.Printf("unpacking %s (%s) -> %s", archivePath, format, dest)

	switch format {
	case formatTarXz:
		err = extractTarXz(archivePath, staging)
	case formatNarXz:
		err = extractNarXz(archivePath, staging)
	}
	if err != nil {
		return "", fmt.Errorf("extracting %s: %w", archivePath, err)
	}

	if err := os.Rename(staging, dest); err != nil {
		return "", fmt.Errorf("publishing artifact: %w", err)
	}
	return dest, nil
}

// Prefixes returns the unpacked artifact prefixes in stable order
func (c *Cache) Prefixes() []string {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return nil
	}

	var prefixes []string
	for _, e := range entries {
		if !e.IsDir() || strings.Contains(e.Name(), ".tmp-") {
			continue
		}
		prefixes = append(prefixes, filepath.Join(c.dir, e.Name()))
	}
	sort.Strings(prefixes)
	return prefixes
}

const (
	formatTarXz = "tar.xz"
	formatNarXz = "nar.xz"
)

// splitArchiveName derives the cache entry name and format from an
// archive file name.
func splitArchiveName(archivePath string) (name, format string, err error) {
	base := filepath.Base(archivePath)
	switch {
	case strings.HasSuffix(base, ".tar.xz"):
		return strings.TrimSuffix(base, ".tar.xz"), formatTarXz, nil
	case strings.HasSuffix(base, ".nar.xz"):
		return strings.TrimSuffix(base, ".nar.xz"), formatNarXz, nil
	default:
		return "", "", fmt.Errorf("unsupported artifact format: %s", base)
	}
}

// verifySHA256 verifies the hex SHA-256 hash of a file
func verifySHA256(path, expected string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening archive: %w", err)
	}
	defer f.Close()

	hasher := sha256.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return fmt.Errorf("computing hash: %w", err)
	}

	actual := hex.EncodeToString(hasher.Sum(nil))
	if !strings.EqualFold(actual, expected) {
		return fmt.Errorf("hash mismatch: expected %s, got %s", expected, actual)
	}
	return nil
}
