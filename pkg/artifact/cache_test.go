package artifact

import (
	"archive/tar"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz"
)

// writeTarXz builds a minimal prebuilt-style archive on disk and
// returns its path and hex SHA-256.
func writeTarXz(t *testing.T, name string, files map[string]string) (string, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	require.NoError(t, err)

	xzWriter, err := xz.NewWriter(f)
	require.NoError(t, err)
	tarWriter := tar.NewWriter(xzWriter)

	for member, content := range files {
		require.NoError(t, tarWriter.WriteHeader(&tar.Header{
			Name:     member,
			Typeflag: tar.TypeReg,
			Mode:     0o644,
			Size:     int64(len(content)),
		}))
		_, err := tarWriter.Write([]byte(content))
		require.NoError(t, err)
	}

	require.NoError(t, tarWriter.Close())
	require.NoError(t, xzWriter.Close())
	require.NoError(t, f.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	sum := sha256.Sum256(data)
	return path, hex.EncodeToString(sum[:])
}

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	return New(&Config{
		CachePath: t.TempDir(),
		Logger:    log.New(io.Discard, "", 0),
	})
}

func TestSplitArchiveName(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		wantName   string
		wantFormat string
		wantErr    bool
	}{
		{
			name:       "tarball",
			path:       "/tmp/opencv-4.8.0-linux.tar.xz",
			wantName:   "opencv-4.8.0-linux",
			wantFormat: formatTarXz,
		},
		{
			name:       "nar archive",
			path:       "downloads/opencv-4.8.0.nar.xz",
			wantName:   "opencv-4.8.0",
			wantFormat: formatNarXz,
		},
		{
			name:    "plain tarball is not supported",
			path:    "opencv.tar.gz",
			wantErr: true,
		},
		{
			name:    "bare file",
			path:    "opencv.zip",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, format, err := splitArchiveName(tt.path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, name)
			assert.Equal(t, tt.wantFormat, format)
		})
	}
}

func TestVerifySHA256(t *testing.T) {
	path, sum := writeTarXz(t, "opencv-test.tar.xz", map[string]string{"a.txt": "hello"})

	assert.NoError(t, verifySHA256(path, sum))
	assert.NoError(t, verifySHA256(path, strings.ToUpper(sum)), "hash comparison ignores case")
	assert.Error(t, verifySHA256(path, "deadbeef"))
}

func TestUnpackTarXz(t *testing.T) {
	archive, sum := writeTarXz(t, "opencv-4.8.0-linux.tar.xz", map[string]string{
		"include/opencv4/opencv2/core/version.hpp": "#define CV_VERSION_MAJOR 4\n",
		"lib/libopencv_core.so":                    "elf",
	})

	cache := newTestCache(t)
	prefix, err := cache.Unpack(archive, sum)
	require.NoError(t, err)
	assert.Equal(t, "opencv-4.8.0-linux", filepath.Base(prefix))

	data, err := os.ReadFile(filepath.Join(prefix, "include", "opencv4", "opencv2", "core", "version.hpp"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "CV_VERSION_MAJOR")

	// the unpacked prefix is now visible to discovery
	assert.Equal(t, []string{prefix}, cache.Prefixes())

	// no staging directories left behind
	entries, err := os.ReadDir(filepath.Dir(prefix))
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestUnpackSecondRunIsIdempotent(t *testing.T) {
	archive, _ := writeTarXz(t, "opencv-4.8.0.tar.xz", map[string]string{"lib/libopencv_core.so": "elf"})

	cache := newTestCache(t)
	first, err := cache.Unpack(archive, "")
	require.NoError(t, err)
	second, err := cache.Unpack(archive, "")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestUnpackRejectsHashMismatch(t *testing.T) {
	archive, _ := writeTarXz(t, "opencv-4.8.0.tar.xz", map[string]string{"a": "b"})

	cache := newTestCache(t)
	_, err := cache.Unpack(archive, "00000000000000000000000000000000")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hash mismatch")
	assert.Empty(t, cache.Prefixes(), "nothing is unpacked on verification failure")
}

func TestUnpackRejectsUnknownFormat(t *testing.T) {
	cache := newTestCache(t)
	_, err := cache.Unpack("opencv.zip", "")
	assert.Error(t, err)
}

func TestUnpackRejectsPathTraversal(t *testing.T) {
	archive, _ := writeTarXz(t, "evil.tar.xz", map[string]string{"../escape.txt": "nope"})

	cache := newTestCache(t)
	_, err := cache.Unpack(archive, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "escapes destination")
}

func TestPrefixesEmptyCache(t *testing.T) {
	assert.Empty(t, newTestCache(t).Prefixes())
}
