package cvprobe

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vision-bindings/cvprobe/pkg/resolve"
)

func TestNewPipelineDefaults(t *testing.T) {
	p, err := NewPipeline(nil, nil)
	require.NoError(t, err)

	plat := p.Platform()
	require.NotNil(t, plat)
	assert.NotEmpty(t, plat.Family)

	// full chain on defaults, in preference order
	assert.Equal(t, []string{"pkg-config", "vcpkg", "sysroot"}, p.Mechanisms())
}

func TestNewPipelineForcedDiscovery(t *testing.T) {
	opts := DefaultOptions()
	opts.ForceSysroot = true

	p, err := NewPipeline(opts, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"sysroot"}, p.Mechanisms())
}

func TestScanPrefixesIncludesUnpackedArtifacts(t *testing.T) {
	config := DefaultConfig()
	config.CachePath = t.TempDir()
	config.ExtraPrefixes = []string{"/opt/opencv"}

	unpacked := filepath.Join(config.CachePath, "prebuilt", "opencv-4.8.0-linux")
	require.NoError(t, os.MkdirAll(unpacked, 0o755))

	prefixes := ScanPrefixes(config, nil)
	assert.Equal(t, []string{unpacked, "/opt/opencv"}, prefixes,
		"cached artifacts come before configured extras")
}

func TestRunDocsOnly(t *testing.T) {
	opts := DefaultOptions()
	opts.DocsOnly = true
	opts.Contrib = true

	p, err := NewPipeline(opts, nil)
	require.NoError(t, err)

	built, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, built.Stub)
	assert.Equal(t, string(FeatureOpenCV4), built.Feature)
	assert.Empty(t, built.Includes, "a stub plan never references native paths")
	assert.Empty(t, built.Links)
	assert.Equal(t, "1", built.Defines["OCVRS_DOCS_ONLY"])
	assert.Equal(t, "1", built.Defines["OCVRS_HAS_CONTRIB"])
}

func TestRunNoLibraryFound(t *testing.T) {
	opts := DefaultOptions()
	opts.ForceSysroot = true

	config := DefaultConfig()
	config.CachePath = t.TempDir()
	// only an empty prefix to scan, so discovery comes up dry
	config.ExtraPrefixes = []string{t.TempDir()}

	p, err := NewPipeline(opts, config)
	require.NoError(t, err)

	_, runErr := p.Run(context.Background())
	if runErr == nil {
		t.Skip("host has an OpenCV install visible to the sysroot scan")
	}
	assert.True(t, errors.Is(runErr, ErrNoLibraryFound))
	assert.True(t, errors.Is(runErr, resolve.ErrNoLibraryFound),
		"facade sentinels alias the package sentinels")

	var opErr *Error
	require.True(t, errors.As(runErr, &opErr))
	assert.Equal(t, "resolving OpenCV", opErr.Op)
}
