package vcpkg

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vision-bindings/cvprobe/pkg/discovery"
)

// fakeRoot lays out a minimal vcpkg tree with an installed opencv4
func fakeRoot(t *testing.T, status string, libs ...string) string {
	t.Helper()
	root := t.TempDir()

	statusPath := filepath.Join(root, "installed", "vcpkg", "status")
	require.NoError(t, os.MkdirAll(filepath.Dir(statusPath), 0o755))
	require.NoError(t, os.WriteFile(statusPath, []byte(status), 0o644))

	libDir := filepath.Join(root, "installed", "x64-windows", "lib")
	require.NoError(t, os.MkdirAll(libDir, 0o755))
	for _, lib := range libs {
		require.NoError(t, os.WriteFile(filepath.Join(libDir, lib), nil, 0o644))
	}
	return root
}

func TestProbeFindsInstalledPort(t *testing.T) {
	root := fakeRoot(t, sampleStatus, "opencv_world480.lib")

	m := NewMechanism(&Config{Root: root, Triplet: "x64-windows"})
	candidates, err := m.Probe(context.Background())
	require.NoError(t, err)
	require.Len(t, candidates, 1)

	c := candidates[0]
	assert.Equal(t, "4.8.0", c.Version)
	assert.Equal(t, discovery.MechanismVcpkg, c.Source)
	assert.True(t, c.HasContrib, "contrib feature stanza marks the candidate")
	assert.Equal(t, []string{"opencv_world480"}, c.LinkLibs)
	require.Len(t, c.IncludePaths, 1)
	assert.True(t, strings.HasSuffix(c.IncludePaths[0], filepath.Join("x64-windows", "include")))
}

func TestProbePerModuleLibs(t *testing.T) {
	status := `Package: opencv4
Version: 4.8.0
Architecture: x64-windows
Status: install ok installed
`
	root := fakeRoot(t, status, "opencv_core480.lib", "opencv_imgproc480.lib", "zlib.lib")

	m := NewMechanism(&Config{Root: root, Triplet: "x64-windows"})
	candidates, err := m.Probe(context.Background())
	require.NoError(t, err)
	require.Len(t, candidates, 1)

	assert.ElementsMatch(t, []string{"opencv_core480", "opencv_imgproc480"}, candidates[0].LinkLibs)
	assert.False(t, candidates[0].HasContrib)
}

func TestProbeMissingStatusIsAMiss(t *testing.T) {
	m := NewMechanism(&Config{Root: t.TempDir(), Triplet: "x64-windows"})
	candidates, err := m.Probe(context.Background())
	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestProbeWrongTripletIsAMiss(t *testing.T) {
	root := fakeRoot(t, sampleStatus, "opencv_world480.lib")

	m := NewMechanism(&Config{Root: root, Triplet: "arm64-windows"})
	candidates, err := m.Probe(context.Background())
	require.NoError(t, err)
	assert.Empty(t, candidates, "purged install must not produce a candidate")
}

func TestVersionSuffix(t *testing.T) {
	assert.Equal(t, "480", versionSuffix("4.8.0"))
	assert.Equal(t, "3416", versionSuffix("3.4.16"))
}
