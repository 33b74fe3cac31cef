package version_test

import (
	"runtime/debug"
	"testing"

	"bennypowers.dev/csscolor/internal/version"
	"github.com/stretchr/testify/assert"
)

func withVars(t *testing.T, v, commit string) {
	t.Helper()
	prevVersion, prevCommit := version.Version, version.Commit
	version.Version, version.Commit = v, commit
	t.Cleanup(func() {
		version.Version, version.Commit = prevVersion, prevCommit
	})
}

func buildInfo(v string) func() (*debug.BuildInfo, bool) {
	return func() (*debug.BuildInfo, bool) {
		return &debug.BuildInfo{Main: debug.Module{Version: v}}, true
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		name    string
		version string
		commit  string
		module  string
		want    string
	}{
		{"ldflags version", "v1.2.3", "unknown", "v0.0.1", "v1.2.3"},
		{"module version", "dev", "unknown", "v0.4.0", "v0.4.0"},
		{"devel build", "dev", "unknown", "(devel)", "dev"},
		{"commit appended", "v1.2.3", "0123456789abcdef", "", "v1.2.3 (0123456)"},
		{"short commit", "dev", "abc", "(devel)", "dev (abc)"},
		{"commit already in version", "v1.2.3-0123456", "0123456789", "", "v1.2.3-0123456"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withVars(t, tt.version, tt.commit)
			t.Cleanup(version.SetBuildInfo(buildInfo(tt.module)))
			assert.Equal(t, tt.want, version.String())
		})
	}
}

func TestInfo(t *testing.T) {
	withVars(t, "v9.9.9", "unknown")
	info := version.Info()
	assert.Equal(t, "v9.9.9", info["version"])
	assert.Equal(t, "unknown", info["commit"])
	assert.Contains(t, info, "buildTime")
}
