package version

import (
	"testing"
)

func TestBuildInfoString(t *testing.T) {
	tests := []struct {
		name     string
		info     BuildInfo
		expected string
	}{
		{"development", BuildInfo{Version: "dev", BuildTime: "unknown"}, "dev (development build)"},
		{"unparsable time", BuildInfo{Version: "v1.2.0", BuildTime: "yesterday"}, "v1.2.0 (built yesterday)"},
		{
			"release",
			BuildInfo{Version: "v1.2.0", BuildTime: "2026-03-01T10:00:00Z", GitCommit: "0123456789abcdef"},
			"v1.2.0 (built 2026-03-01 10:00:00 UTC, commit 01234567)",
		},
		{
			"short commit",
			BuildInfo{Version: "v1.2.0", BuildTime: "2026-03-01T10:00:00Z", GitCommit: "abc"},
			"v1.2.0 (built 2026-03-01 10:00:00 UTC, commit abc)",
		},
	}

	for _, tt := range tests {
		if got := tt.info.String(); got != tt.expected {
			t.Errorf("%s: String() = %q; want %q", tt.name, got, tt.expected)
		}
	}
}

func TestInfoUsesBuildVariables(t *testing.T) {
	if got := Info(); got != GetBuildInfo().String() {
		t.Errorf("Info() = %q; want %q", got, GetBuildInfo().String())
	}
}
