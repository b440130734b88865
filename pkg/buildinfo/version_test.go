package buildinfo

import (
	"runtime"
	"strings"
	"testing"
)

func TestGetPrefersLdflags(t *testing.T) {
	orig := Version
	Version = "v1.2.3"
	t.Cleanup(func() { Version = orig })

	info := Get()
	if info.Version != "v1.2.3" {
		t.Errorf("Get().Version = %q, want v1.2.3", info.Version)
	}
	if info.GoVersion != runtime.Version() {
		t.Errorf("Get().GoVersion = %q", info.GoVersion)
	}
	if !strings.Contains(Template(), "version v1.2.3") {
		t.Errorf("Template() = %q", Template())
	}
}

func TestString(t *testing.T) {
	s := String()
	for _, want := range []string{"version: ", "commit: ", "built: ", "go: "} {
		if !strings.Contains(s, want) {
			t.Errorf("String() = %q, missing %q", s, want)
		}
	}
}
