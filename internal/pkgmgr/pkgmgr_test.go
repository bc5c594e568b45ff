package pkgmgr

import (
	"testing"

	"github.com/cockroachdb/errors"
)

// lookPathFrom builds a LookPathFunc that knows only the given binaries.
func lookPathFrom(available ...string) LookPathFunc {
	set := make(map[string]bool, len(available))
	for _, name := range available {
		set[name] = true
	}
	return func(name string) (string, error) {
		if set[name] {
			return "/usr/bin/" + name, nil
		}
		return "", errors.Newf("%s not found", name)
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name      string
		available []string
		want      Kind
	}{
		{"pacman only", []string{"pacman"}, KindPacman},
		{"apt only", []string{"apt"}, KindApt},
		{"dnf only", []string{"dnf"}, KindDnf},
		{"nothing", nil, KindUnknown},
		{"unrelated binaries", []string{"brew", "zypper"}, KindUnknown},
		{"pacman wins over apt", []string{"apt", "pacman"}, KindPacman},
		{"apt wins over dnf", []string{"dnf", "apt"}, KindApt},
		{"all present picks pacman", []string{"dnf", "apt", "pacman"}, KindPacman},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Detect(lookPathFrom(tt.available...)); got != tt.want {
				t.Errorf("Detect() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestKindSupported(t *testing.T) {
	for _, k := range Kinds() {
		if !k.Supported() {
			t.Errorf("%v should be supported", k)
		}
	}
	if KindUnknown.Supported() {
		t.Error("KindUnknown should not be supported")
	}
}

func TestKindsOrder(t *testing.T) {
	want := []Kind{KindPacman, KindApt, KindDnf}
	got := Kinds()
	if len(got) != len(want) {
		t.Fatalf("Kinds() returned %d kinds, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Kinds()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}
