package pkgmgr

// Kind identifies a supported OS package manager.
type Kind string

const (
	// KindPacman is the Arch Linux package manager.
	KindPacman Kind = "pacman"

	// KindApt is the Debian/Ubuntu package manager.
	KindApt Kind = "apt"

	// KindDnf is the Fedora/RHEL package manager.
	KindDnf Kind = "dnf"

	// KindUnknown means no supported package manager was found.
	KindUnknown Kind = "unknown"
)

// String returns the package manager name.
func (k Kind) String() string {
	return string(k)
}

// Supported reports whether nvsetup can install dependencies with this kind.
func (k Kind) Supported() bool {
	return k == KindPacman || k == KindApt || k == KindDnf
}

// probeOrder defines the detection priority. The first executable found
// on PATH wins; a host with both pacman and apt (e.g., a container with
// debtap) is treated as an Arch system.
var probeOrder = []struct {
	kind   Kind
	binary string
}{
	{KindPacman, "pacman"},
	{KindApt, "apt"},
	{KindDnf, "dnf"},
}

// LookPathFunc reports the full path of an executable, or an error if it
// is not found. It matches the signature of exec.LookPath and
// execx.Runner.LookPath.
type LookPathFunc func(name string) (string, error)

// Detect probes for known package manager executables in fixed priority
// order (pacman, apt, dnf) and returns the first match, or KindUnknown.
// Detection is a pure lookup; it never returns an error.
func Detect(lookPath LookPathFunc) Kind {
	for _, probe := range probeOrder {
		if _, err := lookPath(probe.binary); err == nil {
			return probe.kind
		}
	}
	return KindUnknown
}

// Kinds returns all supported package manager kinds in detection order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, len(probeOrder))
	for _, probe := range probeOrder {
		kinds = append(kinds, probe.kind)
	}
	return kinds
}
