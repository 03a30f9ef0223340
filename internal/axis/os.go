package axis

import "runtime"

// OS identifies the host operating system. It is always resolved by the
// caller (CurrentOS or a CI variable) and passed around as a plain value, so
// the argument synthesis itself stays deterministic.
type OS int

const (
	OSWindows OS = iota
	OSLinux
	OSCygwin
	OSMacOS
)

func (o OS) String() string {
	switch o {
	case OSWindows:
		return "Windows"
	case OSLinux:
		return "Linux"
	case OSCygwin:
		return "Cygwin"
	case OSMacOS:
		return "macOS"
	default:
		panic("OS.String: unreachable")
	}
}

// CurrentOS detects the OS this binary runs on. A Cygwin environment is not
// distinguishable from plain Windows here (the binary is a Windows binary
// either way), so OSCygwin is only ever seen when a caller passes it in
// explicitly.
func CurrentOS() OS {
	switch runtime.GOOS {
	case "windows":
		return OSWindows
	case "darwin":
		return OSMacOS
	default:
		return OSLinux
	}
}

// WindowsLike reports whether executables carry the .exe suffix and
// bootstrap.bat is used instead of bootstrap.sh.
func (o OS) WindowsLike() bool {
	return o == OSWindows || o == OSCygwin
}

// LinuxLike reports whether the system C library is assumed to only be
// available as a shared library (glibc, BSD libc).
func (o OS) LinuxLike() bool {
	return o == OSLinux || o == OSCygwin || o == OSMacOS
}
