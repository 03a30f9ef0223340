package axis

import (
	"fmt"
	"runtime"
	"strings"
)

// Platform is the target architecture. PlatformAuto means "let the compiler
// decide": no architecture-forcing flags are passed anywhere.
type Platform int

const (
	PlatformAuto Platform = iota
	PlatformX86
	PlatformX64
)

func (p Platform) String() string {
	switch p {
	case PlatformAuto:
		return "auto"
	case PlatformX86:
		return "x86"
	case PlatformX64:
		return "x64"
	default:
		panic("Platform.String: unreachable")
	}
}

// AllPlatforms lists the concrete platforms, i.e. everything except auto.
func AllPlatforms() []Platform {
	return []Platform{PlatformX86, PlatformX64}
}

// ParsePlatform parses a platform token. "Win32" is accepted as an alias for
// x86, which is Visual Studio convention.
func ParsePlatform(s string) (Platform, error) {
	switch strings.ToLower(s) {
	case "auto":
		return PlatformAuto, nil
	case "x86", "win32":
		return PlatformX86, nil
	case "x64", "amd64", "x86_64":
		return PlatformX64, nil
	default:
		return PlatformAuto, fmt.Errorf("%w: invalid platform %q", ErrInvalidValue, s)
	}
}

// NativePlatform is the platform of the machine we're running on.
func NativePlatform() Platform {
	switch runtime.GOARCH {
	case "386", "arm":
		return PlatformX86
	default:
		return PlatformX64
	}
}

// AddressModel returns 32 or 64. For PlatformAuto it falls back to the native
// platform; callers that must not force an address model (b2's address-model=,
// -m32/-m64) check for PlatformAuto themselves before calling this.
func (p Platform) AddressModel() int {
	switch p {
	case PlatformX86:
		return 32
	case PlatformX64:
		return 64
	case PlatformAuto:
		return NativePlatform().AddressModel()
	default:
		panic("Platform.AddressModel: unreachable")
	}
}

// MSVCArch returns the value for the -A parameter of the Visual Studio CMake
// generators. Generators for VS 2017 and older default to Win32 even on x64
// hosts, so this is passed even for PlatformAuto (using the native platform).
func (p Platform) MSVCArch() string {
	switch p {
	case PlatformX86:
		return "Win32"
	case PlatformX64:
		return "x64"
	case PlatformAuto:
		return NativePlatform().MSVCArch()
	default:
		panic("Platform.MSVCArch: unreachable")
	}
}

// MinGWPrefix returns the target prefix of MinGW-w64 cross compilers, as in
// x86_64-w64-mingw32-gcc. Only defined for concrete platforms; the toolset
// catalog refuses to resolve MinGW against PlatformAuto.
func (p Platform) MinGWPrefix() string {
	switch p {
	case PlatformX86:
		return "i686"
	case PlatformX64:
		return "x86_64"
	default:
		panic("Platform.MinGWPrefix: unreachable")
	}
}

// StageSegment is the path component that keeps artifacts for different
// platforms from clashing. Empty for PlatformAuto: a literal "auto" directory
// would be meaningless.
func (p Platform) StageSegment() string {
	if p == PlatformAuto {
		return ""
	}
	return p.String()
}
