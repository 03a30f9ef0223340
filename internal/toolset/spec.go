// Package toolset resolves a toolset hint against a target platform into a
// concrete toolchain strategy, and renders the strategy's contribution to
// Boost.Build and CMake invocations.
package toolset

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrUnknownToolset         = errors.New("unknown toolset")
	ErrUnsupportedCombination = errors.New("unsupported toolset/platform combination")
	ErrAuxiliaryFile          = errors.New("auxiliary config file")
)

// Hint names a toolchain family without binding it to a platform yet.
type Hint int

const (
	HintAuto Hint = iota // let the build drivers do their own detection
	HintMSVC
	HintVisualStudio // same strategy as MSVC, versioned by product year
	HintGCC
	HintMinGW
	HintClang
	HintClangCL
)

func (h Hint) String() string {
	switch h {
	case HintAuto:
		return "auto"
	case HintMSVC:
		return "msvc"
	case HintVisualStudio:
		return "vs"
	case HintGCC:
		return "gcc"
	case HintMinGW:
		return "mingw"
	case HintClang:
		return "clang"
	case HintClangCL:
		return "clang-cl"
	default:
		panic("Hint.String: unreachable")
	}
}

// Spec is a parsed toolset request. Only the MSVC/VisualStudio hints carry a
// version; for every other hint Version is nil.
type Spec struct {
	Hint    Hint
	Version *MSVCVersion
}

func (s Spec) String() string {
	if s.Version == nil {
		return s.Hint.String()
	}
	if s.Hint == HintVisualStudio {
		return fmt.Sprintf("vs%d", s.Version.Year)
	}
	return fmt.Sprintf("msvc%d", s.Version.Raw)
}

// SpecUsage describes the accepted toolset tokens in --help output.
const SpecUsage = "auto/msvc[XYZ]/vsYYYY/gcc/mingw/clang/clang-cl"

// ParseSpec parses a toolset token. Unknown tokens fail fast, before any
// resolution or filesystem activity.
func ParseSpec(s string) (Spec, error) {
	switch s {
	case "auto":
		return Spec{Hint: HintAuto}, nil
	case "msvc":
		return Spec{Hint: HintMSVC}, nil
	case "gcc":
		return Spec{Hint: HintGCC}, nil
	case "mingw":
		return Spec{Hint: HintMinGW}, nil
	case "clang":
		return Spec{Hint: HintClang}, nil
	case "clang-cl":
		return Spec{Hint: HintClangCL}, nil
	}
	if raw, ok := strings.CutPrefix(s, "msvc"); ok {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return Spec{}, fmt.Errorf("%w: %q", ErrUnknownToolset, s)
		}
		version, err := MSVCVersionFromRaw(n)
		if err != nil {
			return Spec{}, err
		}
		return Spec{Hint: HintMSVC, Version: &version}, nil
	}
	if year, ok := strings.CutPrefix(s, "vs"); ok {
		n, err := strconv.Atoi(year)
		if err != nil {
			return Spec{}, fmt.Errorf("%w: %q", ErrUnknownToolset, s)
		}
		version, err := MSVCVersionFromYear(n)
		if err != nil {
			return Spec{}, err
		}
		return Spec{Hint: HintVisualStudio, Version: &version}, nil
	}
	return Spec{}, fmt.Errorf("%w: %q", ErrUnknownToolset, s)
}
