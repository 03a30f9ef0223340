package toolset

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/egor-tensin/cmake-common/internal/axis"
	"github.com/egor-tensin/cmake-common/internal/msg"
)

// Toolchain is one resolved strategy, bound to a target platform and host OS
// at resolution time. A strategy contributes arguments to four places; the
// default for each is "contribute nothing".
type Toolchain interface {
	// BootstrapArgs are the arguments for bootstrap.bat/bootstrap.sh, the
	// one-time step that builds b2 itself.
	BootstrapArgs() []string

	// LibraryArgs renders the b2 arguments contributed to every library
	// build. If a user config file was written for this invocation, release
	// removes it; release must be called exactly once, after the invocation,
	// on success and on error alike.
	LibraryArgs() (args []string, release func() error, err error)

	// ProjectArgs renders the CMake configure arguments (generator choice,
	// -A/-T, toolchain file). A toolchain file, if any, is written into
	// buildDir and shares its lifetime; there is nothing to release.
	ProjectArgs(buildDir string) ([]string, error)

	// ProjectBuildArgs are passed through to the underlying build tool after
	// "cmake --build ... --".
	ProjectBuildArgs() []string
}

// Resolve picks the toolchain strategy for a parsed spec. MinGW cannot be
// resolved against the auto platform: the cross compiler names are
// architecture-prefixed and have no "auto" form.
func Resolve(spec Spec, platform axis.Platform, host axis.OS) (Toolchain, error) {
	switch spec.Hint {
	case HintAuto:
		return &auto{platform: platform, host: host}, nil
	case HintMSVC, HintVisualStudio:
		return &msvc{platform: platform, host: host, version: spec.Version}, nil
	case HintGCC:
		return &gcc{platform: platform, host: host}, nil
	case HintMinGW:
		if platform == axis.PlatformAuto {
			return nil, fmt.Errorf("%w: mingw requires an explicit platform", ErrUnsupportedCombination)
		}
		return &mingw{platform: platform, host: host}, nil
	case HintClang:
		return &clang{platform: platform, host: host}, nil
	case HintClangCL:
		return &clangCL{platform: platform, host: host}, nil
	default:
		panic("toolset.Resolve: unreachable")
	}
}

// BootstrapArgs resolves the spec just long enough to render the bootstrap
// script arguments. Bootstrap runs once per Boost tree, before any
// per-platform strategy exists; MinGW is pinned to the native platform for
// this step, since b2 itself is a host tool.
func BootstrapArgs(spec Spec, host axis.OS) ([]string, error) {
	platform := axis.PlatformAuto
	if spec.Hint == HintMinGW {
		platform = axis.NativePlatform()
	}
	toolchain, err := Resolve(spec, platform, host)
	if err != nil {
		return nil, err
	}
	return toolchain.BootstrapArgs(), nil
}

func releaseNothing() error { return nil }

// b2AddressModel always pins the address model explicitly, except for the
// auto platform, where no architecture-forcing flag may be passed.
func b2AddressModel(platform axis.Platform) []string {
	if platform == axis.PlatformAuto {
		return nil
	}
	return []string{fmt.Sprintf("address-model=%d", platform.AddressModel())}
}

// auto lets the build drivers do their own detection; most commonly that
// means GCC on Linux-likes and MSVC on Windows.
type auto struct {
	platform axis.Platform
	host     axis.OS
}

func (t *auto) BootstrapArgs() []string { return nil }

func (t *auto) LibraryArgs() ([]string, func() error, error) {
	return b2AddressModel(t.platform), releaseNothing, nil
}

func (t *auto) ProjectArgs(buildDir string) ([]string, error) {
	if t.host == axis.OSWindows {
		// "auto" means MSVC here, and the -A parameter is still needed: the
		// generators for VS 2017 and older default to Win32.
		return (&msvc{platform: t.platform, host: t.host}).ProjectArgs(buildDir)
	}
	if t.platform == axis.PlatformAuto {
		// Nothing was requested, auto-detect everything.
		return nil, nil
	}
	// A specific platform needs the -m32/-m64 flags, which is GCC territory.
	return (&gcc{platform: t.platform, host: t.host}).ProjectArgs(buildDir)
}

func (t *auto) ProjectBuildArgs() []string { return nil }

type msvc struct {
	platform axis.Platform
	host     axis.OS
	version  *MSVCVersion // nil means the host's default MSVC
}

// bootstrap.bat picks up MSVC by default.
func (t *msvc) BootstrapArgs() []string { return nil }

func (t *msvc) LibraryArgs() ([]string, func() error, error) {
	toolset := "toolset=msvc"
	if t.version != nil {
		toolset = "toolset=msvc-" + t.version.Boost()
	}
	args := append(b2AddressModel(t.platform), toolset)
	return args, releaseNothing, nil
}

func (t *msvc) ProjectArgs(buildDir string) ([]string, error) {
	// This doesn't pick the generator, only the architecture within the
	// default Visual Studio generator.
	args := []string{"-A", t.platform.MSVCArch()}
	if t.version != nil {
		args = append(args, "-T", t.version.VSToolset())
	} else if t.host == axis.OSWindows {
		if name, ok := defaultVisualStudio(); ok {
			msg.Info("using the default Visual Studio: %s", name)
		}
	}
	return args, nil
}

func (t *msvc) ProjectBuildArgs() []string { return []string{"/m"} }

// toolchainFileName is the CMake toolchain file written into the build
// directory by the Makefile-generator strategies.
const toolchainFileName = "custom_toolchain.cmake"

// writeToolchainFile writes contents into the build directory (not a scoped
// temp file: the file must outlive the configure step) and renders the
// -DCMAKE_TOOLCHAIN_FILE/-G arguments.
func writeToolchainFile(buildDir, contents, generator string) ([]string, error) {
	path := filepath.Join(buildDir, toolchainFileName)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAuxiliaryFile, err)
	}
	return []string{
		"-D", "CMAKE_TOOLCHAIN_FILE=" + path,
		// The Visual Studio generator is the default on Windows, override it:
		"-G", generator,
	}, nil
}
