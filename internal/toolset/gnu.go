package toolset

import (
	"fmt"

	"github.com/egor-tensin/cmake-common/internal/axis"
)

// makefilesGenerator overrides the default Visual Studio generator on Windows
// with a Makefile one. MinGW-w64 distributions ship mingw32-make.exe rather
// than make.exe, so that's detected first.
func makefilesGenerator(host axis.OS) string {
	if host == axis.OSWindows && which("mingw32-make") {
		return "MinGW Makefiles"
	}
	return "Unix Makefiles"
}

// nmakeOrMakefiles prefers NMake on Windows: MinGW utilities like make might
// be unavailable while nmake very much can be there.
func nmakeOrMakefiles(host axis.OS) string {
	if host == axis.OSWindows && which("nmake") {
		return "NMake Makefiles"
	}
	return makefilesGenerator(host)
}

// cmakeCompilerFlags renders the -m32/-m64 part of a toolchain file. Empty
// for the auto platform: nothing may be forced then.
func cmakeCompilerFlags(platform axis.Platform) string {
	if platform == axis.PlatformAuto {
		return ""
	}
	model := platform.AddressModel()
	return fmt.Sprintf("set(CMAKE_C_FLAGS      -m%d)\nset(CMAKE_CXX_FLAGS    -m%d)\n", model, model)
}

// gcc forces the GCC compiler identity regardless of what the build drivers
// would detect; a native Linux GCC and a MinGW-flavoured GCC on Windows are
// treated the same.
type gcc struct {
	platform axis.Platform
	host     axis.OS
}

func (t *gcc) BootstrapArgs() []string {
	if t.host.WindowsLike() {
		return []string{"gcc"}
	}
	return []string{"--with-toolset=gcc"}
}

func (t *gcc) LibraryArgs() ([]string, func() error, error) {
	path, err := fullExeName(t.host, "g++")
	if err != nil {
		return nil, nil, err
	}
	config := &userConfig{compiler: "gcc", path: path}
	configArgs, release, err := config.write()
	if err != nil {
		return nil, nil, err
	}
	return append(b2AddressModel(t.platform), configArgs...), release, nil
}

func (t *gcc) ProjectArgs(buildDir string) ([]string, error) {
	contents := "set(CMAKE_C_COMPILER   gcc)\nset(CMAKE_CXX_COMPILER g++)\n" +
		cmakeCompilerFlags(t.platform)
	return writeToolchainFile(buildDir, contents, makefilesGenerator(t.host))
}

func (t *gcc) ProjectBuildArgs() []string { return nil }

// mingw is GCC with the PLATFORM-w64-mingw32 prefix. The archiver and ranlib
// are spelled out explicitly: the drivers can't auto-detect prefixed binutils.
type mingw struct {
	platform axis.Platform // never PlatformAuto, Resolve guarantees that
	host     axis.OS
}

func (t *mingw) tool(name string) string {
	return t.platform.MinGWPrefix() + "-w64-mingw32-" + name
}

func (t *mingw) BootstrapArgs() []string {
	if t.host.WindowsLike() {
		// On Windows, prefer GCC if it's available.
		return gccOrAuto()
	}
	return nil
}

func (t *mingw) LibraryArgs() ([]string, func() error, error) {
	path, err := fullExeName(t.host, t.tool("g++"))
	if err != nil {
		return nil, nil, err
	}
	// Boost.Build is smart enough to detect the prefix and prepend it to the
	// other tools like ar, so declaring g++ is enough.
	config := &userConfig{compiler: "gcc", path: path}
	configArgs, release, err := config.write()
	if err != nil {
		return nil, nil, err
	}
	return append(b2AddressModel(t.platform), configArgs...), release, nil
}

func (t *mingw) ProjectArgs(buildDir string) ([]string, error) {
	contents := fmt.Sprintf(`set(CMAKE_C_COMPILER   %s)
set(CMAKE_CXX_COMPILER %s)
set(CMAKE_AR           %s)
set(CMAKE_RANLIB       %s)
set(CMAKE_RC_COMPILER  %s)
set(CMAKE_SYSTEM_NAME  Windows)
`, t.tool("gcc"), t.tool("g++"), t.tool("gcc-ar"), t.tool("gcc-ranlib"), t.tool("windres"))
	return writeToolchainFile(buildDir, contents, makefilesGenerator(t.host))
}

func (t *mingw) ProjectBuildArgs() []string { return nil }

type clang struct {
	platform axis.Platform
	host     axis.OS
}

func (t *clang) BootstrapArgs() []string {
	if t.host.WindowsLike() {
		// bootstrap.bat isn't really aware of Clang, so try GCC, then
		// auto-detect.
		return gccOrAuto()
	}
	// bootstrap.sh, on the other hand, can build b2 using Clang just fine.
	return []string{"--with-toolset=clang"}
}

func (t *clang) b2Options() []b2Option {
	options := []b2Option{
		{"cxxflags", "-DBOOST_USE_WINDOWS_H"},
		// Even with warnings off, older Boost sources trip Clang's narrowing
		// check; it's an error, not a warning, so it has to be neutralized:
		//     constant expression evaluates to -105 which cannot be narrowed
		{"cxxflags", "-Wno-c++11-narrowing"},
	}
	if t.host == axis.OSWindows {
		// Prefer LLVM binutils; ar/ranlib aren't there by default on Windows.
		if which("llvm-ar") {
			options = append(options, b2Option{"archiver", "llvm-ar"})
		}
		if which("llvm-ranlib") {
			options = append(options, b2Option{"ranlib", "llvm-ranlib"})
		}
	}
	return options
}

// clangRequirements makes clang.exe/clang++.exe agree with the chosen runtime
// library on Windows; the flags are borrowed from CMake's Windows-Clang.cmake.
const clangRequirements = `project : requirements
    <target-os>windows:<define>_MT
    <target-os>windows,<variant>debug:<define>_DEBUG
    <target-os>windows,<runtime-link>static,<variant>debug:<cxxflags>"-Xclang -flto-visibility-public-std -Xclang --dependent-lib=libcmtd"
    <target-os>windows,<runtime-link>static,<variant>release:<cxxflags>"-Xclang -flto-visibility-public-std -Xclang --dependent-lib=libcmt"
    <target-os>windows,<runtime-link>shared,<variant>debug:<cxxflags>"-D_DLL -Xclang --dependent-lib=msvcrtd"
    <target-os>windows,<runtime-link>shared,<variant>release:<cxxflags>"-D_DLL -Xclang --dependent-lib=msvcrt"
;
`

func (t *clang) LibraryArgs() ([]string, func() error, error) {
	path, err := fullExeName(t.host, "clang++")
	if err != nil {
		return nil, nil, err
	}
	config := &userConfig{
		compiler: "clang",
		path:     path,
		options:  t.b2Options(),
		preamble: clangRequirements,
	}
	configArgs, release, err := config.write()
	if err != nil {
		return nil, nil, err
	}
	return append(b2AddressModel(t.platform), configArgs...), release, nil
}

func (t *clang) ProjectArgs(buildDir string) ([]string, error) {
	// Prior to CMake 3.15, only clang-cl.exe was supported on Windows:
	// clang++ would be passed MSVC-style options it doesn't understand.
	contents := `if(CMAKE_VERSION VERSION_LESS "3.15" AND WIN32)
    set(CMAKE_C_COMPILER   clang-cl)
    set(CMAKE_CXX_COMPILER clang-cl)
else()
    set(CMAKE_C_COMPILER   clang)
    set(CMAKE_CXX_COMPILER clang++)
endif()
` + cmakeCompilerFlags(t.platform)
	return writeToolchainFile(buildDir, contents, nmakeOrMakefiles(t.host))
}

func (t *clang) ProjectBuildArgs() []string { return nil }

// clangCL drives the MSVC-compatible clang-cl.exe. toolset=clang-win handles
// the runtime-link flags itself, so no user config is required.
type clangCL struct {
	platform axis.Platform
	host     axis.OS
}

func (t *clangCL) BootstrapArgs() []string {
	// There's no point in building b2 itself with clang-cl; clang, presumably
	// installed alongside it, should still be used if possible.
	return (&clang{platform: t.platform, host: t.host}).BootstrapArgs()
}

func (t *clangCL) LibraryArgs() ([]string, func() error, error) {
	args := append(b2AddressModel(t.platform),
		"toolset=clang-win",
		"define=BOOST_USE_WINDOWS_H",
	)
	return args, releaseNothing, nil
}

func (t *clangCL) ProjectArgs(buildDir string) ([]string, error) {
	contents := `set(CMAKE_C_COMPILER   clang-cl)
set(CMAKE_CXX_COMPILER clang-cl)
set(CMAKE_SYSTEM_NAME  Windows)
` + cmakeCompilerFlags(t.platform)
	return writeToolchainFile(buildDir, contents, nmakeOrMakefiles(t.host))
}

func (t *clangCL) ProjectBuildArgs() []string { return nil }
