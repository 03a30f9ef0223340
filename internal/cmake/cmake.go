// Package cmake drives the configure and build phases of a CMake project,
// optionally pointing it at a previously staged Boost.
package cmake

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/egor-tensin/cmake-common/internal/axis"
	"github.com/egor-tensin/cmake-common/internal/matrix"
	"github.com/egor-tensin/cmake-common/internal/run"
	"github.com/egor-tensin/cmake-common/internal/toolset"
)

// BuildParams describes one configure+build of a CMake project. Unlike a
// Boost build, one request maps to exactly one platform and configuration.
type BuildParams struct {
	SourceDir     string
	BuildDir      string
	InstallDir    string // install after building if non-empty
	Platform      axis.Platform
	Configuration axis.Configuration
	BoostDir      string // staged Boost to point the project at
	Toolset       toolset.Spec
	Host          axis.OS
	CMakeArgs     []string // passed through to the configure phase verbatim
}

func (p *BuildParams) normalize() error {
	var err error
	if p.SourceDir, err = filepath.Abs(p.SourceDir); err != nil {
		return err
	}
	if p.BuildDir, err = filepath.Abs(p.BuildDir); err != nil {
		return err
	}
	if p.InstallDir != "" {
		if p.InstallDir, err = filepath.Abs(p.InstallDir); err != nil {
			return err
		}
	}
	if p.BoostDir != "" {
		if p.BoostDir, err = filepath.Abs(p.BoostDir); err != nil {
			return err
		}
	}
	return nil
}

func (p *BuildParams) boostArgs() []string {
	if p.BoostDir == "" {
		return nil
	}
	stageDir := matrix.StageDir("stage", p.Platform, p.Configuration)
	return []string{
		"-D", "BOOST_ROOT=" + p.BoostDir,
		"-D", "BOOST_LIBRARYDIR=" + filepath.Join(p.BoostDir, stageDir, "lib"),
	}
}

// configureArgs renders the full cmake configure command line. The toolchain
// contributes first (it may write a toolchain file into the build dir), the
// source/build directory pair always comes last.
func (p *BuildParams) configureArgs(toolchain toolset.Toolchain) ([]string, error) {
	args, err := toolchain.ProjectArgs(p.BuildDir)
	if err != nil {
		return nil, err
	}
	args = append(args, "-D", "CMAKE_BUILD_TYPE="+p.Configuration.String())
	args = append(args, p.boostArgs()...)
	args = append(args, "-D", "CMAKE_EXPORT_COMPILE_COMMANDS=ON")
	if p.InstallDir != "" {
		args = append(args, "-D", "CMAKE_INSTALL_PREFIX="+p.InstallDir)
	}
	args = append(args, p.CMakeArgs...)
	args = append(args, "-B", p.BuildDir, "-H", p.SourceDir)
	return args, nil
}

func (p *BuildParams) buildArgs(toolchain toolset.Toolchain) []string {
	args := []string{"--build", p.BuildDir}
	// Multi-config generators (Visual Studio) ignore CMAKE_BUILD_TYPE and
	// need the configuration repeated here; single-config ones ignore this.
	args = append(args, "--config", p.Configuration.String())
	if p.InstallDir != "" {
		args = append(args, "--target", "install")
	}
	if extra := toolchain.ProjectBuildArgs(); len(extra) > 0 {
		args = append(args, "--")
		args = append(args, extra...)
	}
	return args
}

// Build configures and builds the project.
func Build(params BuildParams) error {
	if err := params.normalize(); err != nil {
		return err
	}
	toolchain, err := toolset.Resolve(params.Toolset, params.Platform, params.Host)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(params.BuildDir, 0o755); err != nil {
		return err
	}

	configure, err := params.configureArgs(toolchain)
	if err != nil {
		return err
	}
	if err := run.Command("cmake", configure...); err != nil {
		return err
	}

	env := []string{fmt.Sprintf("CMAKE_BUILD_PARALLEL_LEVEL=%d", runtime.NumCPU())}
	return run.CommandEnv(env, "cmake", params.buildArgs(toolchain)...)
}
