package boost

import (
	"path/filepath"

	"github.com/egor-tensin/cmake-common/internal/axis"
	"github.com/egor-tensin/cmake-common/internal/matrix"
	"github.com/egor-tensin/cmake-common/internal/msg"
	"github.com/egor-tensin/cmake-common/internal/toolset"
)

// stageRootDir is where built libraries go, relative to the Boost directory.
const stageRootDir = "stage"

var (
	b2Quiet   = []string{"warnings=off", "-d0"}
	b2Verbose = []string{"warnings=all", "-d2", "--debug-configuration"}
)

// BuildParams describes a single Boost build request, possibly spanning
// multiple b2 invocations.
type BuildParams struct {
	Platforms      []axis.Platform      // auto if empty
	Configurations []axis.Configuration // Debug and Release if empty
	Link           []axis.Linkage       // static if empty
	RuntimeLink    axis.Linkage         // static by default
	Toolset        toolset.Spec         // auto by default
	Host           axis.OS
	BuildDir       string // b2's intermediate files, b2's default if empty
	Verbose        bool
	B2Args         []string // passed through to b2 verbatim, after our own
}

func (p *BuildParams) normalize() {
	if len(p.Platforms) == 0 {
		p.Platforms = []axis.Platform{axis.PlatformAuto}
	}
	if len(p.Configurations) == 0 {
		p.Configurations = []axis.Configuration{axis.Debug, axis.Release}
	}
	if len(p.Link) == 0 {
		p.Link = []axis.Linkage{axis.Static}
	}
}

func (p *BuildParams) verbosity() []string {
	if p.Verbose {
		return b2Verbose
	}
	return b2Quiet
}

// ForEachInvocation enumerates the build matrix and calls fn once per b2
// invocation, with cell.Args fully composed. A toolchain is resolved once
// per platform and never shared across platforms; the auxiliary files a
// toolchain writes (user-config.jam) are scoped to one invocation.
func (p *BuildParams) ForEachInvocation(fn func(cell matrix.Cell) error) error {
	p.normalize()

	pairs, warnings := matrix.ResolveLinkage(p.Link, p.RuntimeLink, p.Host)
	for _, w := range warnings {
		msg.Warn("%s", w)
	}

	toolchains := make(map[axis.Platform]toolset.Toolchain, len(p.Platforms))
	for _, platform := range p.Platforms {
		toolchain, err := toolset.Resolve(p.Toolset, platform, p.Host)
		if err != nil {
			return err
		}
		toolchains[platform] = toolchain
	}

	for _, cell := range matrix.Enumerate(stageRootDir, p.Platforms, p.Configurations, pairs) {
		err := func() error {
			toolchainArgs, release, err := toolchains[cell.Platform].LibraryArgs()
			if err != nil {
				return err
			}
			defer release()

			args := make([]string, 0, len(toolchainArgs)+len(p.B2Args)+8)
			if p.BuildDir != "" {
				args = append(args, "--build-dir="+p.BuildDir)
			}
			args = append(args, "--stagedir="+cell.StageDir, "--layout=system")
			args = append(args, toolchainArgs...)
			args = append(args,
				"variant="+cell.Configuration.Variant(),
				"link="+cell.Link.String(),
				"runtime-link="+cell.RuntimeLink.String())
			args = append(args, p.verbosity()...)
			args = append(args, p.B2Args...)

			cell.Args = args
			return fn(cell)
		}()
		if err != nil {
			return err
		}
	}
	return nil
}

// Build bootstraps b2 if needed and builds every cell of the matrix.
func Build(dir *Dir, params BuildParams) error {
	bootstrapArgs, err := toolset.BootstrapArgs(params.Toolset, params.Host)
	if err != nil {
		return err
	}
	if err := dir.BootstrapIfNeeded(params.Host, bootstrapArgs...); err != nil {
		return err
	}

	return params.ForEachInvocation(func(cell matrix.Cell) error {
		msg.Info("building: %s", cell)
		if err := dir.B2(params.Host, cell.Args...); err != nil {
			return err
		}
		libraries, err := StagedLibraries(filepath.Join(dir.Path, cell.StageDir))
		if err != nil {
			msg.Warn("couldn't list the staged libraries: %v", err)
			return nil
		}
		for _, lib := range libraries {
			msg.Info("staged: %s", lib)
		}
		return nil
	})
}
