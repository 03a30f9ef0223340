// cmake-common boost <boost-dir> [-- b2-arg...]
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/egor-tensin/cmake-common/internal/axis"
	"github.com/egor-tensin/cmake-common/internal/boost"
	"github.com/egor-tensin/cmake-common/internal/msg"
	"github.com/egor-tensin/cmake-common/internal/toolset"
)

var (
	flagBoostPlatforms      platformList
	flagBoostConfigurations configurationList
	flagBoostLink           linkageList
	flagBoostRuntimeLink    linkageValue
	flagBoostToolset        toolsetValue
	flagBoostBuildDir       string
)

var boostCmd = &cobra.Command{
	Use:   "boost <boost-dir> [-- b2-arg...]",
	Short: "Build Boost libraries",
	Long: `Build Boost libraries across the requested platform/configuration/linkage
matrix. Everything after -- is passed to b2 verbatim (e.g. --with-filesystem).`,
	Args: cobra.MinimumNArgs(1),
	Run:  doBoost,
}

func init() {
	rootCmd.AddCommand(boostCmd)
	flags := boostCmd.Flags()
	flags.VarP(&flagBoostPlatforms, "platform", "p", "Target platform(s), e.g. x86,x64 (default: auto)")
	flags.VarP(&flagBoostConfigurations, "configuration", "c", "Build configuration(s), e.g. Debug,Release")
	flags.Var(&flagBoostLink, "link", "Library linkage(s), static and/or shared (default: static)")
	flags.Var(&flagBoostRuntimeLink, "runtime-link", "Runtime linkage, static or shared (default: static)")
	flags.VarP(&flagBoostToolset, "toolset", "t", "Toolset to use, one of "+toolset.SpecUsage)
	flags.StringVar(&flagBoostBuildDir, "build", "", "b2 intermediate build directory (b2's default if empty)")
}

func doBoost(cmd *cobra.Command, args []string) {
	dir, err := boost.NewDir(args[0])
	if err != nil {
		msg.Fatal("%v", err)
	}
	params, err := boostBuildParams(cmd, args[1:])
	if err != nil {
		msg.Fatal("%v", err)
	}
	if err := boost.Build(dir, params); err != nil {
		msg.Fatal("%v", err)
	}
}

// boostBuildParams assembles the build request from the flags, falling back
// to the cmake-common.toml settings for whatever wasn't passed explicitly.
func boostBuildParams(cmd *cobra.Command, b2Args []string) (boost.BuildParams, error) {
	params := boost.BuildParams{
		Platforms:      flagBoostPlatforms.values,
		Configurations: flagBoostConfigurations.values,
		Link:           flagBoostLink.values,
		RuntimeLink:    flagBoostRuntimeLink.value,
		Toolset:        flagBoostToolset.value,
		Host:           axis.CurrentOS(),
		BuildDir:       flagBoostBuildDir,
		Verbose:        flagVerbose,
		B2Args:         b2Args,
	}

	var err error
	if len(params.Platforms) == 0 {
		if params.Platforms, err = settings.ParsedPlatforms(); err != nil {
			return params, err
		}
	}
	if len(params.Configurations) == 0 {
		if params.Configurations, err = settings.ParsedConfigurations(); err != nil {
			return params, err
		}
	}
	if len(params.Link) == 0 {
		if params.Link, err = settings.ParsedLink(); err != nil {
			return params, err
		}
	}
	if !cmd.Flags().Changed("runtime-link") {
		if params.RuntimeLink, err = settings.ParsedRuntimeLink(); err != nil {
			return params, err
		}
	}
	if !cmd.Flags().Changed("toolset") {
		if params.Toolset, err = settings.ParsedToolset(); err != nil {
			return params, err
		}
	}
	return params, nil
}
