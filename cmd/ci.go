// cmake-common ci boost, cmake-common ci cmake
package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/egor-tensin/cmake-common/internal/axis"
	"github.com/egor-tensin/cmake-common/internal/boost"
	"github.com/egor-tensin/cmake-common/internal/ci"
	"github.com/egor-tensin/cmake-common/internal/cmake"
	"github.com/egor-tensin/cmake-common/internal/msg"
	"github.com/egor-tensin/cmake-common/internal/toolset"
)

var flagCIService string

var ciCmd = &cobra.Command{
	Use:   "ci",
	Short: "Run a build with parameters taken from the CI environment",
	Long: `Run a build with the parameters (platform, configuration, toolset, Boost
version) taken from the environment variables of the detected CI service.
Travis, AppVeyor and GitHub Actions are supported.`,
}

var ciBoostCmd = &cobra.Command{
	Use:   "boost [-- b2-arg...]",
	Short: "Download and build Boost on a CI worker",
	Args:  cobra.ArbitraryArgs,
	Run:   doCIBoost,
}

var ciCMakeCmd = &cobra.Command{
	Use:   "cmake [-- cmake-arg...]",
	Short: "Build the checked out CMake project on a CI worker",
	Args:  cobra.ArbitraryArgs,
	Run:   doCICMake,
}

func init() {
	rootCmd.AddCommand(ciCmd)
	ciCmd.AddCommand(ciBoostCmd)
	ciCmd.AddCommand(ciCMakeCmd)
	ciCmd.PersistentFlags().StringVar(&flagCIService, "service", "", "CI service to assume instead of autodetection")
}

func detectCI() *ci.Env {
	env, err := ci.Detect(flagCIService)
	if err != nil {
		msg.Fatal("%v", err)
	}
	msg.Info("detected CI: %s", env.Name())
	return env
}

func ciAxes(env *ci.Env) ([]axis.Platform, []axis.Configuration, toolset.Spec) {
	platforms, err := env.Platforms()
	if err != nil {
		msg.Fatal("%v", err)
	}
	configurations, err := env.Configurations()
	if err != nil {
		msg.Fatal("%v", err)
	}
	spec, err := env.Toolset()
	if err != nil {
		msg.Fatal("%v", err)
	}
	return platforms, configurations, spec
}

func doCIBoost(cmd *cobra.Command, args []string) {
	env := detectCI()
	version, err := env.BoostVersion()
	if err != nil {
		msg.Fatal("%v", err)
	}
	unpackDir, err := env.BoostDir()
	if err != nil {
		msg.Fatal("%v", err)
	}

	dir, err := boost.NewDir(filepath.Join(unpackDir, version.DirName()))
	if err != nil {
		if err := os.MkdirAll(unpackDir, 0o755); err != nil {
			msg.Fatal("%v", err)
		}
		if dir, err = boost.Download(boost.DownloadParams{
			Version:   version,
			UnpackDir: unpackDir,
		}); err != nil {
			msg.Fatal("%v", err)
		}
	}

	platforms, configurations, spec := ciAxes(env)
	params := boost.BuildParams{
		Platforms:      platforms,
		Configurations: configurations,
		Toolset:        spec,
		Host:           axis.CurrentOS(),
		Verbose:        true,
		B2Args:         args,
	}
	if err := boost.Build(dir, params); err != nil {
		msg.Fatal("%v", err)
	}
}

func doCICMake(cmd *cobra.Command, args []string) {
	env := detectCI()
	checkoutDir, err := env.BuildDir()
	if err != nil {
		msg.Fatal("%v", err)
	}
	platforms, configurations, spec := ciAxes(env)

	boostDir := ""
	if version, err := env.BoostVersion(); err == nil {
		unpackDir, err := env.BoostDir()
		if err != nil {
			msg.Fatal("%v", err)
		}
		boostDir = filepath.Join(unpackDir, version.DirName())
	}

	params := cmake.BuildParams{
		SourceDir:     checkoutDir,
		BuildDir:      filepath.Join(checkoutDir, "build"),
		Platform:      platforms[0],
		Configuration: configurations[0],
		BoostDir:      boostDir,
		Toolset:       spec,
		Host:          axis.CurrentOS(),
		CMakeArgs:     append(env.ExtraCMakeArgs(), args...),
	}
	if err := cmake.Build(params); err != nil {
		msg.Fatal("%v", err)
	}
}
