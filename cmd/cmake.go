// cmake-common cmake <source-dir> <build-dir> [-- cmake-arg...]
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/egor-tensin/cmake-common/internal/axis"
	"github.com/egor-tensin/cmake-common/internal/cmake"
	"github.com/egor-tensin/cmake-common/internal/msg"
	"github.com/egor-tensin/cmake-common/internal/toolset"
)

var (
	flagCMakePlatform      platformValue
	flagCMakeConfiguration configurationValue
	flagCMakeToolset       toolsetValue
	flagCMakeBoostDir      string
	flagCMakeInstallDir    string
)

var cmakeCmd = &cobra.Command{
	Use:   "cmake <source-dir> <build-dir> [-- cmake-arg...]",
	Short: "Configure and build a CMake project",
	Long: `Configure and build a CMake project, optionally pointing it at a previously
staged Boost. Everything after -- is passed to the configure phase verbatim.`,
	Args: cobra.MinimumNArgs(2),
	Run:  doCMake,
}

func init() {
	rootCmd.AddCommand(cmakeCmd)
	flags := cmakeCmd.Flags()
	flags.VarP(&flagCMakePlatform, "platform", "p", "Target platform (default: auto)")
	flags.VarP(&flagCMakeConfiguration, "configuration", "c", "Build configuration (default: Debug)")
	flags.VarP(&flagCMakeToolset, "toolset", "t", "Toolset to use, one of "+toolset.SpecUsage)
	flags.StringVar(&flagCMakeBoostDir, "boost", "", "Boost directory to point the project at")
	flags.StringVar(&flagCMakeInstallDir, "install", "", "Install into this directory after building")
}

func doCMake(cmd *cobra.Command, args []string) {
	params := cmake.BuildParams{
		SourceDir:     args[0],
		BuildDir:      args[1],
		InstallDir:    flagCMakeInstallDir,
		Platform:      flagCMakePlatform.value,
		Configuration: flagCMakeConfiguration.value,
		BoostDir:      flagCMakeBoostDir,
		Toolset:       flagCMakeToolset.value,
		Host:          axis.CurrentOS(),
		CMakeArgs:     args[2:],
	}
	if !cmd.Flags().Changed("toolset") {
		var err error
		if params.Toolset, err = settings.ParsedToolset(); err != nil {
			msg.Fatal("%v", err)
		}
	}
	if err := cmake.Build(params); err != nil {
		msg.Fatal("%v", err)
	}
}
