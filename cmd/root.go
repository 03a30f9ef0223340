// cmake-common: build Boost and CMake projects across toolchains.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/egor-tensin/cmake-common/internal/config"
	"github.com/egor-tensin/cmake-common/internal/msg"
)

var flagVerbose bool

// settings are the cmake-common.toml defaults, loaded before any command
// runs. Explicit flags take precedence over them.
var settings config.Settings

var rootCmd = &cobra.Command{
	Use:   "cmake-common",
	Short: "Build Boost and CMake projects across toolchains",
	Long: `Build Boost and CMake projects across toolchains.

The same command lines work on Windows and Linux, with MSVC, GCC, MinGW-w64,
Clang and clang-cl; the toolchain differences are translated into b2 and
cmake arguments internally.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		var err error
		settings, err = config.Load(".", config.CurrentEnv())
		if err != nil {
			msg.Fatal("%v", err)
		}
		if settings.Verbose {
			flagVerbose = true
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Verbose b2/cmake output")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
