// cmake-common download <version>
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/egor-tensin/cmake-common/internal/axis"
	"github.com/egor-tensin/cmake-common/internal/boost"
	"github.com/egor-tensin/cmake-common/internal/msg"
	"github.com/egor-tensin/cmake-common/internal/toolset"
)

var (
	flagDownloadUnpackDir   string
	flagDownloadCacheDir    string
	flagDownloadFromGit     bool
	flagDownloadNoBootstrap bool
	flagDownloadToolset     toolsetValue
)

var downloadCmd = &cobra.Command{
	Use:   "download <version>",
	Short: "Download a Boost release",
	Long: `Download and unpack a Boost release (e.g. 1.71.0) and bootstrap b2 in it,
so that a following "cmake-common boost" can build libraries right away.`,
	Args: cobra.ExactArgs(1),
	Run:  doDownload,
}

func init() {
	rootCmd.AddCommand(downloadCmd)
	flags := downloadCmd.Flags()
	flags.StringVar(&flagDownloadUnpackDir, "unpack", "", "Directory to unpack into (default: the cache directory or .)")
	flags.StringVar(&flagDownloadCacheDir, "cache", "", "Keep the downloaded archive in this directory")
	flags.BoolVar(&flagDownloadFromGit, "git", false, "Clone the boostorg/boost superproject instead of fetching an archive")
	flags.BoolVar(&flagDownloadNoBootstrap, "no-bootstrap", false, "Don't bootstrap b2 after unpacking")
	flags.VarP(&flagDownloadToolset, "toolset", "t", "Toolset to bootstrap with, one of "+toolset.SpecUsage)
}

func doDownload(cmd *cobra.Command, args []string) {
	version, err := boost.ParseVersion(args[0])
	if err != nil {
		msg.Fatal("%v", err)
	}

	cacheDir := flagDownloadCacheDir
	if cacheDir == "" {
		cacheDir = settings.CacheDir
	}
	dir, err := boost.Download(boost.DownloadParams{
		Version:   version,
		UnpackDir: flagDownloadUnpackDir,
		CacheDir:  cacheDir,
		FromGit:   flagDownloadFromGit,
	})
	if err != nil {
		msg.Fatal("%v", err)
	}
	msg.Info("Boost is at: %s", dir.Path)

	if flagDownloadNoBootstrap {
		return
	}
	host := axis.CurrentOS()
	bootstrapArgs, err := toolset.BootstrapArgs(flagDownloadToolset.value, host)
	if err != nil {
		msg.Fatal("%v", err)
	}
	if err := dir.BootstrapIfNeeded(host, bootstrapArgs...); err != nil {
		msg.Fatal("%v", err)
	}
}
