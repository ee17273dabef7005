package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/gdpr-rag/internal/core/ports/driving"
	"github.com/custodia-labs/gdpr-rag/internal/logger"
)

var (
	buildRerun bool
	buildWatch bool
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the vector index from the GDPR PDF",
	Long: `Loads the GDPR PDF, splits it into Articles 1-21, chunks each article,
embeds the chunks and saves the vector index to the index directory.

If an index already exists nothing is rebuilt unless --rerun is given,
which clears the existing index first.

With --watch the command keeps running and rebuilds the index each time
the PDF changes, until interrupted.`,
	Args: cobra.NoArgs,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().BoolVar(&buildRerun, "rerun", false, "clear an existing index and build it again")
	buildCmd.Flags().BoolVar(&buildWatch, "watch", false, "rebuild whenever the PDF changes")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, _ []string) error {
	if indexService == nil {
		return notConfigured("index")
	}

	report, err := indexService.Build(cmd.Context(), driving.BuildOptions{
		Rerun:    buildRerun,
		Progress: printer(cmd),
	})
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	if report.Manifest != nil {
		logger.Info("Build %s: %d pages, %d articles, %d chunks",
			report.Manifest.BuildID, report.Pages, report.Articles, report.Chunks)
	}

	if buildWatch {
		if err := indexService.Watch(cmd.Context(), printer(cmd)); err != nil {
			return fmt.Errorf("watch failed: %w", err)
		}
	}
	return nil
}
