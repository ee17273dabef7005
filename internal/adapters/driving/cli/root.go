// Package cli provides the gdpr-rag command line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/gdpr-rag/internal/core/ports/driving"
	"github.com/custodia-labs/gdpr-rag/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Services configured by the bootstrap or by tests.
var (
	indexService    driving.IndexService
	queryService    driving.QueryService
	settingsService driving.SettingsService
	articleService  driving.ArticleService

	// pipelineErr explains why the index and query services are missing.
	pipelineErr error
)

// Root flags.
var (
	verbose   bool
	configDir string
)

// Options are passed to the bootstrap once the root flags are parsed.
type Options struct {
	// ConfigDir overrides the configuration directory. Empty means default.
	ConfigDir string

	// Progress receives build status lines triggered by a query.
	Progress driving.ProgressFunc
}

// Services holds the driving ports used by the commands.
type Services struct {
	Index    driving.IndexService
	Query    driving.QueryService
	Settings driving.SettingsService
	Articles driving.ArticleService

	// PipelineErr is set when the AI providers could not be created.
	// Settings and articles still work; build and query report it.
	PipelineErr error
}

// Bootstrap creates the services.
type Bootstrap func(opts Options) (*Services, error)

var bootstrap Bootstrap

// SetBootstrap registers the function that wires the services.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// Command annotations read by setup.
const (
	// annotationNoServices marks commands that run without any services.
	annotationNoServices = "no-services"

	// annotationStderrProgress sends build status lines to stderr, for
	// commands whose stdout carries a protocol.
	annotationStderrProgress = "stderr-progress"
)

var rootCmd = &cobra.Command{
	Use:   "gdpr-rag",
	Short: "Ask questions about GDPR Articles 1-21",
	Long: `gdpr-rag answers questions about GDPR Articles 1-21 from a local vector index.

Build the index from the regulation PDF once, then query it:

  gdpr-rag build
  gdpr-rag query "What are the principles relating to processing?"

Answers cite the chunk ids they were grounded in, e.g. ['5:0', '5:1'].`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.gdpr-rag)")
}

// Execute runs the root command until ctx is cancelled.
// Command output goes to stdout; logs and errors go to stderr.
func Execute(ctx context.Context) error {
	rootCmd.SetOut(os.Stdout)
	return rootCmd.ExecuteContext(ctx)
}

func setup(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if cmd.Annotations[annotationNoServices] == "true" || bootstrap == nil || settingsService != nil {
		return nil
	}

	svcs, err := bootstrap(Options{
		ConfigDir: configDir,
		Progress:  printer(cmd),
	})
	if err != nil {
		return err
	}
	indexService = svcs.Index
	queryService = svcs.Query
	settingsService = svcs.Settings
	articleService = svcs.Articles
	pipelineErr = svcs.PipelineErr
	if pipelineErr != nil {
		logger.Warn("AI providers unavailable: %v", pipelineErr)
	}
	return nil
}

// printer writes status lines to the command's output.
func printer(cmd *cobra.Command) driving.ProgressFunc {
	if cmd.Annotations[annotationStderrProgress] == "true" {
		return func(message string) {
			cmd.PrintErrln(message)
		}
	}
	return func(message string) {
		cmd.Println(message)
	}
}

// notConfigured reports a missing service, with the wiring error if known.
func notConfigured(name string) error {
	if pipelineErr != nil {
		return fmt.Errorf("%s service not configured: %w", name, pipelineErr)
	}
	return errors.New(name + " service not configured")
}
