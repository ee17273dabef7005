package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/gdpr-rag/internal/adapters/driving/tui"
)

// isTerminal reports whether stdin is an interactive terminal.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

var askCmd = &cobra.Command{
	Use:   "ask",
	Short: "Ask questions in an interactive session",
	Long: `Opens an interactive terminal session for asking questions about
GDPR Articles 1-21. Each answer lists the chunk ids it was grounded in.

Controls:
  Enter    - Ask
  n        - New question
  ↑/k, ↓/j - Scroll the answer
  Tab      - Article summaries
  ?        - Toggle help
  Ctrl+C   - Quit`,
	Args: cobra.NoArgs,
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, _ []string) (err error) {
	if queryService == nil {
		return notConfigured("query")
	}
	if !isTerminal() {
		return errors.New("ask needs an interactive terminal, use 'gdpr-rag query' instead")
	}

	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = fmt.Errorf("panic in TUI: %v", r)
		}
	}()

	app, err := tui.NewApp(&tui.Ports{
		Query:    queryService,
		Articles: articleService,
	})
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	if err := app.WithContext(cmd.Context()).Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
