package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var articlesJSON bool

var articlesCmd = &cobra.Command{
	Use:   "articles",
	Short: "List the summaries of GDPR Articles 1-21",
	Long: `Prints the summary of every article in the index, in article order.
The summaries come from the built-in table or from paths.summaries.
No index is needed.`,
	Args: cobra.NoArgs,
	RunE: runArticles,
}

func init() {
	articlesCmd.Flags().BoolVar(&articlesJSON, "json", false, "output summaries as JSON")
	rootCmd.AddCommand(articlesCmd)
}

func runArticles(cmd *cobra.Command, _ []string) error {
	if articleService == nil {
		return notConfigured("article")
	}

	docs, err := articleService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list articles: %w", err)
	}

	if articlesJSON {
		out := make(map[string]string, len(docs))
		for _, d := range docs {
			out[fmt.Sprint(d.ArticleNumber)] = d.Summary
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal articles: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	for _, d := range docs {
		cmd.Printf("%2d. %s\n", d.ArticleNumber, strings.ReplaceAll(d.Summary, "**", ""))
	}
	return nil
}
