package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/gdpr-rag/internal/core/domain"
)

var (
	queryJSON     bool
	queryRetrieve bool
)

var queryCmd = &cobra.Command{
	Use:   "query [question]",
	Short: "Answer a question from GDPR Articles 1-21",
	Long: `Retrieves the chunks closest to the question, prints the prompt built from
them, then asks the language model and prints its response with the ids of
the chunks it was grounded in.

The index is built first if none exists.`,
	Args: cobra.ExactArgs(1),
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "output the answer as JSON")
	queryCmd.Flags().BoolVar(&queryRetrieve, "retrieve-only", false, "print the retrieved chunks without asking the model")
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	if queryService == nil {
		return notConfigured("query")
	}
	ctx := cmd.Context()
	question := args[0]

	if queryRetrieve {
		hits, err := queryService.Retrieve(ctx, question)
		if err != nil {
			return fmt.Errorf("query failed: %w", err)
		}
		return outputHits(cmd, hits)
	}

	answer, err := queryService.Prepare(ctx, question)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	if !queryJSON {
		cmd.Printf("\n --- \n Prompt: \n\n%s\n", answer.Prompt)
		cmd.Printf("\nLoading response from %s LLM (time taken will depend on hardware available)...\n",
			queryService.ModelName())
	}

	if err := queryService.Complete(ctx, answer); err != nil {
		if errors.Is(err, domain.ErrLLMUnavailable) && pipelineErr != nil {
			return fmt.Errorf("query failed: %w", pipelineErr)
		}
		return fmt.Errorf("query failed: %w", err)
	}

	if queryJSON {
		return outputAnswerJSON(cmd, answer)
	}
	cmd.Printf("Response: %s\nSources: %s\n", answer.Text, domain.FormatSources(answer.Sources))
	return nil
}

func outputAnswerJSON(cmd *cobra.Command, answer *domain.Answer) error {
	out := struct {
		Question string   `json:"question"`
		Response string   `json:"response"`
		Sources  []string `json:"sources"`
		Model    string   `json:"model"`
	}{answer.Question, answer.Text, answer.Sources, answer.Model}
	if out.Sources == nil {
		out.Sources = []string{}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal answer: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputHits(cmd *cobra.Command, hits []domain.RetrievedChunk) error {
	if len(hits) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	for i := range hits {
		cmd.Printf("  [%d] %s (%.4f)\n", i+1, hits[i].Chunk.ID, hits[i].Score)
		cmd.Printf("      %s\n", snippet(hits[i].Chunk.Content, 120))
	}
	return nil
}

// snippet shortens s to at most n runes on a single line.
func snippet(s string, n int) string {
	runes := []rune(s)
	for i, r := range runes {
		if r == '\n' {
			runes[i] = ' '
		}
	}
	if len(runes) <= n {
		return string(runes)
	}
	return string(runes[:n]) + "..."
}
