package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/gdpr-rag/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for gdpr-rag resources.
	uriScheme = "gdpr://"

	articlesURI = uriScheme + "articles"
)

// articleInfo is the JSON shape of one listed article.
type articleInfo struct {
	Number  int    `json:"number"`
	Summary string `json:"summary"`
}

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         articlesURI,
		Name:        "articles",
		Description: "Summaries of GDPR articles 1 to 21",
		MIMEType:    "application/json",
	}, s.handleArticlesResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: articlesURI + "/{number}",
		Name:        "article-summary",
		Description: "Summary of a single GDPR article",
		MIMEType:    "text/plain",
	}, s.handleArticleResource)
}

// handleArticlesResource returns every article summary.
func (s *Server) handleArticlesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Articles == nil {
		return textResult(req.Params.URI, "application/json", "[]"), nil
	}

	docs, err := s.ports.Articles.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing articles: %w", err)
	}

	infos := make([]articleInfo, len(docs))
	for i, d := range docs {
		infos[i] = articleInfo{Number: d.ArticleNumber, Summary: d.Summary}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling articles: %w", err)
	}
	return textResult(req.Params.URI, "application/json", string(data)), nil
}

// handleArticleResource returns one article's summary.
func (s *Server) handleArticleResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	n := extractArticleNumber(req.Params.URI)
	if s.ports.Articles == nil || n < domain.FirstArticle || n > domain.LastArticle {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	docs, err := s.ports.Articles.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing articles: %w", err)
	}
	for _, d := range docs {
		if d.ArticleNumber == n {
			return textResult(req.Params.URI, "text/plain", d.Summary), nil
		}
	}
	return nil, mcp.ResourceNotFoundError(req.Params.URI)
}

func textResult(uri, mimeType, text string) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: mimeType,
			Text:     text,
		}},
	}
}

// extractArticleNumber parses gdpr://articles/{number}. It returns 0 when
// the URI does not match.
func extractArticleNumber(uri string) int {
	const prefix = articlesURI + "/"

	if !strings.HasPrefix(uri, prefix) {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimPrefix(uri, prefix))
	if err != nil {
		return 0
	}
	return n
}
