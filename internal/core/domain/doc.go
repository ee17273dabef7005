// Package domain holds the types every layer of gdpr-rag shares:
//
//   - Page: one PDF page and the article it belongs to
//   - ArticleDocument: the cleaned text of one article, pages joined
//   - Chunk: a window of an article, identified as "article:index"
//   - RetrievedChunk and Answer: the results of a query
//   - ArticleSummaries: the validated article summary table
//   - IndexManifest: what a persisted index was built from
//
// It imports only the standard library. Every other internal package may
// import it; it imports none of them.
package domain
