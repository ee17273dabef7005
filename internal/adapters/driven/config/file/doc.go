// Package file keeps gdpr-rag's user-editable state on disk: config.toml,
// prompt templates and the article summary table.
package file
