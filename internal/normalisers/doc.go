// Package normalisers turns source files into clean page text.
//
// Subpackages:
//
//   - pdf: PageLoader reading one record per physical PDF page
//   - boilerplate: PageCleaner profiles that strip header and footer literals
package normalisers
