package domain

// NoArticle labels pages seen before the first article marker.
const NoArticle = 0

// Page is one physical page of the source PDF.
type Page struct {
	// Index is the zero-based physical page position in the PDF.
	Index int

	// Content is the page text. The loader fills it with raw extracted
	// text and the cleaner rewrites it in place.
	Content string

	// ArticleNumber is the article this page belongs to.
	// NoArticle means the page precedes the first detected article.
	ArticleNumber int
}
