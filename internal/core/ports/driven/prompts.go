package driven

// PromptStore supplies LLM prompt templates by name.
type PromptStore interface {
	// Load returns the template for name.
	Load(name string) (string, error)
}

// PromptAnswer grounds a question in retrieved context. The template
// expects {context} and {question} placeholders.
const PromptAnswer = "answer"
