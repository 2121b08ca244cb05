package llm

// Error codes for backend interactions.
const (
	ErrCodeGeneration      = "LLM_GENERATION_ERROR"
	ErrCodeInvalidResponse = "INVALID_LLM_RESPONSE"
)
