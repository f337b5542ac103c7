package dto

type ChatMessage struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

type AssistantQueryRequest struct {
	Message string        `json:"message"`
	History []ChatMessage `json:"history,omitempty"`
}

// AssistantQueryResponse always carries a response string; the assistant
// never surfaces a structured error to the end user.
type AssistantQueryResponse struct {
	Response string `json:"response"`
}
