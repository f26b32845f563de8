package views

// AssistantRequest carries a user utterance plus the session's ambient
// table. TableID is optional; when present it backfills create_orders
// calls in which the model forgot the table.
type AssistantRequest struct {
	Message string `json:"message"`
	TableID *int64 `json:"table_id"`
}

type AssistantReply struct {
	Reply string `json:"reply"`
}

type ToolSpec struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type ToolListResponse struct {
	Tools []ToolSpec `json:"tools"`
}

type ToolCallRequest struct {
	Name string         `json:"name"`
	Args map[string]any `json:"args"`
}

type ToolCallResponse struct {
	OK     bool   `json:"ok"`
	Result any    `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}
