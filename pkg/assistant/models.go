package assistant

// MessageInput is the user's utterance
type MessageInput struct {
	Text string `json:"text"`
}

// MessageRequest is the body of Message. Context carries conversation state
// from the previous response.
type MessageRequest struct {
	Input            *MessageInput   `json:"input,omitempty"`
	AlternateIntents bool            `json:"alternate_intents,omitempty"`
	Context          map[string]any  `json:"context,omitempty"`
	Entities         []RuntimeEntity `json:"entities,omitempty"`
	Intents          []RuntimeIntent `json:"intents,omitempty"`
}

type MessageResponse struct {
	Input    MessageInput    `json:"input"`
	Intents  []RuntimeIntent `json:"intents"`
	Entities []RuntimeEntity `json:"entities"`
	Context  map[string]any  `json:"context"`
	Output   OutputData      `json:"output"`
}

type OutputData struct {
	Text         []string `json:"text"`
	NodesVisited []string `json:"nodes_visited,omitempty"`
	LogMessages  []any    `json:"log_messages,omitempty"`
}

type RuntimeIntent struct {
	Intent     string  `json:"intent"`
	Confidence float64 `json:"confidence"`
}

type RuntimeEntity struct {
	Entity     string  `json:"entity"`
	Location   []int64 `json:"location"`
	Value      string  `json:"value"`
	Confidence float64 `json:"confidence,omitempty"`
}

type Workspace struct {
	WorkspaceID string         `json:"workspace_id,omitempty"`
	Name        string         `json:"name,omitempty"`
	Description string         `json:"description,omitempty"`
	Language    string         `json:"language,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	Intents     []Intent       `json:"intents,omitempty"`
	Entities    []Entity       `json:"entities,omitempty"`
	Created     string         `json:"created,omitempty"`
	Updated     string         `json:"updated,omitempty"`
}

type Pagination struct {
	RefreshURL string `json:"refresh_url"`
	NextURL    string `json:"next_url,omitempty"`
}

type WorkspaceCollection struct {
	Workspaces []Workspace `json:"workspaces"`
	Pagination Pagination  `json:"pagination"`
}

type Example struct {
	Text string `json:"text"`
}

type Intent struct {
	Intent      string    `json:"intent"`
	Description string    `json:"description,omitempty"`
	Examples    []Example `json:"examples,omitempty"`
}

type IntentCollection struct {
	Intents    []Intent   `json:"intents"`
	Pagination Pagination `json:"pagination"`
}

type EntityValue struct {
	Value    string   `json:"value"`
	Synonyms []string `json:"synonyms,omitempty"`
	Patterns []string `json:"patterns,omitempty"`
}

type Entity struct {
	Entity      string        `json:"entity"`
	Description string        `json:"description,omitempty"`
	FuzzyMatch  *bool         `json:"fuzzy_match,omitempty"`
	Values      []EntityValue `json:"values,omitempty"`
}

type EntityCollection struct {
	Entities   []Entity   `json:"entities"`
	Pagination Pagination `json:"pagination"`
}
