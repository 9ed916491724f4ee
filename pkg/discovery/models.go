package discovery

type Environment struct {
	EnvironmentID string `json:"environment_id"`
	Name          string `json:"name"`
	Description   string `json:"description,omitempty"`
	Status        string `json:"status,omitempty"`
	ReadOnly      bool   `json:"read_only"`
	Size          string `json:"size,omitempty"`
	Created       string `json:"created,omitempty"`
	Updated       string `json:"updated,omitempty"`
}

type ListEnvironmentsResponse struct {
	Environments []Environment `json:"environments"`
}

type Collection struct {
	CollectionID    string `json:"collection_id"`
	Name            string `json:"name"`
	Description     string `json:"description,omitempty"`
	Status          string `json:"status,omitempty"`
	ConfigurationID string `json:"configuration_id,omitempty"`
	Language        string `json:"language,omitempty"`
	Created         string `json:"created,omitempty"`
	Updated         string `json:"updated,omitempty"`
}

type ListCollectionsResponse struct {
	Collections []Collection `json:"collections"`
}

// CreateCollectionOptions is the body of CreateCollection
type CreateCollectionOptions struct {
	Name            string `json:"name"`
	Description     string `json:"description,omitempty"`
	ConfigurationID string `json:"configuration_id,omitempty"`
	Language        string `json:"language,omitempty"`
}

type Notice struct {
	NoticeID    string `json:"notice_id"`
	Severity    string `json:"severity"`
	Step        string `json:"step,omitempty"`
	Description string `json:"description"`
}

// DocumentAccepted acknowledges an upload queued for ingestion
type DocumentAccepted struct {
	DocumentID string   `json:"document_id"`
	Status     string   `json:"status"`
	Notices    []Notice `json:"notices,omitempty"`
}

type QueryResponse struct {
	MatchingResults int64 `json:"matching_results"`
	// Results are the matching documents; their fields depend on the
	// collection's enrichments
	Results      []map[string]any `json:"results"`
	Aggregations []map[string]any `json:"aggregations,omitempty"`
	Passages     []QueryPassage   `json:"passages,omitempty"`
}

type QueryPassage struct {
	DocumentID   string  `json:"document_id"`
	PassageScore float64 `json:"passage_score"`
	PassageText  string  `json:"passage_text"`
	StartOffset  int64   `json:"start_offset"`
	EndOffset    int64   `json:"end_offset"`
	Field        string  `json:"field"`
}
