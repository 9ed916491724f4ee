package speechtotext

// SessionStatus is the server reported state of a recognition session
type SessionStatus string

const (
	SessionInitialized SessionStatus = "initialized"
	SessionReady       SessionStatus = "ready"
	SessionRecognizing SessionStatus = "recognizing"
	SessionComplete    SessionStatus = "complete"
	SessionError       SessionStatus = "error"
)

// SessionInfo is the session description returned by GetSessionStatus
type SessionInfo struct {
	State         SessionStatus `json:"state"`
	Model         string        `json:"model"`
	Recognize     string        `json:"recognize"`
	ObserveResult string        `json:"observe_result"`
	RecognizeWS   string        `json:"recognizeWS"`
}

// SessionStatusResult wraps SessionInfo as sent by the service
type SessionStatusResult struct {
	Session SessionInfo `json:"session"`
}

// SpeechRecognitionEvent is one recognition document. With interim results
// enabled the service sends several of them for the same utterance.
type SpeechRecognitionEvent struct {
	Results       []SpeechRecognitionResult `json:"results,omitempty"`
	ResultIndex   int64                     `json:"result_index"`
	SpeakerLabels []SpeakerLabelsResult     `json:"speaker_labels,omitempty"`
	Warnings      []string                  `json:"warnings,omitempty"`
	State         string                    `json:"state,omitempty"`
}

type SpeechRecognitionResult struct {
	Final            bool                           `json:"final"`
	Alternatives     []SpeechRecognitionAlternative `json:"alternatives"`
	KeywordsResult   map[string][]KeywordResult     `json:"keywords_result,omitempty"`
	WordAlternatives []WordAlternativeResults       `json:"word_alternatives,omitempty"`
	EndOfUtterance   string                         `json:"end_of_utterance,omitempty"`
}

type SpeechRecognitionAlternative struct {
	Transcript string   `json:"transcript"`
	Confidence *float64 `json:"confidence,omitempty"`
	// Timestamps holds [word, start, end] triples
	Timestamps [][]any `json:"timestamps,omitempty"`
	// WordConfidence holds [word, confidence] pairs
	WordConfidence [][]any `json:"word_confidence,omitempty"`
}

type KeywordResult struct {
	NormalizedText string  `json:"normalized_text"`
	StartTime      float64 `json:"start_time"`
	EndTime        float64 `json:"end_time"`
	Confidence     float64 `json:"confidence"`
}

type WordAlternativeResults struct {
	StartTime    float64                 `json:"start_time"`
	EndTime      float64                 `json:"end_time"`
	Alternatives []WordAlternativeResult `json:"alternatives"`
}

type WordAlternativeResult struct {
	Confidence float64 `json:"confidence"`
	Word       string  `json:"word"`
}

type SpeakerLabelsResult struct {
	From       float64 `json:"from"`
	To         float64 `json:"to"`
	Speaker    int64   `json:"speaker"`
	Confidence float64 `json:"confidence"`
	Final      bool    `json:"final"`
}

// SpeechModel describes one recognition model
type SpeechModel struct {
	Name              string            `json:"name"`
	Language          string            `json:"language"`
	Rate              int64             `json:"rate"`
	URL               string            `json:"url"`
	Description       string            `json:"description"`
	SupportedFeatures SupportedFeatures `json:"supported_features"`
}

type SupportedFeatures struct {
	CustomLanguageModel bool `json:"custom_language_model"`
	SpeakerLabels       bool `json:"speaker_labels"`
}

type SpeechModels struct {
	Models []SpeechModel `json:"models"`
}

// LanguageModel is a custom language model
type LanguageModel struct {
	CustomizationID string `json:"customization_id"`
	Name            string `json:"name,omitempty"`
	Language        string `json:"language,omitempty"`
	Dialect         string `json:"dialect,omitempty"`
	BaseModelName   string `json:"base_model_name,omitempty"`
	Description     string `json:"description,omitempty"`
	Owner           string `json:"owner,omitempty"`
	Status          string `json:"status,omitempty"`
	Progress        int64  `json:"progress,omitempty"`
	Created         string `json:"created,omitempty"`
}

type LanguageModels struct {
	Customizations []LanguageModel `json:"customizations"`
}

// CreateLanguageModelOptions is the body of CreateCustomization
type CreateLanguageModelOptions struct {
	Name          string `json:"name"`
	BaseModelName string `json:"base_model_name"`
	Dialect       string `json:"dialect,omitempty"`
	Description   string `json:"description,omitempty"`
}

// CustomWord is the body of AddWord
type CustomWord struct {
	SoundsLike []string `json:"sounds_like,omitempty"`
	DisplayAs  string   `json:"display_as,omitempty"`
	Word       string   `json:"word,omitempty"`
}

// Word is a custom word as returned by GetWord
type Word struct {
	Word       string   `json:"word"`
	SoundsLike []string `json:"sounds_like"`
	DisplayAs  string   `json:"display_as"`
	Count      int64    `json:"count"`
	Source     []string `json:"source"`
	Error      []any    `json:"error,omitempty"`
}
