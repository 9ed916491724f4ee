package texttospeech

type Voice struct {
	Name              string            `json:"name"`
	Language          string            `json:"language"`
	Gender            string            `json:"gender"`
	URL               string            `json:"url"`
	Description       string            `json:"description"`
	Customizable      bool              `json:"customizable"`
	SupportedFeatures SupportedFeatures `json:"supported_features"`
	Customization     *VoiceModel       `json:"customization,omitempty"`
}

type SupportedFeatures struct {
	CustomPronunciation bool `json:"custom_pronunciation"`
	VoiceTransformation bool `json:"voice_transformation"`
}

type Voices struct {
	Voices []Voice `json:"voices"`
}

// Pronunciation is the phonetic spelling of a word
type Pronunciation struct {
	Pronunciation string `json:"pronunciation"`
}

// VoiceModel is a custom voice model
type VoiceModel struct {
	CustomizationID string `json:"customization_id"`
	Name            string `json:"name,omitempty"`
	Language        string `json:"language,omitempty"`
	Owner           string `json:"owner,omitempty"`
	Created         string `json:"created,omitempty"`
	LastModified    string `json:"last_modified,omitempty"`
	Description     string `json:"description,omitempty"`
	Words           []Word `json:"words,omitempty"`
}

type VoiceModels struct {
	Customizations []VoiceModel `json:"customizations"`
}

// CreateVoiceModelOptions is the body of CreateVoiceModel
type CreateVoiceModelOptions struct {
	Name        string `json:"name"`
	Language    string `json:"language,omitempty"`
	Description string `json:"description,omitempty"`
}

// Word maps a word to the spelling or phonemes used to say it
type Word struct {
	Word         string `json:"word"`
	Translation  string `json:"translation"`
	PartOfSpeech string `json:"part_of_speech,omitempty"`
}

type Words struct {
	Words []Word `json:"words"`
}

// Translation is the body of AddWord
type Translation struct {
	Translation  string `json:"translation"`
	PartOfSpeech string `json:"part_of_speech,omitempty"`
}
