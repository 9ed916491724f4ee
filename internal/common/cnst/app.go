package cnst

const (
	// AppName is the SDK name reported in the User-Agent header
	AppName = "watson-apis-go-sdk"
	// ConfigYaml is the default configuration file name
	ConfigYaml = "watson.yaml"
)

// Default service endpoints
const (
	DefaultSpeechToTextURL      = "https://stream.watsonplatform.net/speech-to-text/api"
	DefaultTextToSpeechURL      = "https://stream.watsonplatform.net/text-to-speech/api"
	DefaultAssistantURL         = "https://gateway.watsonplatform.net/assistant/api"
	DefaultDiscoveryURL         = "https://gateway.watsonplatform.net/discovery/api"
	DefaultVisualRecognitionURL = "https://gateway.watsonplatform.net/visual-recognition/api"
)

// DefaultModel is used by CreateSession and RecognizeUsingWebSocket when no model is given
const DefaultModel = "en-US_BroadbandModel"

// Service names used for metric labels and logger names
const (
	ServiceSpeechToText      = "speech_to_text"
	ServiceTextToSpeech      = "text_to_speech"
	ServiceAssistant         = "assistant"
	ServiceDiscovery         = "discovery"
	ServiceVisualRecognition = "visual_recognition"
)

// Default dated API versions sent as the version query argument
const (
	DefaultAssistantVersion         = "2018-07-10"
	DefaultDiscoveryVersion         = "2018-03-05"
	DefaultVisualRecognitionVersion = "2018-03-19"
)
