package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Location represents a configuration key path
type Location struct {
	Key string
}

// ValidationError represents a configuration validation error
type ValidationError struct {
	Message   string
	Locations []Location
}

func (e *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Message)
	for _, loc := range e.Locations {
		sb.WriteString("\n--> ")
		sb.WriteString(loc.Key)
	}
	return sb.String()
}

var (
	authTypes      = map[string]bool{"": true, "none": true, "basic": true, "apikey": true, "bearer": true}
	traceProtocols = map[string]bool{"": true, "grpc": true, "http": true}
	logOutputs     = map[string]bool{"": true, "stdout": true, "file": true}
)

// Validate checks service endpoints and the enumerated options. All problems
// are reported together.
func (c *Config) Validate() error {
	var errs []*ValidationError

	services := []struct {
		key string
		svc *ServiceConfig
	}{
		{"speech_to_text", &c.SpeechToText},
		{"text_to_speech", &c.TextToSpeech},
		{"assistant", &c.Assistant},
		{"discovery", &c.Discovery},
		{"visual_recognition", &c.VisualRecognition},
	}
	for _, s := range services {
		errs = append(errs, validateService(s.key, s.svc)...)
	}

	if !traceProtocols[c.Trace.Protocol] {
		errs = append(errs, invalid("trace.protocol", fmt.Sprintf("unsupported trace protocol %q", c.Trace.Protocol)))
	}
	if c.Trace.SamplerRate < 0 || c.Trace.SamplerRate > 1 {
		errs = append(errs, invalid("trace.sampler_rate", "sampler rate must be between 0 and 1"))
	}
	if !logOutputs[c.Logger.Output] {
		errs = append(errs, invalid("logger.output", fmt.Sprintf("unsupported log output %q", c.Logger.Output)))
	}
	if c.Logger.Output == "file" && c.Logger.FilePath == "" {
		errs = append(errs, invalid("logger.file_path", "file output requires a file path"))
	}

	if len(errs) > 0 {
		var sb strings.Builder
		for i, err := range errs {
			if i > 0 {
				sb.WriteString("\n\n")
			}
			sb.WriteString(err.Error())
		}
		return fmt.Errorf("%s", sb.String())
	}
	return nil
}

func validateService(key string, s *ServiceConfig) []*ValidationError {
	var errs []*ValidationError
	u, err := url.Parse(s.URL)
	switch {
	case err != nil:
		errs = append(errs, invalid(key+".url", fmt.Sprintf("invalid service url: %v", err)))
	case u.Scheme != "http" && u.Scheme != "https":
		errs = append(errs, invalid(key+".url", fmt.Sprintf("service url %q must use http or https", s.URL)))
	case u.Host == "":
		errs = append(errs, invalid(key+".url", fmt.Sprintf("service url %q has no host", s.URL)))
	}
	if !authTypes[s.Auth.Type] {
		errs = append(errs, invalid(key+".auth.type", fmt.Sprintf("unsupported auth type %q", s.Auth.Type)))
	}
	return errs
}

func invalid(key, msg string) *ValidationError {
	return &ValidationError{Message: msg, Locations: []Location{{Key: key}}}
}
