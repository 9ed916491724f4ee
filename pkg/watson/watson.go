// Package watson builds every service client from one configuration.
package watson

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/amoylab/watson/internal/auth"
	"github.com/amoylab/watson/internal/common/cnst"
	"github.com/amoylab/watson/internal/common/config"
	"github.com/amoylab/watson/internal/core/rest"
	"github.com/amoylab/watson/internal/core/stream"
	"github.com/amoylab/watson/pkg/assistant"
	"github.com/amoylab/watson/pkg/discovery"
	"github.com/amoylab/watson/pkg/logger"
	"github.com/amoylab/watson/pkg/metrics"
	"github.com/amoylab/watson/pkg/speechtotext"
	"github.com/amoylab/watson/pkg/texttospeech"
	"github.com/amoylab/watson/pkg/trace"
	"github.com/amoylab/watson/pkg/visualrecognition"

	"go.uber.org/zap"
)

// Services holds one client per Watson service, sharing a logger, metrics,
// the HTTP client and the websocket dialer
type Services struct {
	SpeechToText      *speechtotext.Client
	TextToSpeech      *texttospeech.Client
	Assistant         *assistant.Client
	Discovery         *discovery.Client
	VisualRecognition *visualrecognition.Client

	Logger  *zap.Logger
	Metrics *metrics.Metrics

	shutdownTrace func(context.Context) error
}

// NewFromFile loads configuration with config.LoadConfig and calls New
func NewFromFile(ctx context.Context, filename string) (*Services, error) {
	cfg, path, err := config.LoadConfig(filename)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	return New(ctx, cfg)
}

// New builds the service clients. Tracing is started when enabled and
// stopped by Close.
func New(ctx context.Context, cfg *config.Config) (*Services, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	lg, err := logger.NewLogger(&cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	s := &Services{Logger: lg}
	if cfg.Metrics.Enabled {
		s.Metrics = metrics.New(cfg.Metrics)
	}
	s.shutdownTrace, err = trace.InitTracing(ctx, &cfg.Trace, lg)
	if err != nil {
		return nil, fmt.Errorf("init tracing: %w", err)
	}

	httpClient := rest.NewHTTPClient(cfg.HTTP)
	dialer := stream.NewDialer(cfg.Stream, cfg.HTTP)
	b := builder{logger: lg, metrics: s.Metrics, httpClient: httpClient}

	stt, err := b.restOptions(cnst.ServiceSpeechToText, cfg.SpeechToText)
	if err != nil {
		return nil, err
	}
	if s.SpeechToText, err = speechtotext.New(speechtotext.Options{Options: stt, Dialer: dialer}); err != nil {
		return nil, err
	}

	tts, err := b.restOptions(cnst.ServiceTextToSpeech, cfg.TextToSpeech)
	if err != nil {
		return nil, err
	}
	if s.TextToSpeech, err = texttospeech.New(texttospeech.Options{Options: tts, Dialer: dialer}); err != nil {
		return nil, err
	}

	asst, err := b.restOptions(cnst.ServiceAssistant, cfg.Assistant)
	if err != nil {
		return nil, err
	}
	if s.Assistant, err = assistant.New(assistant.Options{Options: asst, Version: cfg.Assistant.Version}); err != nil {
		return nil, err
	}

	disc, err := b.restOptions(cnst.ServiceDiscovery, cfg.Discovery)
	if err != nil {
		return nil, err
	}
	if s.Discovery, err = discovery.New(discovery.Options{Options: disc, Version: cfg.Discovery.Version}); err != nil {
		return nil, err
	}

	vr, err := b.restOptions(cnst.ServiceVisualRecognition, cfg.VisualRecognition)
	if err != nil {
		return nil, err
	}
	if s.VisualRecognition, err = visualrecognition.New(visualrecognition.Options{Options: vr, Version: cfg.VisualRecognition.Version}); err != nil {
		return nil, err
	}

	lg.Debug("watson services ready",
		zap.String("speech_to_text", cfg.SpeechToText.URL),
		zap.String("text_to_speech", cfg.TextToSpeech.URL),
		zap.Bool("metrics", cfg.Metrics.Enabled),
		zap.Bool("trace", cfg.Trace.Enabled))
	return s, nil
}

// MetricsHandler exposes the SDK metrics for scraping. It is nil when
// metrics are disabled.
func (s *Services) MetricsHandler() http.Handler {
	if s.Metrics == nil {
		return nil
	}
	return s.Metrics.Handler()
}

// Close flushes traces and the logger
func (s *Services) Close(ctx context.Context) error {
	var errs []error
	if s.shutdownTrace != nil {
		if err := s.shutdownTrace(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutdown tracing: %w", err))
		}
	}
	_ = s.Logger.Sync()
	return errors.Join(errs...)
}

type builder struct {
	logger     *zap.Logger
	metrics    *metrics.Metrics
	httpClient *http.Client
}

func (b builder) restOptions(service string, sc config.ServiceConfig) (rest.Options, error) {
	a, err := auth.New(sc.Auth)
	if err != nil {
		return rest.Options{}, fmt.Errorf("%s auth: %w", service, err)
	}
	return rest.Options{
		Service:       service,
		URL:           sc.URL,
		Authenticator: a,
		HTTPClient:    b.httpClient,
		Logger:        b.logger,
		Metrics:       b.metrics,
		Headers:       sc.RequestHeaders(),
	}, nil
}
