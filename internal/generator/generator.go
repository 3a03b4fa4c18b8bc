// Package generator decides between the external generation service and the
// rule-based question bank, and formats whatever comes back.
package generator

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/kalambet/qgen/internal/format"
	"github.com/kalambet/qgen/internal/inference"
	"github.com/kalambet/qgen/internal/logging"
	"github.com/kalambet/qgen/internal/metrics"
	"github.com/kalambet/qgen/internal/questions"
	"github.com/kalambet/qgen/internal/taxonomy"
)

// MissingFieldsMessage is returned in place of questions when role or
// skills is missing.
const MissingFieldsMessage = "Please enter both job role and skills."

// Mode selects the generation strategy.
type Mode string

const (
	ModeAI       Mode = "ai"
	ModeFallback Mode = "fallback"
)

// Source says where a result's text came from.
type Source string

const (
	SourceAI          Source = "ai"
	SourceFallback    Source = "fallback"
	SourceRejected    Source = "rejected"
	SourceUnsupported Source = "unsupported"
)

// Inferencer is the external text-generation collaborator.
type Inferencer interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Request is one main question-generation request.
type Request struct {
	Role   string `json:"role" validate:"required"`
	Skills string `json:"skills" validate:"required"`
	Level  string `json:"level"`
	Mode   Mode   `json:"mode"`
}

// Result is a formatted answer.
type Result struct {
	Text   string `json:"text"`
	Source Source `json:"source"`
}

// Deps wires a Service. Only Bank is mandatory in practice; a nil Bank
// means the embedded default.
type Deps struct {
	Bank       *questions.Bank
	Inferencer Inferencer
	Metrics    *metrics.Metrics
	Logger     *slog.Logger
}

// Service is safe for concurrent use.
type Service struct {
	bank     *questions.Bank
	inf      Inferencer
	metrics  *metrics.Metrics
	logger   *slog.Logger
	validate *validator.Validate
}

// New creates a Service.
func New(deps Deps) *Service {
	if deps.Bank == nil {
		deps.Bank = questions.Default()
	}
	return &Service{
		bank:     deps.Bank,
		inf:      deps.Inferencer,
		metrics:  deps.Metrics,
		logger:   logging.OrDefault(deps.Logger),
		validate: validator.New(),
	}
}

// AIEnabled reports whether an external generation client is configured.
func (s *Service) AIEnabled() bool { return s.inf != nil }

// Generate answers req. It never returns an error: a missing field yields
// MissingFieldsMessage and any external failure falls back to the question
// bank. At most one external call is made.
func (s *Service) Generate(ctx context.Context, req Request) Result {
	res := s.generate(ctx, req)
	s.metrics.Generation("questions", string(res.Source))
	return res
}

func (s *Service) generate(ctx context.Context, req Request) Result {
	if err := s.validate.Struct(req); err != nil {
		s.logger.Debug("generator: rejected request", "error", err)
		return Result{Text: MissingFieldsMessage, Source: SourceRejected}
	}

	category := taxonomy.CategoryOf(req.Role)

	if s.useAI(req.Mode, ModeAI) {
		prompt := inference.BuildPrompt(req.Role, req.Skills, req.Level, category)
		if text, err := s.call(ctx, prompt); err == nil {
			return Result{Text: format.Generated(text, req.Role, category), Source: SourceAI}
		}
	}

	qs := s.bank.Select(req.Role, req.Skills, req.Level, category)
	return Result{
		Text:   format.Formatter{Bank: s.bank}.Fallback(qs, req.Role, req.Skills, req.Level, category, true),
		Source: SourceFallback,
	}
}

// useAI resolves the effective mode. Empty means def; anything other than
// "ai" means fallback.
func (s *Service) useAI(m, def Mode) bool {
	if m == "" {
		m = def
	}
	return m == ModeAI && s.inf != nil
}

func (s *Service) call(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	text, err := s.inf.Generate(ctx, prompt)
	if err == nil && strings.TrimSpace(text) == "" {
		err = errors.New("empty generation")
	}
	s.metrics.ExternalCall(err == nil, time.Since(start))
	if err != nil {
		s.logger.Warn("generator: external generation failed, using question bank", "error", err)
		return "", err
	}
	return strings.TrimSpace(text), nil
}
