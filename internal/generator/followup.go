package generator

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/kalambet/qgen/internal/questions"
)

// FollowupRequest asks for three short follow-up questions of one type.
type FollowupRequest struct {
	Role   string                 `json:"role"`
	Skills string                 `json:"skills"`
	Level  string                 `json:"level"`
	Type   questions.QuestionType `json:"type"`
	Mode   Mode                   `json:"mode"`
}

// FollowupResult holds the follow-up questions and their display text.
type FollowupResult struct {
	Questions []string `json:"questions"`
	Text      string   `json:"text"`
	Source    Source   `json:"source"`
}

// Followup answers req. Mode defaults to fallback. An unsupported type
// yields a single advisory string and never calls out.
func (s *Service) Followup(ctx context.Context, req FollowupRequest) FollowupResult {
	res := s.followup(ctx, req)
	s.metrics.Generation("followup", string(res.Source))
	return res
}

func (s *Service) followup(ctx context.Context, req FollowupRequest) FollowupResult {
	if !req.Type.Valid() {
		qs := s.bank.Followup(req.Role, req.Skills, req.Level, req.Type)
		return newFollowupResult(qs, SourceUnsupported)
	}

	if s.useAI(req.Mode, ModeFallback) {
		prompt, _ := s.bank.FollowupPrompt(req.Role, req.Skills, req.Level, req.Type)
		if text, err := s.call(ctx, prompt); err == nil {
			if qs, ok := normalizeFollowups(text); ok {
				return newFollowupResult(qs, SourceAI)
			}
			s.logger.Warn("generator: generated follow-ups too short, using question bank",
				"want", questions.FollowupCount, "lines", len(splitLines(text)))
		}
	}

	qs := s.bank.Followup(req.Role, req.Skills, req.Level, req.Type)
	return newFollowupResult(qs, SourceFallback)
}

func newFollowupResult(qs []string, src Source) FollowupResult {
	return FollowupResult{Questions: qs, Text: strings.Join(qs, "\n"), Source: src}
}

var itemMarker = regexp.MustCompile(`^(?:\d+[.)]|[-*•])\s*`)

// normalizeFollowups turns generated text into exactly FollowupCount
// numbered questions. Extra lines are dropped; too few is a failure.
func normalizeFollowups(text string) ([]string, bool) {
	var items []string
	for _, line := range splitLines(text) {
		if item := strings.TrimSpace(itemMarker.ReplaceAllString(line, "")); item != "" {
			items = append(items, item)
		}
	}
	if len(items) < questions.FollowupCount {
		return nil, false
	}
	out := make([]string, questions.FollowupCount)
	for i := range out {
		out[i] = fmt.Sprintf("%d. %s", i+1, items[i])
	}
	return out, true
}

func splitLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}
