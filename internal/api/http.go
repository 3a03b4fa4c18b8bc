// Package api exposes question generation over HTTP and MCP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"github.com/kalambet/qgen/internal/generator"
	"github.com/kalambet/qgen/internal/logging"
	"github.com/kalambet/qgen/internal/metrics"
	"github.com/kalambet/qgen/internal/taxonomy"
)

const maxRequestBodySize = 1 << 20 // 1MB

// QuestionService is the generation logic behind the handlers.
type QuestionService interface {
	Generate(ctx context.Context, req generator.Request) generator.Result
	Followup(ctx context.Context, req generator.FollowupRequest) generator.FollowupResult
	AIEnabled() bool
}

// ChatClient backs the strict /generate-questions endpoint.
type ChatClient interface {
	Questions(ctx context.Context, role string, skills []string, level string) (string, error)
}

// Deps holds the handler dependencies. Chat and Metrics are optional.
type Deps struct {
	Service QuestionService
	Chat    ChatClient
	Metrics *metrics.Metrics
	Logger  *slog.Logger
}

// ChatRequest is the body of POST /generate-questions.
type ChatRequest struct {
	Role   string   `json:"role" validate:"required"`
	Skills []string `json:"skills" validate:"required"`
	Level  string   `json:"level" validate:"required"`
}

// ChatResponse is the reply of POST /generate-questions.
type ChatResponse struct {
	Questions string `json:"questions"`
}

// RoleEntry is one element of GET /v1/roles.
type RoleEntry struct {
	Role        string            `json:"role"`
	Category    taxonomy.Category `json:"category"`
	DisplayName string            `json:"display_name"`
}

// NewHandler returns the HTTP API.
func NewHandler(deps Deps) http.Handler {
	deps.Logger = logging.OrDefault(deps.Logger)
	validate := validator.New()

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(deps.Logger))

	r.Get("/health", handleHealth(deps))
	r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())
	r.Post("/generate-questions", handleChatQuestions(deps, validate))

	r.Route("/v1", func(r chi.Router) {
		r.Post("/questions", handleQuestions(deps))
		r.Post("/followup", handleFollowup(deps))
		r.Get("/roles", handleRoles)
		r.Get("/levels", handleLevels)
	})

	return r
}

func handleHealth(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"status":       "ok",
			"ai_enabled":   deps.Service.AIEnabled(),
			"chat_enabled": deps.Chat != nil,
		})
	}
}

func handleChatQuestions(deps Deps, validate *validator.Validate) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ChatRequest
		if !decodeBody(w, r, &req) {
			return
		}
		if err := validate.Struct(req); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "%s", describeValidation(err))
			return
		}
		if deps.Chat == nil {
			httpError(w, http.StatusServiceUnavailable, "api_error", "chat completion is not configured")
			return
		}

		text, err := deps.Chat.Questions(r.Context(), req.Role, req.Skills, req.Level)
		if err != nil {
			deps.Logger.Warn("api: chat completion failed", "error", err)
			httpError(w, http.StatusBadGateway, "api_error", "upstream error: %v", err)
			return
		}
		writeJSON(w, http.StatusOK, ChatResponse{Questions: text})
	}
}

func handleQuestions(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req generator.Request
		if !decodeBody(w, r, &req) {
			return
		}
		writeJSON(w, http.StatusOK, deps.Service.Generate(r.Context(), req))
	}
}

func handleFollowup(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req generator.FollowupRequest
		if !decodeBody(w, r, &req) {
			return
		}
		writeJSON(w, http.StatusOK, deps.Service.Followup(r.Context(), req))
	}
}

func handleRoles(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"roles": roleEntries()})
}

func handleLevels(w http.ResponseWriter, r *http.Request) {
	var profiles []taxonomy.LevelProfile
	for _, l := range taxonomy.Levels() {
		profiles = append(profiles, taxonomy.ProfileOf(string(l)))
	}
	writeJSON(w, http.StatusOK, map[string]any{"levels": profiles})
}

func roleEntries() []RoleEntry {
	roles := taxonomy.Roles()
	out := make([]RoleEntry, len(roles))
	for i, r := range roles {
		out[i] = RoleEntry{Role: r.Label, Category: r.Category, DisplayName: taxonomy.DisplayNameOf(r.Category)}
	}
	return out
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			httpError(w, http.StatusRequestEntityTooLarge, "invalid_request_error", "request body exceeds %d bytes", maxRequestBodySize)
			return false
		}
		httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
		return false
	}
	return true
}

func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return fmt.Sprintf("%s is required", jsonName(verrs[0].Field()))
	}
	return err.Error()
}

func jsonName(field string) string {
	switch field {
	case "Role":
		return "role"
	case "Skills":
		return "skills"
	case "Level":
		return "level"
	}
	return field
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func httpError(w http.ResponseWriter, code int, errType string, format string, args ...any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	msg := fmt.Sprintf(format, args...)
	json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{
			"message": msg,
			"type":    errType,
		},
	})
}
