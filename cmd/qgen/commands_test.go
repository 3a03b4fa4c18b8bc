package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kalambet/qgen/internal/config"
	"github.com/kalambet/qgen/internal/generator"
	"github.com/kalambet/qgen/internal/taxonomy"
)

type recordedRequest struct {
	Method string
	Path   string
	Body   string
}

type testServer struct {
	server   *httptest.Server
	requests []recordedRequest
}

func newTestServer(t *testing.T, responses map[string]string) *testServer {
	t.Helper()
	ts := &testServer{}

	ts.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		ts.requests = append(ts.requests, recordedRequest{
			Method: r.Method,
			Path:   r.URL.RequestURI(),
			Body:   string(body),
		})

		key := r.Method + " " + r.URL.Path
		if resp, ok := responses[key]; ok {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(resp))
			return
		}

		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":{"message":"not found","type":"not_found"}}`))
	}))

	t.Cleanup(ts.server.Close)
	return ts
}

// useServer points newAPIClient at ts for the duration of the test.
func useServer(t *testing.T, ts *testServer) {
	t.Helper()
	orig := newAPIClient
	newAPIClient = func() (*apiClient, error) {
		return &apiClient{baseURL: ts.server.URL, httpClient: ts.server.Client()}, nil
	}
	t.Cleanup(func() { newAPIClient = orig })
}

// useOfflineService swaps the local service for one without an inference
// client so nothing leaves the process.
func useOfflineService(t *testing.T) {
	t.Helper()
	orig := localService
	localService = func() (*generator.Service, error) {
		return generator.New(generator.Deps{}), nil
	}
	t.Cleanup(func() { localService = orig })
}

var ctx = context.Background()

func TestResolveExample(t *testing.T) {
	opts, err := generateOptions{example: 2, level: "Senior"}.resolve(nil)
	require.NoError(t, err)
	assert.Equal(t, "DevOps Engineer", opts.role)
	assert.Equal(t, "AWS, Docker, Kubernetes, Jenkins, Terraform", opts.skills)
	assert.Equal(t, "Mid-Level", opts.level)

	opts, err = generateOptions{role: "Chef"}.resolve(nil)
	require.NoError(t, err)
	assert.Equal(t, "Chef", opts.role)
}

func TestResolveExample_OutOfRange(t *testing.T) {
	for _, n := range []int{-1, 5, 99} {
		_, err := generateOptions{example: n}.resolve(nil)
		assert.Error(t, err, "example %d", n)
	}
}

func TestQuickExamples_UseKnownRolesAndLevels(t *testing.T) {
	for _, ex := range quickExamples {
		assert.NotEqual(t, taxonomy.DefaultCategory, taxonomy.CategoryOf(ex.Role), ex.Role)
		_, ok := taxonomy.ParseLevel(ex.Level)
		assert.True(t, ok, ex.Level)
	}
}

func TestRunGenerate_Local(t *testing.T) {
	useOfflineService(t)

	var out bytes.Buffer
	err := runGenerate(ctx, &out, generateOptions{
		role:   "DevOps Engineer",
		skills: "AWS, Docker",
		level:  "Mid-Level",
		mode:   "fallback",
	})
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "Interview Questions for DevOps Engineer")
	assert.Contains(t, text, "Category: DevOps & Cloud")
	assert.Contains(t, text, "Required Skills: AWS, Docker")
	assert.Contains(t, text, "1. ")
	assert.Contains(t, text, "5. ")
}

func TestRunGenerate_RejectedPrintsNothing(t *testing.T) {
	useOfflineService(t)

	var out bytes.Buffer
	require.NoError(t, runGenerate(ctx, &out, generateOptions{role: "Data Scientist", mode: "fallback"}))
	assert.Empty(t, out.String())
}

func TestRunGenerate_Remote(t *testing.T) {
	ts := newTestServer(t, map[string]string{
		"POST /v1/questions": `{"text":"📋 Interview Questions for SOC Analyst\n\n1. Q","source":"ai"}`,
	})
	useServer(t, ts)

	var out bytes.Buffer
	err := runGenerate(ctx, &out, generateOptions{
		role:   "SOC Analyst",
		skills: "SIEM",
		level:  "Senior",
		mode:   "ai",
		remote: true,
	})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Interview Questions for SOC Analyst")

	require.Len(t, ts.requests, 1)
	assert.Equal(t, http.MethodPost, ts.requests[0].Method)
	assert.Equal(t, "/v1/questions", ts.requests[0].Path)

	var sent generator.Request
	require.NoError(t, json.Unmarshal([]byte(ts.requests[0].Body), &sent))
	assert.Equal(t, generator.Request{Role: "SOC Analyst", Skills: "SIEM", Level: "Senior", Mode: generator.ModeAI}, sent)
}

func TestRunGenerate_RemoteError(t *testing.T) {
	ts := newTestServer(t, map[string]string{})
	useServer(t, ts)

	err := runGenerate(ctx, io.Discard, generateOptions{role: "x", skills: "y", remote: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestRunFollowup_Local(t *testing.T) {
	useOfflineService(t)

	var out bytes.Buffer
	err := runFollowup(ctx, &out, generateOptions{
		role:   "Data Scientist",
		skills: "Python, SQL",
		level:  "Senior",
	}, "scenario")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Len(t, lines, 3)
}

func TestRunFollowup_UnsupportedType(t *testing.T) {
	useOfflineService(t)

	var out bytes.Buffer
	require.NoError(t, runFollowup(ctx, &out, generateOptions{}, "trivia"))
	assert.Empty(t, out.String())
}

func TestRunFollowup_Remote(t *testing.T) {
	ts := newTestServer(t, map[string]string{
		"POST /v1/followup": `{"questions":["a","b","c"],"text":"a\nb\nc","source":"fallback"}`,
	})
	useServer(t, ts)

	var out bytes.Buffer
	err := runFollowup(ctx, &out, generateOptions{role: "QA Engineer / Software Tester", remote: true}, "leadership")
	require.NoError(t, err)
	assert.Equal(t, "a\nb\nc\n", out.String())

	require.Len(t, ts.requests, 1)
	assert.Contains(t, ts.requests[0].Body, `"type":"leadership"`)
}

func TestPrintRoles(t *testing.T) {
	noColor = true
	t.Cleanup(func() { noColor = false })

	var out bytes.Buffer
	printRoles(&out)
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, len(taxonomy.Roles()))
	assert.Contains(t, lines[0], "Software Engineer")
	assert.Contains(t, lines[0], "Software Development")
}

func TestPrintLevels(t *testing.T) {
	noColor = true
	t.Cleanup(func() { noColor = false })

	var out bytes.Buffer
	printLevels(&out)
	text := out.String()
	for _, l := range taxonomy.Levels() {
		assert.Contains(t, text, string(l))
	}
	assert.Contains(t, text, "8+ years")
}

func TestShowConfig_HidesSecrets(t *testing.T) {
	noColor = true
	t.Cleanup(func() { noColor = false })

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	t.Setenv("QGEN_CHAT_API_KEY", "sk-very-secret")
	t.Setenv("QGEN_INFERENCE_API_TOKEN", "")

	cfg, err := config.Load()
	require.NoError(t, err)

	var out bytes.Buffer
	showConfig(&out, cfg)
	text := out.String()
	assert.NotContains(t, text, "sk-very-secret")
	assert.Contains(t, text, "chat.api_key (set)")
	assert.Contains(t, text, "inference.api_token (not set)")
	assert.Contains(t, text, "server.port = 4100")
}

func TestReadSecret(t *testing.T) {
	v, err := readSecret(strings.NewReader("  hf_abc123 \n"))
	require.NoError(t, err)
	assert.Equal(t, "hf_abc123", v)

	v, err = readSecret(strings.NewReader("no-newline"))
	require.NoError(t, err)
	assert.Equal(t, "no-newline", v)
}

func TestNewChatClient_NilWithoutKey(t *testing.T) {
	assert.Nil(t, newChatClient(config.ChatConfig{}))
	assert.NotNil(t, newChatClient(config.ChatConfig{APIKey: "k", Model: "gpt-3.5-turbo"}))
}

func TestNewService_InferenceToggle(t *testing.T) {
	cfg := config.Config{Inference: config.InferenceConfig{Enabled: false}}
	assert.False(t, newService(cfg, nil, nil).AIEnabled())

	cfg.Inference = config.InferenceConfig{Enabled: true, Model: "google/flan-t5-small"}
	assert.True(t, newService(cfg, nil, nil).AIEnabled())
}

func TestGenerateCommand_Example(t *testing.T) {
	useOfflineService(t)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"generate", "--example", "3", "--mode", "fallback", "--no-color"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())
	text := out.String()
	assert.Contains(t, text, "Entry Junior Level Interview Questions for Frontend Developer")
	assert.Contains(t, text, "Required Skills: React, TypeScript, CSS, Redux")
}
