package executor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	// Grace beyond the requested CPU budget, compensating for engine
	// startup jitter.
	cpuExtraTimeSec = 0.5
	// Wall clock slack over pure CPU accounting.
	wallTimeGraceSec = 2
	// Client-side deadline slack over the wall limit. The engine enforces
	// the wall limit server-side; this only guards against a hung engine.
	clientTimeoutGraceSec = 3
)

// ExecutionRequest describes one sandboxed run of user code against a single
// testcase. Stdin and ExpectedOutput must already be normalized.
type ExecutionRequest struct {
	LanguageID      int
	SourceCode      string
	Stdin           string
	ExpectedOutput  string
	CPUTimeLimitSec float64
	MemoryLimitKb   int
}

type Status struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
}

type ExecutionResult struct {
	Status        Status   `json:"status"`
	Stdout        *string  `json:"stdout"`
	Stderr        *string  `json:"stderr"`
	CompileOutput *string  `json:"compile_output"`
	Time          *string  `json:"time"`
	Memory        *float64 `json:"memory"`
}

// EngineError is a transport-level failure: the engine was unreachable or
// answered with a non-2xx status.
type EngineError struct {
	StatusCode int
	Body       string
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("judge engine returned %d: %s", e.StatusCode, e.Body)
}

type submissionPayload struct {
	LanguageID             int     `json:"language_id"`
	SourceCode             string  `json:"source_code"`
	Stdin                  string  `json:"stdin"`
	ExpectedOutput         string  `json:"expected_output"`
	CPUTimeLimit           float64 `json:"cpu_time_limit"`
	CPUExtraTime           float64 `json:"cpu_extra_time"`
	WallTimeLimit          float64 `json:"wall_time_limit"`
	MemoryLimit            int     `json:"memory_limit"`
	RedirectStderrToStdout bool    `json:"redirect_stderr_to_stdout"`
}

// Client talks to a Judge0-compatible execution engine. Execute blocks until
// the engine finishes the run (wait=true); no submit/poll/retrieve protocol.
type Client struct {
	baseURL    string
	apiKey     string
	apiHost    string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey, apiHost string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		apiHost: apiHost,
		// Per-call deadlines are derived from the wall limit, so the
		// shared client carries no fixed timeout of its own.
		httpClient: &http.Client{},
	}
}

func (c *Client) Execute(ctx context.Context, req ExecutionRequest) (*ExecutionResult, error) {
	wallTimeLimit := req.CPUTimeLimitSec + wallTimeGraceSec

	payload := submissionPayload{
		LanguageID:             req.LanguageID,
		SourceCode:             req.SourceCode,
		Stdin:                  req.Stdin,
		ExpectedOutput:         req.ExpectedOutput,
		CPUTimeLimit:           req.CPUTimeLimitSec,
		CPUExtraTime:           cpuExtraTimeSec,
		WallTimeLimit:          wallTimeLimit,
		MemoryLimit:            req.MemoryLimitKb,
		RedirectStderrToStdout: true,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("executor.Execute marshal: %w", err)
	}

	deadline := time.Duration((wallTimeLimit + clientTimeoutGraceSec) * float64(time.Second))
	ctx, cancel := context.WithTimeout(ctx, deadline)
	defer cancel()

	url := c.baseURL + "/submissions?wait=true"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("executor.Execute build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	// Every submission is a fresh run; never let an intermediary serve a
	// cached result.
	httpReq.Header.Set("Cache-Control", "no-store")
	if c.apiKey != "" {
		httpReq.Header.Set("X-RapidAPI-Key", c.apiKey)
		httpReq.Header.Set("X-RapidAPI-Host", c.apiHost)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("executor.Execute call engine: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Best effort: the status alone still makes a usable error when
		// the body cannot be read.
		bodyText, _ := io.ReadAll(io.LimitReader(resp.Body, 8192))
		return nil, &EngineError{StatusCode: resp.StatusCode, Body: string(bodyText)}
	}

	var result ExecutionResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("executor.Execute decode response: %w", err)
	}
	return &result, nil
}
