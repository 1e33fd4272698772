package executor_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Raiyyanpatel/PrepVerse/internal/platform/executor"

	"github.com/stretchr/testify/require"
)

func TestExecuteRequestContract(t *testing.T) {
	var gotQuery string
	var gotHeader http.Header
	var gotPayload map[string]interface{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		gotHeader = r.Header.Clone()
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":{"id":3,"description":"Accepted"},"stdout":"0 1\n","time":"0.004","memory":3120}`))
	}))
	defer srv.Close()

	client := executor.NewClient(srv.URL, "test-key", "engine.test")
	result, err := client.Execute(context.Background(), executor.ExecutionRequest{
		LanguageID:      71,
		SourceCode:      "print(input())",
		Stdin:           "2 7 11 15\n9\n",
		ExpectedOutput:  "0 1\n",
		CPUTimeLimitSec: 2,
		MemoryLimitKb:   128000,
	})
	require.NoError(t, err)

	require.Equal(t, "wait=true", gotQuery)
	require.Equal(t, "test-key", gotHeader.Get("X-RapidAPI-Key"))
	require.Equal(t, "engine.test", gotHeader.Get("X-RapidAPI-Host"))
	require.Equal(t, "no-store", gotHeader.Get("Cache-Control"))

	require.Equal(t, float64(71), gotPayload["language_id"])
	require.Equal(t, "2 7 11 15\n9\n", gotPayload["stdin"])
	require.Equal(t, "0 1\n", gotPayload["expected_output"])
	require.Equal(t, float64(2), gotPayload["cpu_time_limit"])
	require.Equal(t, 0.5, gotPayload["cpu_extra_time"])
	require.Equal(t, float64(4), gotPayload["wall_time_limit"])
	require.Equal(t, float64(128000), gotPayload["memory_limit"])
	require.Equal(t, true, gotPayload["redirect_stderr_to_stdout"])

	require.Equal(t, 3, result.Status.ID)
	require.NotNil(t, result.Stdout)
	require.Equal(t, "0 1\n", *result.Stdout)
	require.NotNil(t, result.Memory)
	require.Equal(t, float64(3120), *result.Memory)
}

func TestExecuteWithoutAPIKeySkipsAuthHeaders(t *testing.T) {
	var gotHeader http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Clone()
		w.Write([]byte(`{"status":{"id":3,"description":"Accepted"}}`))
	}))
	defer srv.Close()

	client := executor.NewClient(srv.URL, "", "")
	_, err := client.Execute(context.Background(), executor.ExecutionRequest{CPUTimeLimitSec: 1})
	require.NoError(t, err)
	require.Empty(t, gotHeader.Get("X-RapidAPI-Key"))
	require.Empty(t, gotHeader.Get("X-RapidAPI-Host"))
}

func TestExecuteNon2xxIsEngineError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "daily quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := executor.NewClient(srv.URL, "k", "h")
	_, err := client.Execute(context.Background(), executor.ExecutionRequest{CPUTimeLimitSec: 1})
	require.Error(t, err)

	var engineErr *executor.EngineError
	require.ErrorAs(t, err, &engineErr)
	require.Equal(t, http.StatusTooManyRequests, engineErr.StatusCode)
	require.Contains(t, engineErr.Body, "daily quota exceeded")
}

func TestExecuteUnreachableEngine(t *testing.T) {
	client := executor.NewClient("http://127.0.0.1:1", "", "")
	_, err := client.Execute(context.Background(), executor.ExecutionRequest{CPUTimeLimitSec: 1})
	require.Error(t, err)
}
