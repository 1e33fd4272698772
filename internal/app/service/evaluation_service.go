package service

import (
	"context"
	"log/slog"
	"sort"

	"github.com/Raiyyanpatel/PrepVerse/internal/app/judge"
	"github.com/Raiyyanpatel/PrepVerse/internal/common"
	"github.com/Raiyyanpatel/PrepVerse/internal/domain/model"
	"github.com/Raiyyanpatel/PrepVerse/internal/domain/repository"
	"github.com/Raiyyanpatel/PrepVerse/internal/platform/executor"

	"github.com/google/uuid"
)

// Executor runs one testcase on the external engine.
type Executor interface {
	Execute(ctx context.Context, req executor.ExecutionRequest) (*executor.ExecutionResult, error)
}

// EvaluationService holds no mutable state; every evaluation is an
// independent, strictly sequential chain of store reads and engine calls.
type EvaluationService struct {
	questionRepo repository.QuestionRepository
	engine       Executor
}

func NewEvaluationService(questionRepo repository.QuestionRepository, engine Executor) *EvaluationService {
	return &EvaluationService{questionRepo: questionRepo, engine: engine}
}

type RunResultDetail struct {
	Status        executor.Status `json:"status"`
	Time          *string         `json:"time,omitempty"`
	Memory        *float64        `json:"memory,omitempty"`
	Stdout        *string         `json:"stdout,omitempty"`
	Stderr        *string         `json:"stderr,omitempty"`
	CompileOutput *string         `json:"compile_output,omitempty"`
}

// RunResponse carries the normalized stdin/expected pair alongside the raw
// engine result so the UI can show the learner exactly what their program
// was fed.
type RunResponse struct {
	EvaluationID string             `json:"evaluation_id"`
	Verdict      model.Verdict      `json:"verdict"`
	Limits       model.Limits       `json:"limits"`
	Result       RunResultDetail    `json:"result"`
	Normalized   judge.NormalizedIO `json:"normalized"`
}

// TestcaseDetail reports one graded hidden testcase. It deliberately never
// carries the testcase input; hidden testcases stay hidden even in failure.
type TestcaseDetail struct {
	TestcaseID    int             `json:"testcase_id"`
	Verdict       model.Verdict   `json:"verdict"`
	Status        executor.Status `json:"status"`
	Time          *string         `json:"time,omitempty"`
	Memory        *float64        `json:"memory,omitempty"`
	CompileOutput *string         `json:"compile_output,omitempty"`
	Stderr        *string         `json:"stderr,omitempty"`
	Stdout        *string         `json:"stdout,omitempty"`
	TimeLimitSec  float64         `json:"time_limit_sec"`
	MemoryLimitKb int             `json:"memory_limit_kb"`
}

type SubmitResponse struct {
	EvaluationID string           `json:"evaluation_id"`
	Verdict      model.Verdict    `json:"verdict"`
	Limits       model.Limits     `json:"limits"`
	Details      []TestcaseDetail `json:"details"`
	Error        string           `json:"error,omitempty"`
}

// ResolveQuestionID looks a question up by its exact title, for callers that
// only hold a human-readable title.
func (s *EvaluationService) ResolveQuestionID(ctx context.Context, title string) (int, error) {
	id, err := s.questionRepo.FindQuestionIDByTitle(ctx, title)
	if err != nil {
		return 0, common.Errorf("question not found by title %q: %w", title, err)
	}
	return id, nil
}

// Run evaluates the code once against the question's public example:
// resolve language, load question, normalize, execute, map verdict.
func (s *EvaluationService) Run(ctx context.Context, questionID int, language, code string) (*RunResponse, error) {
	languageID, err := judge.ResolveLanguage(language)
	if err != nil {
		return nil, err
	}

	question, err := s.questionRepo.FindQuestionByID(ctx, questionID)
	if err != nil {
		return nil, common.Errorf("question %d: %w", questionID, err)
	}

	normalized := judge.Normalize(question.Title, question.ExampleInput, question.ExampleOutput)
	limits := question.Limits()
	evaluationID := uuid.NewString()

	result, err := s.engine.Execute(ctx, executor.ExecutionRequest{
		LanguageID:      languageID,
		SourceCode:      code,
		Stdin:           normalized.Stdin,
		ExpectedOutput:  normalized.ExpectedOutput,
		CPUTimeLimitSec: limits.TimeLimitSec,
		MemoryLimitKb:   limits.MemoryLimitKb,
	})
	if err != nil {
		return nil, common.Errorf("%w: %s", common.ErrServiceUnavailable, err.Error())
	}

	verdict := judge.MapStatus(result.Status)
	slog.Info("run evaluated", "evaluation_id", evaluationID,
		"question_id", questionID, "verdict", verdict, "status", result.Status.Description)

	return &RunResponse{
		EvaluationID: evaluationID,
		Verdict:      verdict,
		Limits:       limits,
		Result: RunResultDetail{
			Status:        result.Status,
			Time:          result.Time,
			Memory:        result.Memory,
			Stdout:        result.Stdout,
			Stderr:        result.Stderr,
			CompileOutput: result.CompileOutput,
		},
		Normalized: normalized,
	}, nil
}

// Submit grades the code against every hidden testcase of the question, in
// ascending testcase id order, stopping at the first verdict that is not
// Accepted. On an engine transport failure the returned response still
// carries the details gathered so far, with overall verdict Runtime Error.
func (s *EvaluationService) Submit(ctx context.Context, questionID int, language, code string) (*SubmitResponse, error) {
	languageID, err := judge.ResolveLanguage(language)
	if err != nil {
		return nil, err
	}

	question, err := s.questionRepo.FindQuestionByID(ctx, questionID)
	if err != nil {
		return nil, common.Errorf("question %d: %w", questionID, err)
	}

	testcases, err := s.questionRepo.GetHiddenTestcasesByQuestionID(ctx, questionID)
	if err != nil {
		return nil, common.Errorf("hidden testcases for question %d: %w", questionID, err)
	}
	if len(testcases) == 0 {
		return nil, common.Errorf("question %d: %w", questionID, common.ErrNoHiddenTestcases)
	}
	// Grading order is ascending testcase id; it decides which failing case
	// is surfaced first.
	sort.Slice(testcases, func(i, j int) bool { return testcases[i].ID < testcases[j].ID })

	limits := question.Limits()
	evaluationID := uuid.NewString()

	resp := &SubmitResponse{
		EvaluationID: evaluationID,
		Verdict:      model.VerdictAccepted,
		Limits:       limits,
		Details:      make([]TestcaseDetail, 0, len(testcases)),
	}

	for _, tc := range testcases {
		normalized := judge.Normalize(question.Title, tc.InputText, tc.ExpectedOutput)

		result, err := s.engine.Execute(ctx, executor.ExecutionRequest{
			LanguageID:      languageID,
			SourceCode:      code,
			Stdin:           normalized.Stdin,
			ExpectedOutput:  normalized.ExpectedOutput,
			CPUTimeLimitSec: limits.TimeLimitSec,
			MemoryLimitKb:   limits.MemoryLimitKb,
		})
		if err != nil {
			// A transport failure never passes silently and never
			// leaves a partial Accepted standing.
			slog.Error("engine call failed during submit", "evaluation_id", evaluationID,
				"question_id", questionID, "testcase_id", tc.ID, "err", err)
			resp.Verdict = model.VerdictRuntimeError
			resp.Error = err.Error()
			return resp, common.Errorf("%w: %s", common.ErrServiceUnavailable, err.Error())
		}

		verdict := judge.MapStatus(result.Status)
		resp.Details = append(resp.Details, TestcaseDetail{
			TestcaseID:    tc.ID,
			Verdict:       verdict,
			Status:        result.Status,
			Time:          result.Time,
			Memory:        result.Memory,
			CompileOutput: result.CompileOutput,
			Stderr:        result.Stderr,
			Stdout:        result.Stdout,
			TimeLimitSec:  limits.TimeLimitSec,
			MemoryLimitKb: limits.MemoryLimitKb,
		})
		slog.Info("testcase evaluated", "evaluation_id", evaluationID,
			"question_id", questionID, "testcase_id", tc.ID, "verdict", verdict)

		if verdict != model.VerdictAccepted {
			resp.Verdict = verdict
			return resp, nil
		}
	}

	return resp, nil
}
