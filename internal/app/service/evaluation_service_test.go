package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Raiyyanpatel/PrepVerse/internal/app/service"
	"github.com/Raiyyanpatel/PrepVerse/internal/common"
	"github.com/Raiyyanpatel/PrepVerse/internal/domain/model"
	"github.com/Raiyyanpatel/PrepVerse/internal/platform/executor"

	"github.com/stretchr/testify/require"
)

type stubRepo struct {
	question  *model.Question
	testcases []model.HiddenTestcase
}

func (r *stubRepo) FindQuestionByID(ctx context.Context, id int) (*model.Question, error) {
	if r.question == nil || r.question.ID != id {
		return nil, common.ErrNotFound
	}
	return r.question, nil
}

func (r *stubRepo) FindQuestionIDByTitle(ctx context.Context, title string) (int, error) {
	if r.question == nil || r.question.Title != title {
		return 0, common.ErrNotFound
	}
	return r.question.ID, nil
}

func (r *stubRepo) GetHiddenTestcasesByQuestionID(ctx context.Context, questionID int) ([]model.HiddenTestcase, error) {
	return r.testcases, nil
}

type scripted struct {
	result *executor.ExecutionResult
	err    error
}

type stubEngine struct {
	responses []scripted
	calls     []executor.ExecutionRequest
}

func (e *stubEngine) Execute(ctx context.Context, req executor.ExecutionRequest) (*executor.ExecutionResult, error) {
	e.calls = append(e.calls, req)
	if len(e.calls) > len(e.responses) {
		return nil, errors.New("unexpected engine call")
	}
	s := e.responses[len(e.calls)-1]
	return s.result, s.err
}

func statusResult(id int, description string) *executor.ExecutionResult {
	return &executor.ExecutionResult{Status: executor.Status{ID: id, Description: description}}
}

func question(id int, title string) *model.Question {
	return &model.Question{ID: id, Title: title, ExampleInput: "in", ExampleOutput: "out"}
}

func TestSubmitEarlyExitOnFirstFailure(t *testing.T) {
	repo := &stubRepo{
		question: question(7, "Reverse Words"),
		// Deliberately out of order; grading must follow ascending ids.
		testcases: []model.HiddenTestcase{
			{ID: 2, QuestionID: 7, InputText: "b", ExpectedOutput: "B"},
			{ID: 1, QuestionID: 7, InputText: "a", ExpectedOutput: "A"},
			{ID: 3, QuestionID: 7, InputText: "c", ExpectedOutput: "C"},
		},
	}
	engine := &stubEngine{responses: []scripted{
		{result: statusResult(3, "Accepted")},
		{result: statusResult(4, "Wrong Answer")},
		{result: statusResult(3, "Accepted")},
	}}
	svc := service.NewEvaluationService(repo, engine)

	resp, err := svc.Submit(context.Background(), 7, "python", "code")
	require.NoError(t, err)
	require.Equal(t, model.VerdictWrongAnswer, resp.Verdict)

	require.Len(t, resp.Details, 2)
	require.Equal(t, 1, resp.Details[0].TestcaseID)
	require.Equal(t, model.VerdictAccepted, resp.Details[0].Verdict)
	require.Equal(t, 2, resp.Details[1].TestcaseID)
	require.Equal(t, model.VerdictWrongAnswer, resp.Details[1].Verdict)

	// Testcase 3 must never reach the engine.
	require.Len(t, engine.calls, 2)
	require.Equal(t, "a", engine.calls[0].Stdin)
	require.Equal(t, "b", engine.calls[1].Stdin)
}

func TestSubmitAllPass(t *testing.T) {
	repo := &stubRepo{
		question: question(7, "Reverse Words"),
		testcases: []model.HiddenTestcase{
			{ID: 1, QuestionID: 7, InputText: "a", ExpectedOutput: "A"},
			{ID: 2, QuestionID: 7, InputText: "b", ExpectedOutput: "B"},
			{ID: 3, QuestionID: 7, InputText: "c", ExpectedOutput: "C"},
		},
	}
	engine := &stubEngine{responses: []scripted{
		{result: statusResult(3, "Accepted")},
		{result: statusResult(3, "Accepted")},
		{result: statusResult(3, "Accepted")},
	}}
	svc := service.NewEvaluationService(repo, engine)

	resp, err := svc.Submit(context.Background(), 7, "cpp", "code")
	require.NoError(t, err)
	require.Equal(t, model.VerdictAccepted, resp.Verdict)
	require.Len(t, resp.Details, 3)
	require.Len(t, engine.calls, 3)
}

func TestSubmitNoHiddenTestcases(t *testing.T) {
	repo := &stubRepo{question: question(7, "Reverse Words")}
	engine := &stubEngine{}
	svc := service.NewEvaluationService(repo, engine)

	_, err := svc.Submit(context.Background(), 7, "c", "code")
	require.ErrorIs(t, err, common.ErrNoHiddenTestcases)
	require.Empty(t, engine.calls)
}

func TestSubmitEngineTransportFailure(t *testing.T) {
	repo := &stubRepo{
		question: question(7, "Reverse Words"),
		testcases: []model.HiddenTestcase{
			{ID: 1, QuestionID: 7, InputText: "a", ExpectedOutput: "A"},
			{ID: 2, QuestionID: 7, InputText: "b", ExpectedOutput: "B"},
		},
	}
	engine := &stubEngine{responses: []scripted{
		{result: statusResult(3, "Accepted")},
		{err: &executor.EngineError{StatusCode: 503, Body: "engine down"}},
	}}
	svc := service.NewEvaluationService(repo, engine)

	resp, err := svc.Submit(context.Background(), 7, "java", "code")
	require.ErrorIs(t, err, common.ErrServiceUnavailable)

	// A transport failure never leaves a partial Accepted standing.
	require.NotNil(t, resp)
	require.Equal(t, model.VerdictRuntimeError, resp.Verdict)
	require.Contains(t, resp.Error, "engine down")
	require.Len(t, resp.Details, 1)
	require.Equal(t, 1, resp.Details[0].TestcaseID)
}

func TestSubmitUnsupportedLanguage(t *testing.T) {
	repo := &stubRepo{question: question(7, "Reverse Words")}
	engine := &stubEngine{}
	svc := service.NewEvaluationService(repo, engine)

	_, err := svc.Submit(context.Background(), 7, "cobol", "code")
	require.ErrorIs(t, err, common.ErrUnsupportedLanguage)
	require.Empty(t, engine.calls)
}

func TestRunAppliesDefaultsAndNormalization(t *testing.T) {
	repo := &stubRepo{
		question: &model.Question{
			ID:            5,
			Title:         "Two Sum",
			ExampleInput:  `{"nums":[2,7,11,15],"target":9}`,
			ExampleOutput: `[0,1]`,
			// Limits omitted on purpose.
		},
	}
	engine := &stubEngine{responses: []scripted{
		{result: statusResult(3, "Accepted")},
	}}
	svc := service.NewEvaluationService(repo, engine)

	resp, err := svc.Run(context.Background(), 5, "python", "code")
	require.NoError(t, err)
	require.Equal(t, model.VerdictAccepted, resp.Verdict)

	require.Equal(t, 1.0, resp.Limits.TimeLimitSec)
	require.Equal(t, 256000, resp.Limits.MemoryLimitKb)

	require.Len(t, engine.calls, 1)
	require.Equal(t, 71, engine.calls[0].LanguageID)
	require.Equal(t, 1.0, engine.calls[0].CPUTimeLimitSec)
	require.Equal(t, 256000, engine.calls[0].MemoryLimitKb)
	require.Equal(t, "2 7 11 15\n9\n", engine.calls[0].Stdin)
	require.Equal(t, "0 1\n", engine.calls[0].ExpectedOutput)
	require.Equal(t, "2 7 11 15\n9\n", resp.Normalized.Stdin)
	require.Equal(t, "0 1\n", resp.Normalized.ExpectedOutput)
}

func TestRunStoredLimitsWinOverDefaults(t *testing.T) {
	timeLimit := 2.5
	memoryLimit := 512000
	repo := &stubRepo{
		question: &model.Question{
			ID: 5, Title: "Big Input", ExampleInput: "in", ExampleOutput: "out",
			TimeLimitSec: &timeLimit, MemoryLimitKb: &memoryLimit,
		},
	}
	engine := &stubEngine{responses: []scripted{
		{result: statusResult(5, "Time Limit Exceeded")},
	}}
	svc := service.NewEvaluationService(repo, engine)

	resp, err := svc.Run(context.Background(), 5, "c", "code")
	require.NoError(t, err)
	require.Equal(t, model.VerdictTLE, resp.Verdict)
	require.Equal(t, 2.5, resp.Limits.TimeLimitSec)
	require.Equal(t, 512000, resp.Limits.MemoryLimitKb)
	require.Equal(t, 2.5, engine.calls[0].CPUTimeLimitSec)
}

func TestRunQuestionNotFound(t *testing.T) {
	repo := &stubRepo{}
	engine := &stubEngine{}
	svc := service.NewEvaluationService(repo, engine)

	_, err := svc.Run(context.Background(), 42, "python", "code")
	require.ErrorIs(t, err, common.ErrNotFound)
	require.Empty(t, engine.calls)
}

func TestResolveQuestionIDByTitle(t *testing.T) {
	repo := &stubRepo{question: question(9, "Two Sum")}
	svc := service.NewEvaluationService(repo, &stubEngine{})

	id, err := svc.ResolveQuestionID(context.Background(), "Two Sum")
	require.NoError(t, err)
	require.Equal(t, 9, id)

	_, err = svc.ResolveQuestionID(context.Background(), "Nope")
	require.ErrorIs(t, err, common.ErrNotFound)
}
