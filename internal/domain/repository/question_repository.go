package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Raiyyanpatel/PrepVerse/internal/common"
	"github.com/Raiyyanpatel/PrepVerse/internal/domain/model"
)

// QuestionRepository is the read path to the external question store. The
// judging core never writes to it.
type QuestionRepository interface {
	FindQuestionByID(ctx context.Context, id int) (*model.Question, error)
	FindQuestionIDByTitle(ctx context.Context, title string) (int, error)
	GetHiddenTestcasesByQuestionID(ctx context.Context, questionID int) ([]model.HiddenTestcase, error)
}

type pgQuestionRepository struct {
	db *sql.DB
}

func NewPgQuestionRepository(db *sql.DB) QuestionRepository {
	return &pgQuestionRepository{db: db}
}

func (r *pgQuestionRepository) FindQuestionByID(ctx context.Context, id int) (*model.Question, error) {
	query := `
        SELECT question_id, title, example_input, example_output, time_limit_sec, memory_limit_kb
        FROM questions WHERE question_id = $1 LIMIT 1`

	q := &model.Question{}
	var exampleInput, exampleOutput sql.NullString
	var timeLimit sql.NullFloat64
	var memoryLimit sql.NullInt64

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&q.ID, &q.Title, &exampleInput, &exampleOutput, &timeLimit, &memoryLimit,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgQuestionRepository.FindQuestionByID: %w", err)
	}

	q.ExampleInput = exampleInput.String
	q.ExampleOutput = exampleOutput.String
	if timeLimit.Valid {
		q.TimeLimitSec = &timeLimit.Float64
	}
	if memoryLimit.Valid {
		kb := int(memoryLimit.Int64)
		q.MemoryLimitKb = &kb
	}
	return q, nil
}

func (r *pgQuestionRepository) FindQuestionIDByTitle(ctx context.Context, title string) (int, error) {
	query := `SELECT question_id FROM questions WHERE title = $1 LIMIT 1`

	var id int
	err := r.db.QueryRowContext(ctx, query, title).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, common.ErrNotFound
		}
		return 0, fmt.Errorf("pgQuestionRepository.FindQuestionIDByTitle: %w", err)
	}
	return id, nil
}

func (r *pgQuestionRepository) GetHiddenTestcasesByQuestionID(ctx context.Context, questionID int) ([]model.HiddenTestcase, error) {
	query := `
        SELECT testcase_id, question_id, input_text, expected_output
        FROM question_hidden_testcases WHERE question_id = $1 ORDER BY testcase_id ASC`

	rows, err := r.db.QueryContext(ctx, query, questionID)
	if err != nil {
		return nil, fmt.Errorf("pgQuestionRepository.GetHiddenTestcasesByQuestionID query: %w", err)
	}
	defer rows.Close()

	var testcases []model.HiddenTestcase
	for rows.Next() {
		var tc model.HiddenTestcase
		var input, expected sql.NullString
		if err := rows.Scan(&tc.ID, &tc.QuestionID, &input, &expected); err != nil {
			return nil, fmt.Errorf("pgQuestionRepository.GetHiddenTestcasesByQuestionID scan: %w", err)
		}
		tc.InputText = input.String
		tc.ExpectedOutput = expected.String
		testcases = append(testcases, tc)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgQuestionRepository.GetHiddenTestcasesByQuestionID rows.Err: %w", err)
	}
	return testcases, nil
}
