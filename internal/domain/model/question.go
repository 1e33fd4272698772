package model

const (
	DefaultTimeLimitSec  = 1.0
	DefaultMemoryLimitKb = 256000
)

// Question is a row of the external question store. The example fields hold
// problem-specific encodings (JSON, bracket lists or free text) and are
// normalized before reaching the execution engine.
type Question struct {
	ID            int      `json:"question_id"`
	Title         string   `json:"title"`
	ExampleInput  string   `json:"example_input"`
	ExampleOutput string   `json:"example_output"`
	TimeLimitSec  *float64 `json:"time_limit_sec,omitempty"`
	MemoryLimitKb *int     `json:"memory_limit_kb,omitempty"`
}

// HiddenTestcase rows are graded in ascending ID order; the order decides
// which failing case a submission surfaces first.
type HiddenTestcase struct {
	ID             int    `json:"testcase_id"`
	QuestionID     int    `json:"question_id"`
	InputText      string `json:"input_text"`
	ExpectedOutput string `json:"expected_output"`
}

type Limits struct {
	TimeLimitSec  float64 `json:"time_limit_sec"`
	MemoryLimitKb int     `json:"memory_limit_kb"`
}

// Limits resolves the per-run budgets, falling back to the global defaults
// when the stored record omits them.
func (q *Question) Limits() Limits {
	l := Limits{TimeLimitSec: DefaultTimeLimitSec, MemoryLimitKb: DefaultMemoryLimitKb}
	if q.TimeLimitSec != nil && *q.TimeLimitSec > 0 {
		l.TimeLimitSec = *q.TimeLimitSec
	}
	if q.MemoryLimitKb != nil && *q.MemoryLimitKb > 0 {
		l.MemoryLimitKb = *q.MemoryLimitKb
	}
	return l
}
