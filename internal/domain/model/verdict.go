package model

// Verdict is the closed set of outcomes a judged run can produce. Values are
// the user-facing strings and must stay stable; the UI matches on them.
type Verdict string

const (
	VerdictAccepted            Verdict = "Accepted"
	VerdictWrongAnswer         Verdict = "Wrong Answer"
	VerdictTLE                 Verdict = "TLE"
	VerdictCompilationError    Verdict = "Compilation Error"
	VerdictMemoryLimitExceeded Verdict = "Memory Limit Exceeded"
	VerdictRuntimeError        Verdict = "Runtime Error"
)
