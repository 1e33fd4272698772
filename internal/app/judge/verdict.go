package judge

import (
	"log/slog"
	"strings"

	"github.com/Raiyyanpatel/PrepVerse/internal/domain/model"
	"github.com/Raiyyanpatel/PrepVerse/internal/platform/executor"
)

// Engine status codes for the outcomes we classify by number.
const (
	statusAccepted         = 3
	statusWrongAnswer      = 4
	statusTimeLimit        = 5
	statusCompilationError = 6
	statusRuntimeError     = 7
)

// MapStatus translates a raw engine status into a Verdict. It is total and
// deterministic: any input, including a zero Status, yields exactly one of
// the six verdicts and never an error. The numeric id is authoritative; the
// human description is a secondary heuristic kept for resilience across
// engine versions, and classifications that needed it are logged so drift
// stays visible.
func MapStatus(status executor.Status) model.Verdict {
	switch status.ID {
	case statusAccepted:
		return model.VerdictAccepted
	case statusWrongAnswer:
		return model.VerdictWrongAnswer
	case statusTimeLimit:
		return model.VerdictTLE
	case statusCompilationError:
		return model.VerdictCompilationError
	case statusRuntimeError:
		return model.VerdictRuntimeError
	}

	desc := strings.ToLower(status.Description)
	verdict, matched := classifyDescription(desc)
	if matched {
		slog.Warn("verdict classified by description fallback",
			"status_id", status.ID, "description", status.Description, "verdict", verdict)
	} else {
		slog.Warn("unrecognized engine status, defaulting to runtime error",
			"status_id", status.ID, "description", status.Description)
	}
	return verdict
}

// classifyDescription applies the substring rules in priority order; order
// matters when several signals appear in one description.
func classifyDescription(desc string) (model.Verdict, bool) {
	switch {
	case strings.Contains(desc, "accepted"):
		return model.VerdictAccepted, true
	case strings.Contains(desc, "wrong"):
		return model.VerdictWrongAnswer, true
	case strings.Contains(desc, "time"):
		return model.VerdictTLE, true
	case strings.Contains(desc, "compil"):
		return model.VerdictCompilationError, true
	case strings.Contains(desc, "memory"):
		return model.VerdictMemoryLimitExceeded, true
	case strings.Contains(desc, "runtime"), strings.Contains(desc, "error"), strings.Contains(desc, "exception"):
		return model.VerdictRuntimeError, true
	}
	// An unclassifiable outcome must still produce an actionable result.
	return model.VerdictRuntimeError, false
}
