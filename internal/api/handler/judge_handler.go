package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/Raiyyanpatel/PrepVerse/internal/api/middleware"
	"github.com/Raiyyanpatel/PrepVerse/internal/app/judge"
	"github.com/Raiyyanpatel/PrepVerse/internal/app/service"
	"github.com/Raiyyanpatel/PrepVerse/internal/common"
	"github.com/Raiyyanpatel/PrepVerse/internal/platform/config"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
)

type JudgeHandler struct {
	evaluationService *service.EvaluationService
	rdb               *redis.Client
}

func NewJudgeHandler(es *service.EvaluationService, rdb *redis.Client) *JudgeHandler {
	return &JudgeHandler{evaluationService: es, rdb: rdb}
}

func (h *JudgeHandler) RegisterRoutes(r chi.Router) {
	r.Get("/languages", h.listLanguages)

	r.Group(func(protected chi.Router) {
		protected.Use(middleware.Authenticator)
		protected.Use(middleware.JudgeRateLimiter(h.rdb, config.AppConfig.JudgeRateLimitPerMinute))
		protected.Post("/run", h.runCode)
		protected.Post("/submit", h.submitCode)
	})
}

// flexibleID accepts a question id sent as a JSON number or as a numeric
// string. Anything else parses to zero and is resolved by title instead.
type flexibleID int

func (f *flexibleID) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(strings.Trim(strings.TrimSpace(string(b)), `"`))
	if n, err := strconv.Atoi(s); err == nil {
		*f = flexibleID(n)
	} else {
		*f = 0
	}
	return nil
}

// judgeRequest tolerates the question id arriving under several keys, as
// numbers or numeric strings, or only as a title to resolve against the
// store.
type judgeRequest struct {
	QuestionID flexibleID `json:"question_id"`
	ID         flexibleID `json:"id"`
	Qid        flexibleID `json:"qid"`
	Title      string     `json:"title"`
	Language   string     `json:"language"`
	Code       string     `json:"code"`
}

func (h *JudgeHandler) resolveQuestionID(r *http.Request, req judgeRequest) (int, error) {
	for _, candidate := range []flexibleID{req.QuestionID, req.ID, req.Qid} {
		if candidate > 0 {
			return int(candidate), nil
		}
	}
	if req.Title != "" {
		return h.evaluationService.ResolveQuestionID(r.Context(), req.Title)
	}
	return 0, common.Errorf("questionId, language, and code are required: %w", common.ErrBadRequest)
}

func (h *JudgeHandler) decodeJudgeRequest(w http.ResponseWriter, r *http.Request) (judgeRequest, int, bool) {
	var req judgeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return req, 0, false
	}
	if req.Language == "" || req.Code == "" {
		common.RespondWithError(w, http.StatusBadRequest, "questionId, language, and code are required")
		return req, 0, false
	}
	questionID, err := h.resolveQuestionID(r, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return req, 0, false
	}
	return req, questionID, true
}

// runCode judges the code once against the question's public example.
func (h *JudgeHandler) runCode(w http.ResponseWriter, r *http.Request) {
	req, questionID, ok := h.decodeJudgeRequest(w, r)
	if !ok {
		return
	}

	resp, err := h.evaluationService.Run(r.Context(), questionID, req.Language, req.Code)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, resp)
}

// submitCode grades the code against the question's hidden testcases.
func (h *JudgeHandler) submitCode(w http.ResponseWriter, r *http.Request) {
	req, questionID, ok := h.decodeJudgeRequest(w, r)
	if !ok {
		return
	}

	resp, err := h.evaluationService.Submit(r.Context(), questionID, req.Language, req.Code)
	if err != nil {
		// On an engine transport failure the response still carries the
		// verdict and the details gathered before the failure.
		if resp != nil {
			common.RespondWithJSON(w, common.HTTPStatusFromError(err), resp)
		} else {
			common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		}
		return
	}
	common.RespondWithJSON(w, http.StatusOK, resp)
}

func (h *JudgeHandler) listLanguages(w http.ResponseWriter, r *http.Request) {
	common.RespondWithJSON(w, http.StatusOK, map[string][]string{
		"languages": judge.SupportedLanguages(),
	})
}
