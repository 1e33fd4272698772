package handler

import (
	"net/http"
	"strconv"

	"github.com/Raiyyanpatel/PrepVerse/internal/common"
	"github.com/Raiyyanpatel/PrepVerse/internal/domain/repository"

	"github.com/go-chi/chi/v5"
)

type QuestionHandler struct {
	questionRepo repository.QuestionRepository
}

func NewQuestionHandler(repo repository.QuestionRepository) *QuestionHandler {
	return &QuestionHandler{questionRepo: repo}
}

func (h *QuestionHandler) RegisterRoutes(r chi.Router) {
	r.Get("/{questionID}", h.getQuestion)
}

// getQuestion returns the public fields of a question. Hidden testcases are
// never served by this API.
func (h *QuestionHandler) getQuestion(w http.ResponseWriter, r *http.Request) {
	questionID, err := strconv.Atoi(chi.URLParam(r, "questionID"))
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "question id must be an integer")
		return
	}

	question, err := h.questionRepo.FindQuestionByID(r.Context(), questionID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, question)
}
