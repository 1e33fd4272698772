package api

import (
	"net/http"
	"time"

	"github.com/Raiyyanpatel/PrepVerse/internal/api/handler"
	"github.com/Raiyyanpatel/PrepVerse/internal/app/service"
	"github.com/Raiyyanpatel/PrepVerse/internal/common/security"
	"github.com/Raiyyanpatel/PrepVerse/internal/domain/repository"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
	"github.com/redis/go-redis/v9"
)

func NewRouter(
	evaluationService *service.EvaluationService,
	questionRepo repository.QuestionRepository,
	rdb *redis.Client,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	// A submit walks hidden testcases sequentially, each bounded by the
	// engine wall-clock limit; the outer timeout has to cover the chain.
	r.Use(chiMiddleware.Timeout(120 * time.Second))

	// Verifies a bearer token when present and puts claims in context.
	r.Use(jwtauth.Verifier(security.TokenAuth))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	r.Route("/api/v1", func(v1 chi.Router) {
		judgeHandler := handler.NewJudgeHandler(evaluationService, rdb)
		v1.Route("/judge", judgeHandler.RegisterRoutes)

		questionHandler := handler.NewQuestionHandler(questionRepo)
		v1.Route("/questions", questionHandler.RegisterRoutes)
	})

	return r
}
