package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/modwatch-lab/tattler/pkg/domain/model/event"
)

// UseCase is the subset of the pipeline the trigger endpoints call.
type UseCase interface {
	HandleModAction(ctx context.Context, ev *event.ModAction) error
	HandlePost(ctx context.Context, ev *event.PostSubmit) error
	HandleComment(ctx context.Context, ev *event.CommentSubmit) error
	HandleLifecycle(ctx context.Context, ev *event.Lifecycle) error
}

type Server struct {
	router *chi.Mux
	uc     UseCase
}

var _ http.Handler = &Server{}

func New(uc UseCase) *Server {
	s := &Server{
		router: chi.NewRouter(),
		uc:     uc,
	}

	s.router.Use(withLogging)

	s.router.Route("/hooks/trigger", func(r chi.Router) {
		r.Post("/modaction", modActionHandler(uc))
		r.Post("/post", postHandler(uc))
		r.Post("/comment", commentHandler(uc))
		r.Post("/lifecycle", lifecycleHandler(uc))
	})

	s.router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
