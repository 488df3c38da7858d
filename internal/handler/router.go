package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/todolist/todolist-go/internal/crypto"
	"github.com/todolist/todolist-go/internal/middleware"
	"github.com/todolist/todolist-go/internal/service"
)

// RouterConfig collects what NewRouter needs to mount the API.
type RouterConfig struct {
	Auth       *service.AuthService
	Tasks      *service.TaskService
	Tokens     *crypto.TokenIssuer
	Log        *zap.Logger
	CORSOrigin string
}

// NewRouter builds the HTTP routes.
func NewRouter(cfg RouterConfig) http.Handler {
	authHandler := NewAuthHandler(cfg.Auth, cfg.Log)
	todoHandler := NewTodoHandler(cfg.Tasks, cfg.Log)

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(cfg.Log))
	r.Use(middleware.CORS(cfg.CORSOrigin))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/register", authHandler.HandleRegister)
		r.Post("/login", authHandler.HandleLogin)

		r.Group(func(r chi.Router) {
			r.Use(middleware.JWTAuth(cfg.Tokens))
			r.Get("/me", authHandler.HandleMe)

			r.Get("/todo", todoHandler.HandleList)
			r.Post("/todo", todoHandler.HandleCreate)
			r.Get("/todo/{id}", todoHandler.HandleGet)
			r.Put("/todo/{id}", todoHandler.HandleUpdate)
			r.Patch("/todo/{id}/status", todoHandler.HandleSetStatus)
			r.Delete("/todo/{id}", todoHandler.HandleDelete)
		})
	})

	return r
}
