package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"chirpboard/internal/config"
	"chirpboard/internal/database"
	"chirpboard/internal/service"
)

type contextKey string

// UserIDKey carries the authenticated actor id through the request context.
const UserIDKey contextKey = "userID"

type Handlers struct {
	AuthService     service.AuthService
	AccountService  service.AccountService
	FollowService   service.FollowService
	PostService     service.PostService
	CommentService  service.CommentService
	ReactionService service.ReactionService
	Cfg             *config.Config
	Validate        *validator.Validate
}

func NewHandlers(services *service.Service, config *config.Config) *Handlers {
	return &Handlers{
		AuthService:     services.Auth,
		AccountService:  services.Account,
		FollowService:   services.Follow,
		PostService:     services.Post,
		CommentService:  services.Comment,
		ReactionService: services.Reaction,
		Cfg:             config,
		Validate:        validator.New(),
	}
}

// actorID returns the authenticated user id placed into the context by the
// auth middleware.
func actorID(r *http.Request) string {
	userID, _ := r.Context().Value(UserIDKey).(string)
	return userID
}

func HomeHandler(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, map[string]string{"service": "chirpboard"}, http.StatusOK)
}

// HealthHandler probes the store: the service is only healthy when the
// database answers.
func HealthHandler(db *database.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.HealthCheck(); err != nil {
			WriteError(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}

		WriteSuccess(w, map[string]string{"status": "ok"}, http.StatusOK)
	}
}
