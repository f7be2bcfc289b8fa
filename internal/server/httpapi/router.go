// Package httpapi is the HTTP/JSON transport. It decodes and validates
// request bodies, hands plain values to the services, and maps the sentinel
// errors coming back onto status codes.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrijs2005/quizhub/internal/logging"
	"github.com/dmitrijs2005/quizhub/internal/server/config"
	"github.com/dmitrijs2005/quizhub/internal/server/models"
)

// UserService is the part of the user service the transport needs.
type UserService interface {
	Register(ctx context.Context, email, password string) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (string, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	Delete(ctx context.Context, actorID, targetID string) error
	CompleteGame(ctx context.Context, userID, gameID string) error
}

// GameService is the part of the game service the transport needs.
type GameService interface {
	Create(ctx context.Context, actorID string, game *models.Game) (*models.Game, error)
	GetByID(ctx context.Context, id string) (*models.Game, error)
	List(ctx context.Context) ([]*models.Game, error)
	Delete(ctx context.Context, actorID, id string) error
	IconUploadURL(ctx context.Context, actorID, gameID string) (string, error)
	IconDownloadURL(ctx context.Context, gameID string) (string, error)
}

type Server struct {
	users     UserService
	games     GameService
	logger    logging.Logger
	jwtSecret []byte
}

func NewServer(us UserService, gs GameService, l logging.Logger, cfg *config.Config) *Server {
	return &Server{
		users:     us,
		games:     gs,
		logger:    l.With("module", "httpapi"),
		jwtSecret: []byte(cfg.SecretKey),
	}
}

// Router builds the route tree. Anything under the authenticated group sees
// a verified user id in the request context; the admin checks themselves
// live in the services.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(s.logRequests)

	r.Get("/api/health", s.handleHealth)

	// Public.
	r.Group(func(pub chi.Router) {
		pub.Use(OptionalAuth(s.jwtSecret))
		pub.Post("/api/users", s.handleRegister)
		pub.Post("/api/auth", s.handleLogin)
		pub.Get("/api/users", s.handleListUsers)
		pub.Get("/api/games", s.handleListGames)
	})

	// Authenticated.
	r.Group(func(priv chi.Router) {
		priv.Use(Authenticate(s.jwtSecret))
		priv.Get("/api/users/me", s.handleMe)
		priv.Delete("/api/users/{id}", s.handleDeleteUser)
		priv.Post("/api/users/me/completed/{gameID}", s.handleCompleteGame)
		priv.Get("/api/games/{id}", s.handleGetGame)
		priv.Get("/api/games/{id}/icon", s.handleIconDownload)

		priv.Post("/api/games", s.handleCreateGame)
		priv.Delete("/api/games/{id}", s.handleDeleteGame)
		priv.Post("/api/games/{id}/icon", s.handleIconUpload)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info(r.Context(), "request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start).String(),
		)
	})
}
