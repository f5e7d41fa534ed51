package wire

import (
	"github.com/LordKisik/yamdb-final/internal/adaptor"
	"github.com/LordKisik/yamdb-final/internal/data/repository"
	"github.com/LordKisik/yamdb-final/pkg/middleware"
	"github.com/LordKisik/yamdb-final/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireGenre(
	r chi.Router,
	genreHandler *adaptor.GenreHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	r.Route("/api/v1/genres", func(r chi.Router) {
		// ==================== PUBLIC ROUTES ====================
		// GET /api/v1/genres - list genres (anyone can view)
		r.Get("/", genreHandler.ListGenres)

		// ==================== ADMIN ROUTES ====================
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(repo.User, config.JWT, log))
			r.Use(middleware.Admin(log))

			r.Post("/", genreHandler.CreateGenre)
			r.Delete("/{slug}", genreHandler.DeleteGenre)
		})
	})
}
