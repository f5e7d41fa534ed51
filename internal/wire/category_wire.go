package wire

import (
	"github.com/LordKisik/yamdb-final/internal/adaptor"
	"github.com/LordKisik/yamdb-final/internal/data/repository"
	"github.com/LordKisik/yamdb-final/pkg/middleware"
	"github.com/LordKisik/yamdb-final/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireCategory(
	r chi.Router,
	categoryHandler *adaptor.CategoryHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	r.Route("/api/v1/categories", func(r chi.Router) {
		// ==================== PUBLIC ROUTES ====================
		// GET /api/v1/categories - list categories (anyone can view)
		r.Get("/", categoryHandler.ListCategories)

		// ==================== ADMIN ROUTES ====================
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(repo.User, config.JWT, log))
			r.Use(middleware.Admin(log))

			r.Post("/", categoryHandler.CreateCategory)
			r.Delete("/{slug}", categoryHandler.DeleteCategory)
		})
	})
}
