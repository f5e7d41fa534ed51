package wire

import (
	"github.com/LordKisik/yamdb-final/internal/adaptor"
	"github.com/LordKisik/yamdb-final/internal/data/repository"
	"github.com/LordKisik/yamdb-final/pkg/middleware"
	"github.com/LordKisik/yamdb-final/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Titles share their /api/v1/titles prefix with the nested review and
// comment routes, so every endpoint is registered with its full path
// instead of a mounted subrouter.
func wireTitle(
	r chi.Router,
	titleHandler *adaptor.TitleHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	auth := middleware.Auth(repo.User, config.JWT, log)
	admin := middleware.Admin(log)

	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/v1/titles", titleHandler.ListTitles)
	r.Get("/api/v1/titles/{title_id}", titleHandler.GetTitle)

	// ==================== ADMIN ROUTES ====================
	r.With(auth, admin).Post("/api/v1/titles", titleHandler.CreateTitle)
	r.With(auth, admin).Patch("/api/v1/titles/{title_id}", titleHandler.UpdateTitle)
	r.With(auth, admin).Delete("/api/v1/titles/{title_id}", titleHandler.DeleteTitle)
}
