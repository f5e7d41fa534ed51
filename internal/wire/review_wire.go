package wire

import (
	"github.com/LordKisik/yamdb-final/internal/adaptor"
	"github.com/LordKisik/yamdb-final/internal/data/repository"
	"github.com/LordKisik/yamdb-final/pkg/middleware"
	"github.com/LordKisik/yamdb-final/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireReview(
	r chi.Router,
	reviewHandler *adaptor.ReviewHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	auth := middleware.Auth(repo.User, config.JWT, log)

	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/v1/titles/{title_id}/reviews", reviewHandler.ListReviews)
	r.Get("/api/v1/titles/{title_id}/reviews/{review_id}", reviewHandler.GetReview)

	// ==================== AUTHENTICATED ROUTES ====================
	// Author, moderator or admin checks happen in the service layer.
	r.With(auth).Post("/api/v1/titles/{title_id}/reviews", reviewHandler.CreateReview)
	r.With(auth).Patch("/api/v1/titles/{title_id}/reviews/{review_id}", reviewHandler.UpdateReview)
	r.With(auth).Delete("/api/v1/titles/{title_id}/reviews/{review_id}", reviewHandler.DeleteReview)
}
