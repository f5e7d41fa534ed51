package wire

import (
	"github.com/LordKisik/yamdb-final/internal/adaptor"
	"github.com/LordKisik/yamdb-final/internal/data/repository"
	"github.com/LordKisik/yamdb-final/pkg/middleware"
	"github.com/LordKisik/yamdb-final/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireComment(
	r chi.Router,
	commentHandler *adaptor.CommentHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	auth := middleware.Auth(repo.User, config.JWT, log)

	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/v1/titles/{title_id}/reviews/{review_id}/comments", commentHandler.ListComments)
	r.Get("/api/v1/titles/{title_id}/reviews/{review_id}/comments/{comment_id}", commentHandler.GetComment)

	// ==================== AUTHENTICATED ROUTES ====================
	r.With(auth).Post("/api/v1/titles/{title_id}/reviews/{review_id}/comments", commentHandler.CreateComment)
	r.With(auth).Patch("/api/v1/titles/{title_id}/reviews/{review_id}/comments/{comment_id}", commentHandler.UpdateComment)
	r.With(auth).Delete("/api/v1/titles/{title_id}/reviews/{review_id}/comments/{comment_id}", commentHandler.DeleteComment)
}
