package wire

import (
	"github.com/LordKisik/yamdb-final/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAuth(r chi.Router, authHandler *adaptor.AuthHandler) {
	// ==================== PUBLIC ROUTES ====================
	// POST /api/v1/auth/signup - register and send a confirmation code
	r.Post("/api/v1/auth/signup", authHandler.Signup)

	// POST /api/v1/auth/token - exchange a confirmation code for a JWT
	r.Post("/api/v1/auth/token", authHandler.Token)
}
