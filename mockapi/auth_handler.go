package mockapi

import (
	"net/http"

	"github.com/rpupo63/blog-frontend/errs"
	"github.com/rpupo63/blog-frontend/models"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

type authHandler struct {
	responder    Responder
	logger       zerolog.Logger
	tokens       tokenIssuer
	username     string
	passwordHash []byte
}

func newAuthHandler(logger zerolog.Logger, tokens tokenIssuer, username string, passwordHash []byte) authHandler {
	logger = logger.With().Str("handlerName", "authHandler").Logger()
	return authHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		tokens:       tokens,
		username:     username,
		passwordHash: passwordHash,
	}
}

// login serves POST /auth/login
func (h authHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.LoginRequest
		if err := decodeJSON(r, "login", &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if req.Username != h.username || bcrypt.CompareHashAndPassword(h.passwordHash, []byte(req.Password)) != nil {
			h.logger.Warn().Str("username", req.Username).Msg("rejected login")
			h.responder.WriteError(w, errs.NewInvalidCredentialsError())
			return
		}

		token, err := h.tokens.issue(h.username)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, models.LoginResponse{Token: token, Username: h.username})
	}
}
