package handlers

import (
	"errors"
	"net/http"

	"reminders-server/common"
	"reminders-server/middleware"
	"reminders-server/respond"
	"reminders-server/services"
	"reminders-server/validation"
)

const msgInvalidCredentials = "Invalid credentials"

type AuthHandler struct {
	auth *services.AuthService
	hub  *Hub
	rs   *respond.Responder
}

func NewAuthHandler(auth *services.AuthService, hub *Hub, rs *respond.Responder) *AuthHandler {
	return &AuthHandler{auth: auth, hub: hub, rs: rs}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	req, err := validation.DecodeLogin(limitBody(w, r))
	if err != nil {
		h.rs.Error(w, r, err)
		return
	}

	user, token, err := h.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrUnauthorized) {
			respond.Message(w, http.StatusUnauthorized, msgInvalidCredentials)
			return
		}
		h.rs.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, user.ToLoginResponse(token))
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.auth.Logout(r.Context(), middleware.GetToken(r)); err != nil {
		h.rs.Error(w, r, err)
		return
	}

	// Drop live sockets opened with the revoked token.
	h.hub.DisconnectUser(middleware.GetUserID(r))

	respond.NoContent(w)
}
