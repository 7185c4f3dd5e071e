package handler

import (
	"crypto/subtle"
	"net/http"

	"github.com/freeeve/geoindex/internal/auth"
)

// AuthHandler issues admin JWTs in exchange for the shared admin token.
type AuthHandler struct {
	jwtMgr     *auth.JWTManager
	adminToken string
}

// NewAuthHandler creates an AuthHandler that accepts adminToken as the
// single shared credential for admin login.
func NewAuthHandler(jwtMgr *auth.JWTManager, adminToken string) *AuthHandler {
	return &AuthHandler{jwtMgr: jwtMgr, adminToken: adminToken}
}

// AdminLogin exchanges the shared admin token for a short-lived JWT.
// There is no user database: every admin shares one credential,
// configured out of band via the ADMIN_TOKEN environment variable.
func (h *AuthHandler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token string `json:"token"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if subtle.ConstantTimeCompare([]byte(req.Token), []byte(h.adminToken)) != 1 {
		writeError(w, http.StatusUnauthorized, "invalid admin token")
		return
	}

	jwtToken, err := h.jwtMgr.GenerateAdminToken()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"access_token": jwtToken})
}
