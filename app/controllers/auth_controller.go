package controllers

import (
	"net/http"

	"github.com/shirshak001/JEWEL/app/services"
	"github.com/shirshak001/JEWEL/pkg/bind"
	"github.com/shirshak001/JEWEL/pkg/middleware"
	"github.com/shirshak001/JEWEL/pkg/response"
)

type AuthController struct {
	auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

// Login handles POST /api/admin/auth/login.
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"    validate:"required,email"`
		Password string `json:"password" validate:"required,min=8"`
	}
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	result, err := c.auth.Login(r.Context(), body.Email, body.Password)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, result)
}

// Logout handles POST /api/admin/auth/logout. Always succeeds so a
// client holding a stale token can still clear its state.
func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	if err := c.auth.Logout(r.Context(), middleware.BearerToken(r)); err != nil {
		response.FromError(w, err)
		return
	}
	response.Message(w, "Logged out")
}

// Session handles GET /api/admin/auth/session. Reaching it at all means
// the auth middleware accepted and refreshed the session.
func (c *AuthController) Session(w http.ResponseWriter, r *http.Request) {
	sess, err := c.auth.Session(r.Context(), middleware.BearerToken(r))
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, map[string]interface{}{
		"userId": sess.UserID,
		"email":  sess.Email,
		"name":   sess.Name,
		"role":   sess.Role,
	})
}
