package endpoints

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/lumenview/lumen/internal/http/api"
	"github.com/lumenview/lumen/internal/http/api/admin/packets"
	"github.com/lumenview/lumen/internal/http/middleware"
)

type AuthController struct {
	secret       string
	passwordHash string
}

// RegisterAuthRoutes mounts the public login endpoint. passwordHash is the
// bcrypt hash of the admin password, taken from the environment.
func RegisterAuthRoutes(r gin.IRoutes, secret, passwordHash string) {
	ctl := &AuthController{secret: secret, passwordHash: passwordHash}
	r.POST("/auth/login", api.ResolveEndpoint(ctl.login))
}

func (a *AuthController) login(ctx *gin.Context) (any, *api.Error) {
	var req packets.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: err.Error()}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(a.passwordHash), []byte(req.Password)); err != nil {
		return nil, &api.Error{Code: http.StatusUnauthorized, Message: "invalid credentials"}
	}

	token, err := middleware.GenerateJWT(a.secret)
	if err != nil {
		log.Error().Err(err).Msg("[auth] login: could not sign token")
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not sign token"}
	}
	return packets.TokenResponse{Token: token}, nil
}
