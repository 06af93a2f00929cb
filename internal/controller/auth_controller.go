package controller

import (
	"net/http"

	"github.com/dterira/Quorable/internal/dto"
	"github.com/dterira/Quorable/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type AuthController struct {
	users service.UserService
}

func NewAuthController(users service.UserService) *AuthController {
	return &AuthController{users: users}
}

// Register godoc
// @Summary Register a new user
// @Description Creates the account and mails a verification code.
// @Tags auth
// @Accept json
// @Produce json
// @Param user body dto.RegisterRequest true "Registration fields"
// @Success 201 {object} dto.UserResponse
// @Failure 422 {object} dto.ErrorResponse "Validation failure"
// @Router /auth/register [post]
func (ctrl *AuthController) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	user, err := ctrl.users.Register(req)
	if err != nil {
		abortError(c, err)
		return
	}

	log.Info().Uint("userID", user.ID).Msg("User registered")
	c.JSON(http.StatusCreated, user)
}

// Login godoc
// @Summary Log in
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.AuthResponse
// @Failure 422 {object} dto.ErrorResponse "Invalid credentials"
// @Router /auth/login [post]
func (ctrl *AuthController) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	res, err := ctrl.users.Login(req)
	if err != nil {
		abortError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// VerifyEmail godoc
// @Summary Verify the account email
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.VerifyEmailRequest true "Verification code"
// @Success 200 {object} dto.MessageResponse
// @Failure 422 {object} dto.ErrorResponse "Invalid code"
// @Security BearerAuth
// @Router /auth/verify-email [post]
func (ctrl *AuthController) VerifyEmail(c *gin.Context) {
	var req dto.VerifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if err := ctrl.users.VerifyEmail(*ViewerID(c), req.Code); err != nil {
		abortError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Email verified."})
}
