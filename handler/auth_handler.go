package handler

import (
	"errors"
	"log"

	"noteshare/dto"
	"noteshare/middleware"
	"noteshare/model"
	"noteshare/repository"
	"noteshare/services"
	"noteshare/usecase"
	"noteshare/utils"

	"github.com/gin-gonic/gin"
)

// RegistrationHandler creates an account. Registration does not log
// the user in; the client follows up with a login call.
func RegistrationHandler(c *gin.Context, userService *usecase.UserService) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.TrackAuthAttempt("failure", "register")
		utils.BadRequest(c, "Invalid input")
		return
	}

	log.Printf("[REGISTER] Registration attempt for username: %s, email: %s", req.Username, req.Email)

	user := &model.User{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	}

	if err := userService.CreateUser(c.Request.Context(), user); err != nil {
		switch {
		case errors.Is(err, repository.ErrUsernameTaken), errors.Is(err, repository.ErrEmailTaken):
			middleware.TrackAuthAttempt("failure", "register")
			log.Printf("[ERROR] %v: %s", err, req.Username)
			utils.Conflict(c, err.Error())
		default:
			middleware.TrackAuthAttempt("failure", "register")
			middleware.TrackError("auth")
			utils.BadRequest(c, err.Error())
		}
		return
	}

	middleware.TrackAuthAttempt("success", "register")
	log.Printf("[SUCCESS] User registered: %s (ID: %s)", user.Username, user.UserID)
	utils.Created(c, dto.ToUserResponse(user))
}

// LoginHandler authenticates a username-or-email identifier and hands
// back the bearer token with the user's public identity.
func LoginHandler(c *gin.Context, userService *usecase.UserService, sessionRepo repository.SessionsRepository) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.TrackAuthAttempt("failure", "login")
		utils.BadRequest(c, "Invalid input")
		return
	}

	log.Printf("[LOGIN] Login attempt for: %s", req.Login)

	user, err := userService.Authenticate(c.Request.Context(), req.Login, req.Password)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			middleware.TrackAuthAttempt("failure", "login")
			log.Printf("[ERROR] Invalid credentials for: %s", req.Login)
			utils.Unauthorized(c, "Invalid username/email or password")
			return
		}
		middleware.TrackError("auth")
		utils.InternalError(c, "Login failed")
		return
	}

	session, err := middleware.CreateSession(c, user.UserID, sessionRepo)
	if err != nil {
		middleware.TrackError("session")
		utils.InternalError(c, "Failed to create session")
		return
	}

	token, err := services.GenerateToken(user, session.SessionID)
	if err != nil {
		middleware.TrackError("auth")
		utils.InternalError(c, "Failed to generate token")
		return
	}

	middleware.TrackAuthAttempt("success", "login")
	log.Printf("[SUCCESS] Login successful: %s (ID: %s)", user.Username, user.UserID)

	utils.Success(c, dto.AuthResponse{
		Token: token,
		User:  dto.ToUserResponse(user),
	})
}

func requireUserID(c *gin.Context) (string, bool) {
	userID := c.GetString("userID")
	if userID == "" {
		utils.Unauthorized(c, "Missing or invalid token")
		return "", false
	}
	return userID, true
}
