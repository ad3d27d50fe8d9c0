package controllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"limo-backend/middleware"
	"limo-backend/models"
	"limo-backend/services"
	"limo-backend/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type signupPayload struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Phone     string `json:"phone"`
}

type signinPayload struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type resetPayload struct {
	Email string `json:"email" binding:"required"`
}

type AuthController struct {
	UserSvc  *services.UserService
	AdminSvc *services.AdminService
}

func NewAuthController(users *services.UserService, admins *services.AdminService) *AuthController {
	return &AuthController{UserSvc: users, AdminSvc: admins}
}

// Signup handles POST /api/auth/signup: creates the profile row and issues
// a session token. The email-verified flag starts false.
func (ac *AuthController) Signup(c *gin.Context) {
	var payload signupPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid signup payload: "+err.Error())
		return
	}

	email := strings.ToLower(strings.TrimSpace(payload.Email))
	if _, err := ac.UserSvc.GetByEmail(email); err == nil {
		utils.JSONError(c, http.StatusConflict, "an account with this email already exists")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to hash password")
		return
	}

	user := models.User{
		Email:       email,
		Password:    string(hash),
		FirstName:   strings.TrimSpace(payload.FirstName),
		LastName:    strings.TrimSpace(payload.LastName),
		DisplayName: strings.TrimSpace(payload.FirstName + " " + payload.LastName),
		Phone:       strings.TrimSpace(payload.Phone),
		Role:        "user",
	}
	if err := ac.UserSvc.DB.Create(&user).Error; err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to create account")
		return
	}

	token, err := middleware.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to generate token")
		return
	}

	utils.JSONSuccess(c, http.StatusCreated, gin.H{"token": token, "user": user})
}

// Signin handles POST /api/auth/signin.
func (ac *AuthController) Signin(c *gin.Context) {
	var payload signinPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "email and password required")
		return
	}

	email := strings.ToLower(strings.TrimSpace(payload.Email))
	user, err := ac.UserSvc.GetByEmail(email)
	if err != nil {
		utils.JSONError(c, http.StatusUnauthorized, "invalid credentials")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(payload.Password)) != nil {
		utils.JSONError(c, http.StatusUnauthorized, "invalid credentials")
		return
	}

	if ac.AdminSvc.IsAdmin(user.Email) {
		ac.AdminSvc.TouchLastLogin(user.Email)
	}

	token, err := middleware.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to generate token")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{"token": token, "user": user})
}

// Signout handles POST /api/auth/signout. Tokens are client-held, so this
// is an acknowledgment only.
func (ac *AuthController) Signout(c *gin.Context) {
	utils.JSONMessage(c, http.StatusOK, "signed out")
}

// ResetPassword handles POST /api/auth/reset. Responds identically whether
// or not the account exists; the reset email itself is best-effort.
func (ac *AuthController) ResetPassword(c *gin.Context) {
	var payload resetPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "email required")
		return
	}

	email := strings.ToLower(strings.TrimSpace(payload.Email))
	user, err := ac.UserSvc.GetByEmail(email)
	if err == nil {
		token, tErr := utils.GenerateSecureToken(24)
		if tErr == nil {
			expiry := time.Now().Add(1 * time.Hour)
			ac.UserSvc.DB.Model(&user).Updates(map[string]any{
				"reset_token":         token,
				"reset_token_expires": expiry,
			})

			link := utils.BuildFrontendLink("/reset-password?token=" + token)
			if mailErr := utils.SendSMTPEmail(utils.EmailEnvelope{
				To:        user.Email,
				Subject:   "Reset your password",
				PlainBody: fmt.Sprintf("Hi %s,\n\nReset your password using this link (valid 1 hour):\n%s\n", user.FirstName, link),
				HTMLBody:  fmt.Sprintf("<p>Hi %s,</p><p><a href=%q>Reset your password</a> (valid 1 hour).</p>", user.FirstName, link),
			}); mailErr != nil {
				log.Printf("failed to send reset email to %s: %v", utils.MaskEmail(user.Email), mailErr)
			}
		}
	}

	utils.JSONMessage(c, http.StatusOK, "If this email exists, a reset link was sent.")
}

// Me handles GET /api/auth/me.
func (ac *AuthController) Me(c *gin.Context) {
	userID := c.GetUint(middleware.CtxUserID)
	user, err := ac.UserSvc.GetByID(userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			utils.JSONError(c, http.StatusNotFound, "account no longer exists")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to load profile")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, user)
}

// UpdateMe handles PATCH /api/auth/me: own-profile updates only.
func (ac *AuthController) UpdateMe(c *gin.Context) {
	userID := c.GetUint(middleware.CtxUserID)

	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid update payload")
		return
	}

	user, err := ac.UserSvc.UpdateProfile(userID, updates)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			utils.JSONError(c, http.StatusNotFound, "account no longer exists")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to update profile")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, user)
}
