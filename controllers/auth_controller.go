package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"glimpse-api/config"
	"glimpse-api/models"
	"glimpse-api/services"
	"glimpse-api/utils"
)

type AuthController struct {
	db           *gorm.DB
	cfg          *config.Config
	emailService *services.EmailService
}

func NewAuthController(db *gorm.DB, cfg *config.Config, emailService *services.EmailService) *AuthController {
	return &AuthController{
		db:           db,
		cfg:          cfg,
		emailService: emailService,
	}
}

type RegisterRequest struct {
	Username    string  `json:"username" binding:"required,max=150"`
	Password    string  `json:"password" binding:"required,min=6"`
	PhoneNumber string  `json:"phone_number" binding:"required"`
	Email       string  `json:"email" binding:"omitempty,email"`
	Bio         *string `json:"bio" binding:"omitempty,max=100"`
	Avatar      *string `json:"avatar"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type TokenPairResponse struct {
	Access  string              `json:"access"`
	Refresh string              `json:"refresh"`
	User    models.UserResponse `json:"user"`
}

type RefreshRequest struct {
	Refresh string `json:"refresh" binding:"required"`
}

func (ac *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	if !utils.IsValidPhoneNumber(req.PhoneNumber) {
		utils.SendValidationError(c, "Invalid phone number")
		return
	}

	if !utils.IsValidPassword(req.Password) {
		utils.SendValidationError(c, "Password is too weak")
		return
	}

	var existing models.User
	if err := ac.db.Where("username = ?", req.Username).First(&existing).Error; err == nil {
		utils.SendValidationError(c, "Username already taken")
		return
	}
	if err := ac.db.Where("phone_number = ?", req.PhoneNumber).First(&existing).Error; err == nil {
		utils.SendValidationError(c, "Phone number already registered")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	user := models.User{
		ID:          uuid.New().String(),
		Username:    req.Username,
		PhoneNumber: req.PhoneNumber,
		Password:    string(hashedPassword),
		Email:       req.Email,
		Bio:         req.Bio,
		Avatar:      req.Avatar,
	}

	if err := ac.db.Create(&user).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to create user")
		return
	}

	if user.Email != "" {
		go func() {
			if err := ac.emailService.SendWelcomeEmail(user.Email, user.Username); err != nil {
				logrus.WithError(err).Warn("failed to send welcome email")
			}
		}()
	}

	c.JSON(http.StatusCreated, user.ToResponse())
}

func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	var user models.User
	if err := ac.db.Where("username = ?", req.Username).First(&user).Error; err != nil {
		utils.SendUnauthorized(c, "Invalid credentials")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		utils.SendUnauthorized(c, "Invalid credentials")
		return
	}

	access, err := ac.generateToken(&user, "access", ac.cfg.AccessTokenTTL)
	if err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	refresh, err := ac.generateToken(&user, "refresh", ac.cfg.RefreshTokenTTL)
	if err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	c.JSON(http.StatusOK, TokenPairResponse{
		Access:  access,
		Refresh: refresh,
		User:    user.ToResponse(),
	})
}

// RefreshToken exchanges a valid, unrevoked refresh token for a fresh
// access token.
func (ac *AuthController) RefreshToken(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	claims := ac.parseRefreshToken(req.Refresh)
	if claims == nil {
		utils.SendUnauthorized(c, "Invalid refresh token")
		return
	}

	jti, _ := claims["jti"].(string)
	var revoked models.RevokedToken
	if err := ac.db.Where("jti = ?", jti).First(&revoked).Error; err == nil {
		utils.SendUnauthorized(c, "Refresh token has been revoked")
		return
	}

	userID, _ := claims["user_id"].(string)
	var user models.User
	if err := ac.db.First(&user, "id = ?", userID).Error; err != nil {
		utils.SendUnauthorized(c, "Invalid refresh token")
		return
	}

	access, err := ac.generateToken(&user, "access", ac.cfg.AccessTokenTTL)
	if err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	c.JSON(http.StatusOK, gin.H{"access": access})
}

// Logout revokes the presented refresh token. Access tokens stay valid
// until expiry and are not tracked.
func (ac *AuthController) Logout(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	claims := ac.parseRefreshToken(req.Refresh)
	if claims == nil {
		utils.SendUnauthorized(c, "Invalid refresh token")
		return
	}

	jti, _ := claims["jti"].(string)
	expiresAt := time.Now().Add(ac.cfg.RefreshTokenTTL)
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		expiresAt = exp.Time
	}

	revoked := models.RevokedToken{
		JTI:       jti,
		ExpiresAt: expiresAt,
	}
	if err := ac.db.Create(&revoked).Error; err != nil {
		// Already blacklisted counts as logged out
		logrus.WithError(err).Debug("refresh token already revoked")
	}

	c.JSON(http.StatusOK, gin.H{"message": "Successfully logged out"})
}

func (ac *AuthController) generateToken(user *models.User, typ string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"is_admin": user.IsAdmin,
		"typ":      typ,
		"jti":      uuid.New().String(),
		"exp":      time.Now().Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(ac.cfg.JWTSecret))
}

func (ac *AuthController) parseRefreshToken(tokenString string) jwt.MapClaims {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(ac.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil
	}

	if typ, _ := claims["typ"].(string); typ != "refresh" {
		return nil
	}

	return claims
}
