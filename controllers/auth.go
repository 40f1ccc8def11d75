package controllers

import (
	"net/http"
	"strings"
	"time"

	"barbershop-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthController issues dashboard tokens for the single configured operator.
type AuthController struct {
	username string
	password string
	secret   string
	ttl      time.Duration
	log      *logrus.Entry
}

func NewAuthController(username, password, secret string, ttl time.Duration, logger *logrus.Logger) *AuthController {
	return &AuthController{
		username: username,
		password: password,
		secret:   secret,
		ttl:      ttl,
		log:      logger.WithField("component", "auth"),
	}
}

func (ac *AuthController) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithFieldErrors(c, http.StatusBadRequest, utils.FieldErrors(err))
		return
	}

	username := strings.TrimSpace(input.Username)
	userOK := utils.SecureEqual(username, ac.username)
	passOK := utils.CheckPassword(input.Password, ac.password)
	if !userOK || !passOK {
		ac.log.WithField("client_ip", c.ClientIP()).Warn("failed dashboard login")
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := utils.GenerateToken(username, ac.secret, ac.ttl)
	if err != nil {
		ac.log.WithError(err).Error("failed to generate token")
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Login successful",
		"token":     token,
		"expiresIn": int(ac.ttl.Seconds()),
	})
}
