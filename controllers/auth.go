package controllers

import (
	"net/http"

	"printshop-backend/models"
	"printshop-backend/utils"

	"github.com/gin-gonic/gin"
)

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthController issues session tokens. There is no user store: any email
// and non-empty password log in as the shop admin.
type AuthController struct {
	tokens *utils.TokenManager
}

func NewAuthController(tokens *utils.TokenManager) *AuthController {
	return &AuthController{tokens: tokens}
}

func (ac *AuthController) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	user := models.User{
		ID:    "usr_001",
		Email: input.Email,
		Name:  "Admin User",
		Role:  "admin",
	}

	token, err := ac.tokens.GenerateToken(user)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	c.SetCookie(
		"token",
		token,
		int(ac.tokens.Expiry().Seconds()),
		"/",
		"",
		true,
		true,
	)

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  user,
	})
}

func (ac *AuthController) Me(c *gin.Context) {
	userID, exists := c.Get(utils.ContextUserID)
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": models.User{
			ID:    userID.(string),
			Email: c.GetString(utils.ContextEmail),
			Name:  c.GetString(utils.ContextName),
			Role:  c.GetString(utils.ContextRole),
		},
	})
}
