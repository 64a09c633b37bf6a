package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	middlewares "restaurants/middleware"
	"restaurants/services"
)

type UserController struct {
	Auth *services.AuthService
}

func NewUserController(auth *services.AuthService) UserController {
	return UserController{Auth: auth}
}

// GetMe godoc
// @Summary Current user profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "code, mess, data: models.User"
// @Failure 401 {object} map[string]interface{}
// @Router /users/me [get]
func (u UserController) GetMe(c *gin.Context) {
	userID, _, _ := middlewares.CurrentUser(c)

	user, err := u.Auth.Profile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": 1, "mess": "Profile fetched", "data": user})
}
