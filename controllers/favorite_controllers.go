package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	middlewares "restaurants/middleware"
	"restaurants/services"
)

type FavoriteController struct {
	Favorites *services.FavoriteService
}

func NewFavoriteController(favorites *services.FavoriteService) FavoriteController {
	return FavoriteController{Favorites: favorites}
}

// GetMyFavorites godoc
// @Summary The caller's favorite restaurants, newest first
// @Tags favorites
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "code, mess, data: []services.FavoriteRestaurant"
// @Router /me/favorites [get]
func (f FavoriteController) GetMyFavorites(c *gin.Context) {
	userID, _, _ := middlewares.CurrentUser(c)

	favorites, err := f.Favorites.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": 1, "mess": "Favorites fetched", "data": favorites})
}

// AddFavorite godoc
// @Summary Add a restaurant to favorites
// @Tags favorites
// @Produce json
// @Security BearerAuth
// @Param restaurantId path int true "Restaurant ID"
// @Success 201 {object} map[string]interface{} "code, mess, data: models.Favorite"
// @Failure 404 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /me/favorites/{restaurantId} [post]
func (f FavoriteController) AddFavorite(c *gin.Context) {
	restaurantID, ok := paramID(c, "restaurantId")
	if !ok {
		return
	}

	userID, _, _ := middlewares.CurrentUser(c)
	favorite, err := f.Favorites.Add(c.Request.Context(), userID, restaurantID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"code": 1, "mess": "Added to favorites", "data": favorite})
}

// RemoveFavorite godoc
// @Summary Remove a restaurant from favorites
// @Tags favorites
// @Produce json
// @Security BearerAuth
// @Param restaurantId path int true "Restaurant ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /me/favorites/{restaurantId} [delete]
func (f FavoriteController) RemoveFavorite(c *gin.Context) {
	restaurantID, ok := paramID(c, "restaurantId")
	if !ok {
		return
	}

	userID, _, _ := middlewares.CurrentUser(c)
	if err := f.Favorites.Remove(c.Request.Context(), userID, restaurantID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": 1, "mess": "Removed from favorites"})
}
