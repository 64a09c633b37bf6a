package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"restaurants/services"
)

type AdminController struct {
	Admin *services.AdminService
}

func NewAdminController(admin *services.AdminService) AdminController {
	return AdminController{Admin: admin}
}

// GetStats godoc
// @Summary Platform totals
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "code, mess, data: services.Stats"
// @Failure 403 {object} map[string]interface{}
// @Router /admin/stats [get]
func (a AdminController) GetStats(c *gin.Context) {
	stats, err := a.Admin.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": 1, "mess": "Stats fetched", "data": stats})
}

// GetTopRestaurants godoc
// @Summary Top three rated and most reviewed restaurants
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "code, mess, data: services.TopRestaurants"
// @Failure 403 {object} map[string]interface{}
// @Router /admin/restaurants/top [get]
func (a AdminController) GetTopRestaurants(c *gin.Context) {
	top, err := a.Admin.TopRestaurants(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": 1, "mess": "Top restaurants fetched", "data": top})
}
