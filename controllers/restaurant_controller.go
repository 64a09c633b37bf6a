package controllers

import (
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	middlewares "restaurants/middleware"
	"restaurants/models"
	"restaurants/services"
)

type RestaurantController struct {
	Restaurants *services.RestaurantService
	Reviews     *services.ReviewService
}

func NewRestaurantController(restaurants *services.RestaurantService, reviews *services.ReviewService) RestaurantController {
	return RestaurantController{Restaurants: restaurants, Reviews: reviews}
}

type CreateRestaurantRequest struct {
	Name         string   `json:"name" binding:"required"`
	Neighborhood *string  `json:"neighborhood"`
	Photograph   *string  `json:"photograph"`
	Address      *string  `json:"address"`
	Lat          *float64 `json:"lat" binding:"omitempty,gte=-90,lte=90"`
	Lng          *float64 `json:"lng" binding:"omitempty,gte=-180,lte=180"`
	Image        *string  `json:"image"`
	CuisineType  *string  `json:"cuisine_type"`
}

// GetAllRestaurants godoc
// @Summary List restaurants
// @Description Paginated list with average rating, filterable by cuisine, neighborhood and minimum rating.
// @Tags restaurants
// @Produce json
// @Param page query int false "Page number" minimum(1)
// @Param limit query int false "Items per page" minimum(1) maximum(100)
// @Param cuisine query string false "Exact cuisine type"
// @Param neighborhood query string false "Exact neighborhood"
// @Param rating query number false "Minimum average rating" minimum(0) maximum(5)
// @Param sort query string false "Sort field" Enums(cuisine_type, neighborhood, rating, name)
// @Param order query string false "Sort order" Enums(asc, desc)
// @Success 200 {object} map[string]interface{} "code, mess, data: []models.RestaurantWithRating, pagination"
// @Failure 400 {object} map[string]interface{}
// @Router /restaurants [get]
func (r RestaurantController) GetAllRestaurants(c *gin.Context) {
	var query services.RestaurantQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		badRequest(c, err)
		return
	}

	page, err := r.Restaurants.FindAll(c.Request.Context(), query.Normalize())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code": 1,
		"mess": "Restaurants fetched",
		"data": page.Data,
		"pagination": gin.H{
			"page":       page.Page,
			"limit":      page.Limit,
			"total":      page.Total,
			"totalPages": page.TotalPages,
		},
	})
}

// GetRestaurantDetail godoc
// @Summary Restaurant detail with average rating
// @Tags restaurants
// @Produce json
// @Param id path int true "Restaurant ID"
// @Success 200 {object} map[string]interface{} "code, mess, data: models.RestaurantWithRating"
// @Failure 404 {object} map[string]interface{}
// @Router /restaurants/{id} [get]
func (r RestaurantController) GetRestaurantDetail(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	restaurant, err := r.Restaurants.FindOne(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": 1, "mess": "Restaurant fetched", "data": restaurant})
}

// CreateRestaurant godoc
// @Summary Create a restaurant
// @Tags restaurants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param restaurant body CreateRestaurantRequest true "Restaurant"
// @Success 201 {object} map[string]interface{} "code, mess, data: models.RestaurantWithRating"
// @Failure 400 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Router /restaurants [post]
func (r RestaurantController) CreateRestaurant(c *gin.Context) {
	var req CreateRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	restaurant := models.Restaurant{
		Name:         req.Name,
		Neighborhood: req.Neighborhood,
		Photograph:   req.Photograph,
		Address:      req.Address,
		Lat:          req.Lat,
		Lng:          req.Lng,
		Image:        req.Image,
		CuisineType:  req.CuisineType,
	}

	created, err := r.Restaurants.Create(c.Request.Context(), &restaurant)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"code": 1, "mess": "Restaurant created", "data": created})
}

// UpdateRestaurant godoc
// @Summary Partially update a restaurant
// @Tags restaurants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Restaurant ID"
// @Param restaurant body models.RestaurantPatch true "Fields to change"
// @Success 200 {object} map[string]interface{} "code, mess, data: models.RestaurantWithRating"
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /restaurants/{id} [patch]
func (r RestaurantController) UpdateRestaurant(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var patch models.RestaurantPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, err)
		return
	}

	updated, err := r.Restaurants.Update(c.Request.Context(), id, patch)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": 1, "mess": "Restaurant updated", "data": updated})
}

// DeleteRestaurant godoc
// @Summary Delete a restaurant with its reviews and favorites
// @Tags restaurants
// @Security BearerAuth
// @Param id path int true "Restaurant ID"
// @Success 204
// @Failure 404 {object} map[string]interface{}
// @Router /restaurants/{id} [delete]
func (r RestaurantController) DeleteRestaurant(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := r.Restaurants.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// UploadRestaurantImage godoc
// @Summary Upload the restaurant image
// @Tags restaurants
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Restaurant ID"
// @Param file formData file true "Image file"
// @Success 200 {object} map[string]interface{} "code, mess, data: models.RestaurantWithRating"
// @Failure 400 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /restaurants/{id}/image [post]
func (r RestaurantController) UploadRestaurantImage(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 0, "mess": "No file uploaded", "error": err.Error()})
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 0, "mess": "Cannot open file", "error": err.Error()})
		return
	}
	defer src.Close()

	updated, err := r.Restaurants.UploadImage(c.Request.Context(), id, src, filepath.Base(fileHeader.Filename))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": 1, "mess": "Image uploaded", "data": updated})
}

// GetRestaurantReviews godoc
// @Summary Reviews of a restaurant, newest first
// @Tags reviews
// @Produce json
// @Param id path int true "Restaurant ID"
// @Success 200 {object} map[string]interface{} "code, mess, data: []models.Review"
// @Failure 404 {object} map[string]interface{}
// @Router /restaurants/{id}/reviews [get]
func (r RestaurantController) GetRestaurantReviews(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	reviews, err := r.Reviews.FindByRestaurant(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": 1, "mess": "Reviews fetched", "data": reviews})
}

// CreateReview godoc
// @Summary Review a restaurant
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Restaurant ID"
// @Param review body models.ReviewInput true "Review"
// @Success 201 {object} map[string]interface{} "code, mess, data: models.Review"
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /restaurants/{id}/reviews [post]
func (r RestaurantController) CreateReview(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var input models.ReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	userID, _, _ := middlewares.CurrentUser(c)
	review, err := r.Reviews.Create(c.Request.Context(), userID, id, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"code": 1, "mess": "Review created", "data": review})
}
