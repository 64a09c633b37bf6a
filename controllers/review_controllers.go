package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	middlewares "restaurants/middleware"
	"restaurants/models"
	"restaurants/services"
)

type ReviewController struct {
	Reviews *services.ReviewService
}

func NewReviewController(reviews *services.ReviewService) ReviewController {
	return ReviewController{Reviews: reviews}
}

// GetMyReviews godoc
// @Summary Reviews written by the caller, newest first
// @Tags reviews
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "code, mess, data: []models.Review"
// @Router /me/reviews [get]
func (r ReviewController) GetMyReviews(c *gin.Context) {
	userID, _, _ := middlewares.CurrentUser(c)

	reviews, err := r.Reviews.FindByUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": 1, "mess": "Reviews fetched", "data": reviews})
}

// UpdateMyReview godoc
// @Summary Edit one of the caller's reviews
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Review ID"
// @Param review body models.ReviewPatch true "Fields to change"
// @Success 200 {object} map[string]interface{} "code, mess, data: models.Review"
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /me/reviews/{id} [put]
func (r ReviewController) UpdateMyReview(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var patch models.ReviewPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, err)
		return
	}

	userID, _, _ := middlewares.CurrentUser(c)
	review, err := r.Reviews.Update(c.Request.Context(), userID, id, patch)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": 1, "mess": "Review updated", "data": review})
}

// DeleteMyReview godoc
// @Summary Delete one of the caller's reviews
// @Tags reviews
// @Produce json
// @Security BearerAuth
// @Param id path int true "Review ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /me/reviews/{id} [delete]
func (r ReviewController) DeleteMyReview(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	userID, _, _ := middlewares.CurrentUser(c)
	if err := r.Reviews.Delete(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": 1, "mess": "Review deleted"})
}
