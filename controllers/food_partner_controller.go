package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/nrj111/foodgram-backend/middlewares"
	"github.com/nrj111/foodgram-backend/services"
)

type FoodPartnerController struct {
	foods *services.FoodService
	log   *logrus.Logger
}

func NewFoodPartnerController(foods *services.FoodService, log *logrus.Logger) *FoodPartnerController {
	return &FoodPartnerController{foods: foods, log: log}
}

// GetFoodPartnerByID serves a partner's public profile page with their
// food items, newest first.
func (fp *FoodPartnerController) GetFoodPartnerByID(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Food partner id required"})
		return
	}

	profile, err := fp.foods.PartnerProfile(c.Request.Context(), id, middlewares.CurrentActor(c))
	if err != nil {
		respondError(c, fp.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Food partner retrieved successfully", "foodPartner": profile})
}
