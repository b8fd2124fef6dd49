package controllers

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/nrj111/foodgram-backend/middlewares"
	"github.com/nrj111/foodgram-backend/models"
	"github.com/nrj111/foodgram-backend/services"
)

type FoodController struct {
	foods      *services.FoodService
	engagement *services.EngagementService
	log        *logrus.Logger
}

func NewFoodController(foods *services.FoodService, engagement *services.EngagementService, log *logrus.Logger) *FoodController {
	return &FoodController{foods: foods, engagement: engagement, log: log}
}

// CreateFood accepts a multipart form: name, description, price, and
// either a mediaUrl field or an attached "media" file.
func (f *FoodController) CreateFood(c *gin.Context) {
	partner := middlewares.CurrentFoodPartner(c)

	price, err := strconv.ParseFloat(c.PostForm("price"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Valid price is required"})
		return
	}

	in := services.CreateFoodInput{
		Name:        c.PostForm("name"),
		Description: c.PostForm("description"),
		Price:       price,
		MediaURL:    c.PostForm("mediaUrl"),
	}
	if file, err := c.FormFile("media"); err == nil {
		src, err := file.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Could not read media file"})
			return
		}
		defer src.Close()
		data, err := io.ReadAll(src)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Could not read media file"})
			return
		}
		in.Media = data
		in.MediaType = file.Header.Get("Content-Type")
	}

	food, err := f.foods.Create(c.Request.Context(), partner, in)
	if err != nil {
		respondError(c, f.log, err)
		return
	}
	view := services.NewFoodView(*food, services.FoodPartnerRef{ID: partner.ID, Name: partner.Name})
	c.JSON(http.StatusCreated, gin.H{"message": "Food created successfully", "food": view})
}

func (f *FoodController) GetFoodItems(c *gin.Context) {
	var partnerID uint
	if raw := c.Query("partner"); raw != "" {
		v, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid partner id"})
			return
		}
		partnerID = uint(v)
	}
	randomize := c.Query("random") != ""

	items, err := f.foods.List(c.Request.Context(), partnerID, randomize, middlewares.CurrentActor(c))
	if err != nil {
		respondError(c, f.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Food items fetched successfully", "foodItems": items})
}

func (f *FoodController) GetFoodItem(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Food id required"})
		return
	}
	item, err := f.foods.Get(c.Request.Context(), id, middlewares.CurrentActor(c))
	if err != nil {
		respondError(c, f.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Food item fetched successfully", "food": item})
}

func (f *FoodController) DeleteFood(c *gin.Context) {
	partner := middlewares.CurrentFoodPartner(c)
	id, ok := parseUintParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Food id required"})
		return
	}
	if err := f.foods.Delete(c.Request.Context(), partner, id); err != nil {
		respondError(c, f.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Food deleted successfully", "deleted": true, "id": id})
}

type toggleFoodRequest struct {
	FoodID uint `json:"foodId"`
}

func (f *FoodController) LikeFood(c *gin.Context) {
	user := middlewares.CurrentUser(c)
	var req toggleFoodRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.FoodID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "foodId is required"})
		return
	}

	actor := models.Actor{ID: user.ID, Kind: models.ActorKindUser, Name: user.FullName}
	res, err := f.engagement.Toggle(c.Request.Context(), actor, req.FoodID, models.ActionLike)
	if err != nil {
		respondError(c, f.log, err)
		return
	}
	if res.Active {
		c.JSON(http.StatusCreated, gin.H{"message": "Food liked successfully", "liked": true, "likeCount": res.Count})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Food unliked successfully", "liked": false, "likeCount": res.Count})
}

func (f *FoodController) SaveFood(c *gin.Context) {
	user := middlewares.CurrentUser(c)
	var req toggleFoodRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.FoodID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "foodId is required"})
		return
	}

	actor := models.Actor{ID: user.ID, Kind: models.ActorKindUser, Name: user.FullName}
	res, err := f.engagement.Toggle(c.Request.Context(), actor, req.FoodID, models.ActionSave)
	if err != nil {
		respondError(c, f.log, err)
		return
	}
	if res.Active {
		c.JSON(http.StatusCreated, gin.H{"message": "Food saved successfully", "saved": true, "savesCount": res.Count})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Food unsaved successfully", "saved": false, "savesCount": res.Count})
}

// GetSavedFoods returns an empty list rather than 404 when nothing is
// saved, which is easier on clients.
func (f *FoodController) GetSavedFoods(c *gin.Context) {
	user := middlewares.CurrentUser(c)
	actor := models.Actor{ID: user.ID, Kind: models.ActorKindUser, Name: user.FullName}

	foods, err := f.engagement.SavedFoods(c.Request.Context(), actor)
	if err != nil {
		respondError(c, f.log, err)
		return
	}
	if foods == nil {
		foods = []models.Food{}
	}
	c.JSON(http.StatusOK, gin.H{"message": "Saved foods retrieved successfully", "savedFoods": foods})
}
