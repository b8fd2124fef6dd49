package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/nrj111/foodgram-backend/middlewares"
	"github.com/nrj111/foodgram-backend/services"
)

type CommentController struct {
	comments *services.CommentService
	log      *logrus.Logger
}

func NewCommentController(comments *services.CommentService, log *logrus.Logger) *CommentController {
	return &CommentController{comments: comments, log: log}
}

func (cc *CommentController) GetComments(c *gin.Context) {
	foodID, ok := parseUintParam(c, "foodId")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "foodId required", "comments": []any{}})
		return
	}

	views, err := cc.comments.List(c.Request.Context(), foodID, middlewares.CurrentActor(c))
	if err != nil {
		respondError(c, cc.log, err)
		return
	}
	if views == nil {
		views = []services.CommentView{}
	}
	c.JSON(http.StatusOK, gin.H{"message": "Comments fetched", "comments": views})
}

type addCommentRequest struct {
	FoodID uint   `json:"foodId"`
	Text   string `json:"text"`
}

func (cc *CommentController) AddComment(c *gin.Context) {
	actor := middlewares.CurrentActor(c)
	var req addCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.FoodID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "foodId and text required"})
		return
	}

	view, err := cc.comments.Add(c.Request.Context(), *actor, req.FoodID, req.Text)
	if err != nil {
		respondError(c, cc.log, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Comment added", "comment": view})
}

type likeCommentRequest struct {
	CommentID uint `json:"commentId"`
}

func (cc *CommentController) LikeComment(c *gin.Context) {
	actor := middlewares.CurrentActor(c)
	var req likeCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.CommentID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "commentId required"})
		return
	}

	res, err := cc.comments.ToggleLike(c.Request.Context(), *actor, req.CommentID)
	if err != nil {
		respondError(c, cc.log, err)
		return
	}
	status := http.StatusOK
	message := "Comment unliked"
	if res.Active {
		status = http.StatusCreated
		message = "Comment liked"
	}
	c.JSON(status, gin.H{"message": message, "liked": res.Active, "likeCount": res.Count})
}
