package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/nrj111/foodgram-backend/config"
	"github.com/nrj111/foodgram-backend/controllers"
	"github.com/nrj111/foodgram-backend/middlewares"
	"github.com/nrj111/foodgram-backend/services"
	"github.com/nrj111/foodgram-backend/storage"
)

// Deps carries everything the route table needs. Construction happens
// in main (or a test); this package only wires.
type Deps struct {
	Cfg        *config.Config
	Store      storage.Store
	Log        *logrus.Logger
	Auth       *services.AuthService
	Foods      *services.FoodService
	Engagement *services.EngagementService
	Comments   *services.CommentService
	Hub        *services.RealtimeHub
}

func SetupRouter(d Deps) *gin.Engine {
	r := gin.Default()
	r.Use(corsMiddleware(d.Cfg))

	authCtl := controllers.NewAuthController(d.Auth, d.Log)
	foodCtl := controllers.NewFoodController(d.Foods, d.Engagement, d.Log)
	commentCtl := controllers.NewCommentController(d.Comments, d.Log)
	partnerCtl := controllers.NewFoodPartnerController(d.Foods, d.Log)
	realtimeCtl := controllers.NewRealtimeController(d.Hub)

	authUser := middlewares.AuthUser(d.Store, d.Cfg.JWTSecret)
	authPartner := middlewares.AuthFoodPartner(d.Store, d.Cfg.JWTSecret)
	optionalAuth := middlewares.AttachOptionalAuth(d.Store, d.Cfg.JWTSecret)
	requireAny := middlewares.RequireAnyAuth()

	auth := r.Group("/api/auth")
	{
		auth.POST("/user/register", authCtl.RegisterUser)
		auth.POST("/user/login", authCtl.LoginUser)
		auth.GET("/user/logout", authCtl.LogoutUser)
		auth.GET("/user/me", optionalAuth, authCtl.UserSession)

		auth.POST("/food-partner/register", authCtl.RegisterFoodPartner)
		auth.POST("/food-partner/login", authCtl.LoginFoodPartner)
		auth.GET("/food-partner/logout", authCtl.LogoutFoodPartner)
		auth.GET("/food-partner/me", optionalAuth, authCtl.PartnerSession)
	}

	food := r.Group("/api/food")
	{
		food.POST("", authPartner, foodCtl.CreateFood)
		food.GET("", authUser, foodCtl.GetFoodItems)

		food.POST("/like", authUser, foodCtl.LikeFood)
		food.POST("/save", authUser, foodCtl.SaveFood)
		food.GET("/save", authUser, foodCtl.GetSavedFoods)

		food.GET("/comments/:foodId", optionalAuth, commentCtl.GetComments)
		food.POST("/comment", optionalAuth, requireAny, commentCtl.AddComment)
		food.POST("/comment/like", optionalAuth, requireAny, commentCtl.LikeComment)

		food.GET("/:id", optionalAuth, foodCtl.GetFoodItem)
		food.DELETE("/:id", authPartner, foodCtl.DeleteFood)
	}

	r.GET("/api/food-partner/:id", optionalAuth, partnerCtl.GetFoodPartnerByID)
	r.GET("/api/realtime/food/:foodId", realtimeCtl.FoodUpdatesWS)

	return r
}

func corsMiddleware(cfg *config.Config) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}
	if len(cfg.CORSOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.CORSOrigins
	} else {
		// no configured origins: echo whatever origin called, which is
		// what credentials-mode CORS needs in development
		corsCfg.AllowOriginFunc = func(origin string) bool { return true }
	}
	return cors.New(corsCfg)
}
