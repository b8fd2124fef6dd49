package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/nrj111/foodgram-backend/middlewares"
	"github.com/nrj111/foodgram-backend/services"
	"github.com/nrj111/foodgram-backend/utils"
)

type AuthController struct {
	auth *services.AuthService
	log  *logrus.Logger
}

func NewAuthController(auth *services.AuthService, log *logrus.Logger) *AuthController {
	return &AuthController{auth: auth, log: log}
}

// setAuthCookie sets the session cookie the way cross-site frontends
// need it: httpOnly, Secure, SameSite=None, 7 days, path /.
func setAuthCookie(c *gin.Context, name, token string) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(name, token, int(utils.TokenTTL.Seconds()), "/", "", true, true)
}

// clearAuthCookie expires both the secure and insecure variants, since
// clients may have stored either.
func clearAuthCookie(c *gin.Context, name string) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(name, "", -1, "/", "", true, true)
	c.SetCookie(name, "", -1, "/", "", false, true)
}

type registerUserRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerPartnerRequest struct {
	Name        string `json:"name"`
	ContactName string `json:"contactName"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	Email       string `json:"email"`
	Password    string `json:"password"`
}

func (a *AuthController) RegisterUser(c *gin.Context) {
	var req registerUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Send JSON with Content-Type: application/json"})
		return
	}

	user, token, err := a.auth.RegisterUser(c.Request.Context(), services.RegisterUserInput{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondError(c, a.log, err)
		return
	}

	setAuthCookie(c, middlewares.CookieUserToken, token)
	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"token":   token,
		"user":    gin.H{"id": user.ID, "fullName": user.FullName, "email": user.Email},
	})
}

func (a *AuthController) LoginUser(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Send JSON with Content-Type: application/json"})
		return
	}

	user, token, err := a.auth.LoginUser(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, a.log, err)
		return
	}

	setAuthCookie(c, middlewares.CookieUserToken, token)
	// A session is one kind at a time: logging in as a user drops any
	// lingering partner session on this client.
	clearAuthCookie(c, middlewares.CookiePartnerToken)
	c.JSON(http.StatusOK, gin.H{
		"message": "User logged in successfully",
		"token":   token,
		"user":    gin.H{"id": user.ID, "fullName": user.FullName, "email": user.Email},
	})
}

// LogoutUser is idempotent: clearing an absent cookie is still success.
func (a *AuthController) LogoutUser(c *gin.Context) {
	clearAuthCookie(c, middlewares.CookieUserToken)
	c.JSON(http.StatusOK, gin.H{"message": "User logged out successfully"})
}

// UserSession is the frontend's session probe, mounted behind
// AttachOptionalAuth.
func (a *AuthController) UserSession(c *gin.Context) {
	user := middlewares.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"authenticated": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"authenticated": true,
		"user":          gin.H{"id": user.ID, "fullName": user.FullName, "email": user.Email},
	})
}

func (a *AuthController) RegisterFoodPartner(c *gin.Context) {
	var req registerPartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Send JSON with Content-Type: application/json"})
		return
	}

	partner, token, err := a.auth.RegisterFoodPartner(c.Request.Context(), services.RegisterPartnerInput{
		Name:        req.Name,
		ContactName: req.ContactName,
		Phone:       req.Phone,
		Address:     req.Address,
		Email:       req.Email,
		Password:    req.Password,
	})
	if err != nil {
		respondError(c, a.log, err)
		return
	}

	setAuthCookie(c, middlewares.CookiePartnerToken, token)
	c.JSON(http.StatusCreated, gin.H{
		"message": "Food partner registered successfully",
		"token":   token,
		"foodPartner": gin.H{
			"id":          partner.ID,
			"name":        partner.Name,
			"contactName": partner.ContactName,
			"phone":       partner.Phone,
			"address":     partner.Address,
			"email":       partner.Email,
		},
	})
}

func (a *AuthController) LoginFoodPartner(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Send JSON with Content-Type: application/json"})
		return
	}

	partner, token, err := a.auth.LoginFoodPartner(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, a.log, err)
		return
	}

	setAuthCookie(c, middlewares.CookiePartnerToken, token)
	clearAuthCookie(c, middlewares.CookieUserToken)
	c.JSON(http.StatusOK, gin.H{
		"message": "Food partner logged in successfully",
		"token":   token,
		"foodPartner": gin.H{
			"id":    partner.ID,
			"name":  partner.Name,
			"email": partner.Email,
		},
	})
}

func (a *AuthController) LogoutFoodPartner(c *gin.Context) {
	clearAuthCookie(c, middlewares.CookiePartnerToken)
	c.JSON(http.StatusOK, gin.H{"message": "Food partner logged out successfully"})
}

func (a *AuthController) PartnerSession(c *gin.Context) {
	partner := middlewares.CurrentFoodPartner(c)
	if partner == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"authenticated": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"authenticated": true,
		"foodPartner": gin.H{
			"id":          partner.ID,
			"name":        partner.Name,
			"contactName": partner.ContactName,
			"phone":       partner.Phone,
			"address":     partner.Address,
			"email":       partner.Email,
		},
	})
}
