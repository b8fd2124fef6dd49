package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nrj111/foodgram-backend/models"
	"github.com/nrj111/foodgram-backend/storage"
	"github.com/nrj111/foodgram-backend/utils"
)

// Cookie names, one per principal kind. A browser session normally
// carries at most one, but nothing breaks if both are present.
const (
	CookieUserToken    = "userToken"
	CookiePartnerToken = "partnerToken"
)

const (
	ctxUserKey    = "user"
	ctxPartnerKey = "foodPartner"
)

// tokenFromRequest prefers the kind-specific cookie and falls back to a
// Bearer header for non-cookie clients.
func tokenFromRequest(c *gin.Context, cookieName string) string {
	if tok, err := c.Cookie(cookieName); err == nil && tok != "" {
		return tok
	}
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

// resolveUser returns (nil, nil) when there is no valid user session:
// missing or bad token, kind mismatch, or the row no longer existing.
// Any other store error is surfaced, not mistaken for a missing session.
func resolveUser(c *gin.Context, store storage.Store, secret string) (*models.User, error) {
	token := tokenFromRequest(c, CookieUserToken)
	if token == "" {
		return nil, nil
	}
	claims, err := utils.ParseToken(token, secret)
	if err != nil || claims.Kind != models.ActorKindUser {
		return nil, nil
	}
	user, err := store.UserByID(c.Request.Context(), claims.ID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

func resolvePartner(c *gin.Context, store storage.Store, secret string) (*models.FoodPartner, error) {
	token := tokenFromRequest(c, CookiePartnerToken)
	if token == "" {
		return nil, nil
	}
	claims, err := utils.ParseToken(token, secret)
	if err != nil || claims.Kind != models.ActorKindPartner {
		return nil, nil
	}
	partner, err := store.FoodPartnerByID(c.Request.Context(), claims.ID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return partner, nil
}

func abortStoreError(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
}

// AuthUser requires a valid user session: token present, signature and
// expiry good, kind claim matching, and the user row still existing.
func AuthUser(store storage.Store, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := resolveUser(c, store, secret)
		if err != nil {
			abortStoreError(c)
			return
		}
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Please login first"})
			return
		}
		c.Set(ctxUserKey, user)
		c.Next()
	}
}

// AuthFoodPartner is the partner-kind mirror of AuthUser.
func AuthFoodPartner(store storage.Store, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		partner, err := resolvePartner(c, store, secret)
		if err != nil {
			abortStoreError(c)
			return
		}
		if partner == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Please login as a food partner first"})
			return
		}
		c.Set(ctxPartnerKey, partner)
		c.Next()
	}
}

// AttachOptionalAuth tries both resolutions independently and attaches
// whichever succeed. A missing or invalid session never fails the
// request; a failing store still does.
func AttachOptionalAuth(store storage.Store, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := resolveUser(c, store, secret)
		if err != nil {
			abortStoreError(c)
			return
		}
		if user != nil {
			c.Set(ctxUserKey, user)
		}
		partner, err := resolvePartner(c, store, secret)
		if err != nil {
			abortStoreError(c)
			return
		}
		if partner != nil {
			c.Set(ctxPartnerKey, partner)
		}
		c.Next()
	}
}

// RequireAnyAuth gates a route behind a prior AttachOptionalAuth: either
// principal kind passes, none fails.
func RequireAnyAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) == nil && CurrentFoodPartner(c) == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Sign in to interact"})
			return
		}
		c.Next()
	}
}

func CurrentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(ctxUserKey); ok {
		if u, ok := v.(*models.User); ok {
			return u
		}
	}
	return nil
}

func CurrentFoodPartner(c *gin.Context) *models.FoodPartner {
	if v, ok := c.Get(ctxPartnerKey); ok {
		if p, ok := v.(*models.FoodPartner); ok {
			return p
		}
	}
	return nil
}

// CurrentActor collapses whichever principal resolved into an Actor,
// preferring the user when both are attached.
func CurrentActor(c *gin.Context) *models.Actor {
	if u := CurrentUser(c); u != nil {
		return &models.Actor{ID: u.ID, Kind: models.ActorKindUser, Name: u.FullName}
	}
	if p := CurrentFoodPartner(c); p != nil {
		return &models.Actor{ID: p.ID, Kind: models.ActorKindPartner, Name: p.Name}
	}
	return nil
}
