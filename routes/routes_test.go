package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nrj111/foodgram-backend/config"
	"github.com/nrj111/foodgram-backend/services"
	"github.com/nrj111/foodgram-backend/storage"
)

const testSecret = "test-secret"

func newTestRouter(t *testing.T) (*gin.Engine, *storage.MemoryStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logrus.New()
	log.SetOutput(io.Discard)

	store := storage.NewMemoryStore()
	hub := services.NewRealtimeHub()
	deps := Deps{
		Cfg:        &config.Config{Env: "test", Port: "0", JWTSecret: testSecret},
		Store:      store,
		Log:        log,
		Auth:       services.NewAuthService(store, testSecret, log),
		Foods:      services.NewFoodService(store, nil, nil, log),
		Engagement: services.NewEngagementService(store, hub, log),
		Comments:   services.NewCommentService(store, hub, log),
		Hub:        hub,
	}
	return SetupRouter(deps), store
}

func postJSON(t *testing.T, r *gin.Engine, path string, body any, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	res := httptest.NewRecorder()
	r.ServeHTTP(res, req)
	return res
}

func get(r *gin.Engine, path string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	res := httptest.NewRecorder()
	r.ServeHTTP(res, req)
	return res
}

func sessionCookie(t *testing.T, res *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, ck := range res.Result().Cookies() {
		if ck.Name == name && ck.Value != "" {
			return ck
		}
	}
	t.Fatalf("cookie %s not set", name)
	return nil
}

func decode(t *testing.T, res *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &out))
	return out
}

func registerUser(t *testing.T, r *gin.Engine, email string) *http.Cookie {
	t.Helper()
	res := postJSON(t, r, "/api/auth/user/register", gin.H{
		"fullName": "Alice", "email": email, "password": "pw123456",
	}, nil)
	require.Equal(t, http.StatusCreated, res.Code, res.Body.String())
	return sessionCookie(t, res, "userToken")
}

func registerPartner(t *testing.T, r *gin.Engine, email string) *http.Cookie {
	t.Helper()
	res := postJSON(t, r, "/api/auth/food-partner/register", gin.H{
		"name": "Tasty", "contactName": "Bob", "phone": "555",
		"address": "Main St", "email": email, "password": "pw123456",
	}, nil)
	require.Equal(t, http.StatusCreated, res.Code, res.Body.String())
	return sessionCookie(t, res, "partnerToken")
}

func createFood(t *testing.T, r *gin.Engine, partnerCookie *http.Cookie, name string, price string) uint {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("name", name))
	require.NoError(t, w.WriteField("description", "Rich and spicy"))
	require.NoError(t, w.WriteField("price", price))
	require.NoError(t, w.WriteField("mediaUrl", "https://cdn.example.com/"+name+".mp4"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/food", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.AddCookie(partnerCookie)
	res := httptest.NewRecorder()
	r.ServeHTTP(res, req)
	require.Equal(t, http.StatusCreated, res.Code, res.Body.String())

	// the create response uses the same wire shape as the read paths
	body := decode(t, res)
	food := body["food"].(map[string]any)
	require.Equal(t, name, food["name"])
	require.Contains(t, food, "mediaUrl")
	require.Contains(t, food, "foodPartner")
	return uint(food["id"].(float64))
}

func TestUserAuthLifecycle(t *testing.T) {
	r, _ := newTestRouter(t)

	res := postJSON(t, r, "/api/auth/user/register", gin.H{
		"fullName": "Alice", "email": "alice@example.com", "password": "pw123456",
	}, nil)
	require.Equal(t, http.StatusCreated, res.Code)
	cookie := sessionCookie(t, res, "userToken")
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, "/", cookie.Path)
	assert.Equal(t, http.SameSiteNoneMode, cookie.SameSite)

	// duplicate registration is rejected
	res = postJSON(t, r, "/api/auth/user/register", gin.H{
		"fullName": "Alice", "email": "alice@example.com", "password": "other",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, res.Code)

	// session probe with the cookie
	res = get(r, "/api/auth/user/me", []*http.Cookie{cookie})
	require.Equal(t, http.StatusOK, res.Code)
	body := decode(t, res)
	assert.Equal(t, true, body["authenticated"])

	// login round trip
	res = postJSON(t, r, "/api/auth/user/login", gin.H{
		"email": "alice@example.com", "password": "pw123456",
	}, nil)
	require.Equal(t, http.StatusOK, res.Code)
	cookie = sessionCookie(t, res, "userToken")

	// wrong password and unknown email both come back 400
	res = postJSON(t, r, "/api/auth/user/login", gin.H{"email": "alice@example.com", "password": "nope"}, nil)
	assert.Equal(t, http.StatusBadRequest, res.Code)
	res = postJSON(t, r, "/api/auth/user/login", gin.H{"email": "ghost@example.com", "password": "pw123456"}, nil)
	assert.Equal(t, http.StatusBadRequest, res.Code)

	// logout expires the cookie; probing without it is unauthorized
	res = get(r, "/api/auth/user/logout", []*http.Cookie{cookie})
	require.Equal(t, http.StatusOK, res.Code)
	found := false
	for _, ck := range res.Result().Cookies() {
		if ck.Name == "userToken" && ck.MaxAge < 0 {
			found = true
		}
	}
	assert.True(t, found, "logout should expire the cookie")

	res = get(r, "/api/auth/user/me", nil)
	assert.Equal(t, http.StatusUnauthorized, res.Code)
}

func TestPartnerCreatesFoodAndUserEngages(t *testing.T) {
	r, _ := newTestRouter(t)
	partnerCookie := registerPartner(t, r, "tasty@example.com")
	userCookie := registerUser(t, r, "alice@example.com")

	foodID := createFood(t, r, partnerCookie, "ramen", "9.99")

	// only partners create food
	req := httptest.NewRequest(http.MethodPost, "/api/food", strings.NewReader(""))
	req.AddCookie(userCookie)
	res := httptest.NewRecorder()
	r.ServeHTTP(res, req)
	assert.Equal(t, http.StatusUnauthorized, res.Code)

	// the feed requires a user session
	res = get(r, "/api/food", nil)
	assert.Equal(t, http.StatusUnauthorized, res.Code)
	res = get(r, "/api/food", []*http.Cookie{userCookie})
	require.Equal(t, http.StatusOK, res.Code)
	body := decode(t, res)
	items := body["foodItems"].([]any)
	require.Len(t, items, 1)

	// like toggles on (201) and off (200)
	res = postJSON(t, r, "/api/food/like", gin.H{"foodId": foodID}, []*http.Cookie{userCookie})
	require.Equal(t, http.StatusCreated, res.Code, res.Body.String())
	body = decode(t, res)
	assert.Equal(t, true, body["liked"])
	assert.Equal(t, float64(1), body["likeCount"])

	res = postJSON(t, r, "/api/food/like", gin.H{"foodId": foodID}, []*http.Cookie{userCookie})
	require.Equal(t, http.StatusOK, res.Code)
	body = decode(t, res)
	assert.Equal(t, false, body["liked"])
	assert.Equal(t, float64(0), body["likeCount"])

	// save, then fetch saved foods
	res = postJSON(t, r, "/api/food/save", gin.H{"foodId": foodID}, []*http.Cookie{userCookie})
	require.Equal(t, http.StatusCreated, res.Code)
	res = get(r, "/api/food/save", []*http.Cookie{userCookie})
	require.Equal(t, http.StatusOK, res.Code)
	body = decode(t, res)
	saved := body["savedFoods"].([]any)
	require.Len(t, saved, 1)

	// engaging an unknown food is a 404
	res = postJSON(t, r, "/api/food/like", gin.H{"foodId": 9999}, []*http.Cookie{userCookie})
	assert.Equal(t, http.StatusNotFound, res.Code)
}

func TestCommentFlow(t *testing.T) {
	r, _ := newTestRouter(t)
	partnerCookie := registerPartner(t, r, "tasty@example.com")
	userCookie := registerUser(t, r, "alice@example.com")
	foodID := createFood(t, r, partnerCookie, "taco", "3.50")

	// anonymous commenting is rejected, reading is not
	res := postJSON(t, r, "/api/food/comment", gin.H{"foodId": foodID, "text": "yum"}, nil)
	assert.Equal(t, http.StatusUnauthorized, res.Code)
	res = get(r, fmt.Sprintf("/api/food/comments/%d", foodID), nil)
	assert.Equal(t, http.StatusOK, res.Code)

	res = postJSON(t, r, "/api/food/comment", gin.H{"foodId": foodID, "text": "yum"}, []*http.Cookie{userCookie})
	require.Equal(t, http.StatusCreated, res.Code, res.Body.String())
	body := decode(t, res)
	comment := body["comment"].(map[string]any)
	commentID := uint(comment["id"].(float64))
	assert.Equal(t, "yum", comment["text"])

	// partners can comment too
	res = postJSON(t, r, "/api/food/comment", gin.H{"foodId": foodID, "text": "thanks!"}, []*http.Cookie{partnerCookie})
	require.Equal(t, http.StatusCreated, res.Code)

	// newest first
	res = get(r, fmt.Sprintf("/api/food/comments/%d", foodID), []*http.Cookie{userCookie})
	require.Equal(t, http.StatusOK, res.Code)
	body = decode(t, res)
	comments := body["comments"].([]any)
	require.Len(t, comments, 2)
	first := comments[0].(map[string]any)
	assert.Equal(t, "thanks!", first["text"])

	// comment like toggles
	res = postJSON(t, r, "/api/food/comment/like", gin.H{"commentId": commentID}, []*http.Cookie{userCookie})
	require.Equal(t, http.StatusCreated, res.Code)
	body = decode(t, res)
	assert.Equal(t, true, body["liked"])
	assert.Equal(t, float64(1), body["likeCount"])

	res = postJSON(t, r, "/api/food/comment/like", gin.H{"commentId": commentID}, []*http.Cookie{userCookie})
	require.Equal(t, http.StatusOK, res.Code)
	body = decode(t, res)
	assert.Equal(t, false, body["liked"])
}

func TestFoodDetailAndPartnerProfile(t *testing.T) {
	r, _ := newTestRouter(t)
	partnerCookie := registerPartner(t, r, "tasty@example.com")
	foodID := createFood(t, r, partnerCookie, "ramen", "9.99")
	createFood(t, r, partnerCookie, "udon", "8.00")

	// food detail is readable anonymously
	res := get(r, fmt.Sprintf("/api/food/%d", foodID), nil)
	require.Equal(t, http.StatusOK, res.Code)
	body := decode(t, res)
	food := body["food"].(map[string]any)
	assert.Equal(t, "ramen", food["name"])
	partnerRef := food["foodPartner"].(map[string]any)
	assert.Equal(t, "Tasty", partnerRef["name"])

	res = get(r, "/api/food/9999", nil)
	assert.Equal(t, http.StatusNotFound, res.Code)

	// partner profile lists its foods
	partnerID := uint(partnerRef["id"].(float64))
	res = get(r, fmt.Sprintf("/api/food-partner/%d", partnerID), nil)
	require.Equal(t, http.StatusOK, res.Code)
	body = decode(t, res)
	profile := body["foodPartner"].(map[string]any)
	items := profile["foodItems"].([]any)
	assert.Len(t, items, 2)
}

func TestDeleteFoodOwnership(t *testing.T) {
	r, _ := newTestRouter(t)
	owner := registerPartner(t, r, "owner@example.com")
	other := registerPartner(t, r, "other@example.com")
	foodID := createFood(t, r, owner, "ramen", "9.99")

	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/food/%d", foodID), nil)
	req.AddCookie(other)
	res := httptest.NewRecorder()
	r.ServeHTTP(res, req)
	assert.Equal(t, http.StatusNotFound, res.Code)

	req = httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/food/%d", foodID), nil)
	req.AddCookie(owner)
	res = httptest.NewRecorder()
	r.ServeHTTP(res, req)
	require.Equal(t, http.StatusOK, res.Code)

	res = get(r, fmt.Sprintf("/api/food/%d", foodID), nil)
	assert.Equal(t, http.StatusNotFound, res.Code)
}

func TestLoginSwitchesSessionKind(t *testing.T) {
	r, _ := newTestRouter(t)
	registerPartner(t, r, "tasty@example.com")

	res := postJSON(t, r, "/api/auth/food-partner/login", gin.H{
		"email": "tasty@example.com", "password": "pw123456",
	}, nil)
	require.Equal(t, http.StatusOK, res.Code)

	// partner login clears any lingering user cookie
	cleared := false
	for _, ck := range res.Result().Cookies() {
		if ck.Name == "userToken" && ck.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared)
}
