package middlewares

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swqa7697/MeetFood/identity"
	"github.com/swqa7697/MeetFood/model"
	"github.com/swqa7697/MeetFood/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type captured struct {
	sub    string
	hasSub bool
	userID primitive.ObjectID
	hasID  bool
}

func newAuthRouter(verifier identity.Verifier, users store.UserStore, got *captured) *gin.Engine {
	router := gin.New()
	router.GET("/protected", Auth(verifier, users), func(c *gin.Context) {
		if v, ok := c.Get(KeyUserSub); ok {
			got.sub, got.hasSub = v.(string), true
		}
		if v, ok := c.Get(KeyUserID); ok {
			got.userID, got.hasID = v.(primitive.ObjectID), true
		}
		c.Status(http.StatusOK)
	})
	return router
}

func doGet(router *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set(TokenHeader, token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMissingToken(t *testing.T) {
	var got captured
	router := newAuthRouter(&identity.FakeProvider{}, store.NewMemoryStore(), &got)

	w := doGet(router, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, got.hasSub)
}

func TestAuthInvalidToken(t *testing.T) {
	var got captured
	router := newAuthRouter(&identity.FakeProvider{}, store.NewMemoryStore(), &got)

	w := doGet(router, "bogus")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, got.hasSub)
}

func TestAuthResolvesUserRecord(t *testing.T) {
	st := store.NewMemoryStore()
	user := &model.User{UserID: "sub-1", Email: "a@b.c", UserName: "a"}
	require.NoError(t, st.CreateUser(context.Background(), user))

	verifier := &identity.FakeProvider{Subjects: map[string]string{"tok": "sub-1"}}
	var got captured
	router := newAuthRouter(verifier, st, &got)

	w := doGet(router, "tok")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, got.hasSub)
	assert.Equal(t, "sub-1", got.sub)
	require.True(t, got.hasID)
	assert.Equal(t, user.ID, got.userID)
}

func TestAuthToleratesUnregisteredSubject(t *testing.T) {
	verifier := &identity.FakeProvider{Subjects: map[string]string{"tok": "sub-new"}}
	var got captured
	router := newAuthRouter(verifier, store.NewMemoryStore(), &got)

	// verified token without a user record still passes; the create-user
	// handler relies on this
	w := doGet(router, "tok")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, got.hasSub)
	assert.False(t, got.hasID)
}

func TestAuthOptional(t *testing.T) {
	verifier := &identity.FakeProvider{Subjects: map[string]string{"tok": "sub-1"}}
	router := gin.New()
	router.GET("/feed", AuthOptional(verifier), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	// anonymous request passes
	req := httptest.NewRequest(http.MethodGet, "/feed", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// a present but invalid token is still rejected
	req = httptest.NewRequest(http.MethodGet, "/feed", nil)
	req.Header.Set(TokenHeader, "bogus")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
