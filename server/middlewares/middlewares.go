// Package middlewares holds the gin middlewares shared by the API routes,
// most importantly token verification against the identity provider.
package middlewares

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/swqa7697/MeetFood/identity"
	"github.com/swqa7697/MeetFood/store"
	Logger "github.com/swqa7697/MeetFood/utils/log"
)

const (
	// TokenHeader is the request header carrying the Cognito access token.
	TokenHeader = "cognito-token"

	// KeyUserSub holds the verified subject id in the gin context.
	KeyUserSub = "userSub"
	// KeyUserID holds the caller's database id in the gin context. Absent
	// when the subject has no user record yet (first request before
	// /user/create).
	KeyUserID = "userID"
)

// Auth verifies the token header, resolves the subject to a user record and
// aborts with 401 when the token is missing or invalid.
func Auth(verifier identity.Verifier, users store.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(TokenHeader)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "Access Token not found"})
			return
		}

		sub, err := verifier.Verify(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "Invalid Access Token"})
			return
		}
		c.Set(KeyUserSub, sub)

		user, err := users.UserBySubject(c.Request.Context(), sub)
		switch {
		case err == nil:
			c.Set(KeyUserID, user.ID)
		case errors.Is(err, store.ErrNoUser):
			// verified subject without a record yet; /user/create handles this
		default:
			Logger.Log.WithError(err).Error("resolve subject to user record")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
			return
		}

		c.Next()
	}
}

// AuthOptional verifies the token when one is present but lets anonymous
// requests through. Used on public read routes like the video feed.
func AuthOptional(verifier identity.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(TokenHeader)
		if token == "" {
			c.Next()
			return
		}

		sub, err := verifier.Verify(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "Invalid Access Token"})
			return
		}
		c.Set(KeyUserSub, sub)
		c.Next()
	}
}
