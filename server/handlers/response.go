package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/swqa7697/MeetFood/engagement"
	"github.com/swqa7697/MeetFood/server/middlewares"
	"github.com/swqa7697/MeetFood/store"
	"github.com/swqa7697/MeetFood/userdir"
	Logger "github.com/swqa7697/MeetFood/utils/log"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// statusOf maps a domain error to the HTTP status the client sees. Anything
// unrecognized (including blob store failures) is a server error.
func statusOf(err error) int {
	switch {
	case errors.Is(err, store.ErrNoPost),
		errors.Is(err, engagement.ErrCommentNotFound):
		return http.StatusNotFound
	case errors.Is(err, store.ErrNoUser),
		errors.Is(err, store.ErrDuplicateUserName),
		errors.Is(err, userdir.ErrUserExists),
		errors.Is(err, engagement.ErrAlreadyLiked),
		errors.Is(err, engagement.ErrNotLiked),
		errors.Is(err, engagement.ErrAlreadyCollected),
		errors.Is(err, engagement.ErrNotCollected):
		return http.StatusBadRequest
	case errors.Is(err, engagement.ErrNotCommentAuthor),
		errors.Is(err, engagement.ErrNotPostOwner):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// abortWithError ends the request with the mapped status. Server errors are
// logged; client errors carry their message through.
func abortWithError(c *gin.Context, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		Logger.Log.WithError(err).Error("request failed")
		c.AbortWithStatusJSON(status, gin.H{"msg": "Server Error", "err": err.Error()})
		return
	}
	c.AbortWithStatusJSON(status, gin.H{"msg": err.Error()})
}

// callerID fetches the caller's database id set by the auth middleware.
// Responds 400 when the verified subject has no user record yet.
func callerID(c *gin.Context) (primitive.ObjectID, bool) {
	v, ok := c.Get(middlewares.KeyUserID)
	if !ok {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"msg": "Cannot find the user."})
		return primitive.NilObjectID, false
	}
	return v.(primitive.ObjectID), true
}

// objectIDParam parses a path parameter as an ObjectID, responding 400 on
// malformed input.
func objectIDParam(c *gin.Context, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"msg": "Invalid " + name + " parameter."})
		return primitive.NilObjectID, false
	}
	return id, true
}
