package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/swqa7697/MeetFood/server/middlewares"
)

// CreateUser registers a user record for the verified subject.
// POST /api/v1/user/create
func (h *Handler) CreateUser(c *gin.Context) {
	var body map[string]string
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Bad Request, malformed body."})
		return
	}
	// Parameter guard
	if len(body) > 1 {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Bad Request, too many parameters."})
		return
	}
	email := body["email"]
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "email is required"})
		return
	}

	// The auth middleware resolves existing subjects; a resolved record means
	// this subject already registered.
	if _, registered := c.Get(middlewares.KeyUserID); registered {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "The user already registered, Please sign in."})
		return
	}

	sub := c.GetString(middlewares.KeyUserSub)
	user, err := h.users.CreateUser(c.Request.Context(), sub, email)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User account created successfully.",
		"user":    user,
	})
}

// GetUserProfile returns the caller's profile with all three membership
// arrays resolved.
// GET /api/v1/user/profile/me
func (h *Handler) GetUserProfile(c *gin.Context) {
	uid, ok := callerID(c)
	if !ok {
		return
	}

	profile, err := h.users.GetProfile(c.Request.Context(), uid)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateProfile changes userName/firstName/lastName.
// POST /api/v1/user/profile/me
func (h *Handler) UpdateProfile(c *gin.Context) {
	var body map[string]string
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Bad Request, malformed body."})
		return
	}
	// Parameter guard
	if len(body) > 3 {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Bad Request, too many parameters. Please only 3 params"})
		return
	}

	uid, ok := callerID(c)
	if !ok {
		return
	}

	user, err := h.users.UpdateProfile(c.Request.Context(), uid, body["userName"], body["firstName"], body["lastName"])
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User profile is updated",
		"user":    user,
	})
}

// UpdateProfilePhoto uploads a new profile photo and removes the old blob.
// POST /api/v1/user/profile/photo
func (h *Handler) UpdateProfilePhoto(c *gin.Context) {
	uid, ok := callerID(c)
	if !ok {
		return
	}

	file, header, err := c.Request.FormFile("imageContent")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "imageContent file is required"})
		return
	}
	defer file.Close()

	user, err := h.users.UpdateProfilePhoto(c.Request.Context(), uid, file, header.Filename)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User profile photo is updated",
		"user":    user,
	})
}

// DeleteUser cascades account deletion across blobs, posts, the user record
// and the identity provider.
// DELETE /api/v1/user/delete
func (h *Handler) DeleteUser(c *gin.Context) {
	var body struct {
		Email string `json:"email" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "email is required"})
		return
	}

	uid, ok := callerID(c)
	if !ok {
		return
	}

	if err := h.engagement.DeleteUser(c.Request.Context(), uid, body.Email); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User account deleted successfully."})
}

// CollectVideo saves a post into the caller's collections.
// POST /api/v1/user/videos/videoCollection/:videoPostId
func (h *Handler) CollectVideo(c *gin.Context) {
	uid, ok := callerID(c)
	if !ok {
		return
	}
	postID, ok := objectIDParam(c, "videoPostId")
	if !ok {
		return
	}

	result, err := h.engagement.CollectVideo(c.Request.Context(), uid, postID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "User add video in collection successfully",
		"collections": result.Collections,
		"post":        result.Post,
	})
}

// DeleteFromCollections removes a post from the caller's collections.
// DELETE /api/v1/user/videos/videoCollection/:videoPostId
func (h *Handler) DeleteFromCollections(c *gin.Context) {
	uid, ok := callerID(c)
	if !ok {
		return
	}
	postID, ok := objectIDParam(c, "videoPostId")
	if !ok {
		return
	}

	result, err := h.engagement.DeleteFromCollections(c.Request.Context(), uid, postID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "User removed video from collection successfully",
		"collections": result.Collections,
		"post":        result.Post,
	})
}
