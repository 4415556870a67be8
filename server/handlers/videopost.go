package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/swqa7697/MeetFood/engagement"
	"github.com/swqa7697/MeetFood/model"
	"github.com/swqa7697/MeetFood/store"
)

// FetchVideoPosts returns one popularity-ranked page of the feed.
// GET /api/v1/video/videos?sortBy&sortOrder&page&size
func (h *Handler) FetchVideoPosts(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	size, _ := strconv.Atoi(c.Query("size"))
	sortOrder, _ := strconv.Atoi(c.Query("sortOrder"))

	opts := store.PageOptions{
		Page:      page,
		Size:      size,
		SortBy:    c.Query("sortBy"),
		SortOrder: sortOrder,
	}

	views, err := h.feed.FetchVideoPosts(c.Request.Context(), opts)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

// GetVideoPost returns one post with enriched comments.
// GET /api/v1/video/:videoPostId
func (h *Handler) GetVideoPost(c *gin.Context) {
	postID, ok := objectIDParam(c, "videoPostId")
	if !ok {
		return
	}

	view, err := h.feed.GetVideoPost(c.Request.Context(), postID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// PostComment adds a comment to a post.
// POST /api/v1/video/comment/:videoPostId
func (h *Handler) PostComment(c *gin.Context) {
	var body struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "text is required"})
		return
	}

	uid, ok := callerID(c)
	if !ok {
		return
	}
	postID, ok := objectIDParam(c, "videoPostId")
	if !ok {
		return
	}

	post, err := h.engagement.PostComment(c.Request.Context(), uid, postID, body.Text)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Comment added successfully",
		"post":    post,
	})
}

// DeleteComment removes a comment; author only.
// DELETE /api/v1/video/comment/:videoPostId/:commentId
func (h *Handler) DeleteComment(c *gin.Context) {
	uid, ok := callerID(c)
	if !ok {
		return
	}
	postID, ok := objectIDParam(c, "videoPostId")
	if !ok {
		return
	}
	commentID, ok := objectIDParam(c, "commentId")
	if !ok {
		return
	}

	if err := h.engagement.DeleteComment(c.Request.Context(), uid, postID, commentID); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// LikeVideoPost records a like; one per user per post.
// PUT /api/v1/video/like/:videoPostId
func (h *Handler) LikeVideoPost(c *gin.Context) {
	uid, ok := callerID(c)
	if !ok {
		return
	}
	postID, ok := objectIDParam(c, "videoPostId")
	if !ok {
		return
	}

	if err := h.engagement.LikeVideoPost(c.Request.Context(), uid, postID); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// UnlikeVideoPost removes the caller's like.
// PUT /api/v1/video/unlike/:videoPostId
func (h *Handler) UnlikeVideoPost(c *gin.Context) {
	uid, ok := callerID(c)
	if !ok {
		return
	}
	postID, ok := objectIDParam(c, "videoPostId")
	if !ok {
		return
	}

	if err := h.engagement.UnlikeVideoPost(c.Request.Context(), uid, postID); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// UploadCoverImage stores a cover image blob and returns its public URL.
// POST /api/v1/video/coverImage
func (h *Handler) UploadCoverImage(c *gin.Context) {
	uid, ok := callerID(c)
	if !ok {
		return
	}

	file, header, err := c.Request.FormFile("cover-image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "cover-image file is required"})
		return
	}
	defer file.Close()

	url, err := h.engagement.UploadCoverImage(c.Request.Context(), uid, file, header.Filename)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Image is uploaded successfully",
		"imageUrl": url,
	})
}

// UploadVideo stores a video blob and returns its public URL.
// POST /api/v1/video/upload
func (h *Handler) UploadVideo(c *gin.Context) {
	uid, ok := callerID(c)
	if !ok {
		return
	}

	file, header, err := c.Request.FormFile("video-content")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "video-content file is required"})
		return
	}
	defer file.Close()

	url, err := h.engagement.UploadVideo(c.Request.Context(), uid, file, header.Filename)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Video is uploaded successfully",
		"videoUrl": url,
	})
}

// CreateVideoPost creates the post record from previously uploaded blob URLs.
// POST /api/v1/video/new
func (h *Handler) CreateVideoPost(c *gin.Context) {
	var body struct {
		PostTitle         string        `json:"postTitle" binding:"required"`
		ImageURL          string        `json:"imageUrl" binding:"required"`
		VideoURL          string        `json:"videoUrl" binding:"required"`
		RestaurantName    string        `json:"restaurantName" binding:"required"`
		RestaurantAddress model.Address `json:"restaurantAddress"`
		OrderedVia        string        `json:"orderedVia"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		return
	}

	uid, ok := callerID(c)
	if !ok {
		return
	}

	post, err := h.engagement.CreateVideoPost(c.Request.Context(), uid, engagement.NewPostInput{
		PostTitle:         body.PostTitle,
		CoverImageURL:     body.ImageURL,
		VideoURL:          body.VideoURL,
		RestaurantName:    body.RestaurantName,
		RestaurantAddress: body.RestaurantAddress,
		OrderedVia:        body.OrderedVia,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Video post is created successfully",
		"videoPost": post,
	})
}

// DeleteVideoPost deletes an authored post and its blobs.
// DELETE /api/v1/video/customer/:videoPostId
func (h *Handler) DeleteVideoPost(c *gin.Context) {
	uid, ok := callerID(c)
	if !ok {
		return
	}
	postID, ok := objectIDParam(c, "videoPostId")
	if !ok {
		return
	}

	if err := h.engagement.DeleteVideoPost(c.Request.Context(), uid, postID); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"msg": "The video post is deleted successfully and its corresponding user record updated as well.",
	})
}
