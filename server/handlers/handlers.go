// Package handlers maps the HTTP surface onto the userdir, engagement and
// feed services, and maps domain errors back to HTTP statuses.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/swqa7697/MeetFood/engagement"
	"github.com/swqa7697/MeetFood/feed"
	"github.com/swqa7697/MeetFood/userdir"
)

// Handler carries the service dependencies of every route.
type Handler struct {
	users      *userdir.Service
	engagement *engagement.Service
	feed       *feed.Service
}

func NewHandler(users *userdir.Service, eng *engagement.Service, feedSvc *feed.Service) *Handler {
	return &Handler{users: users, engagement: eng, feed: feedSvc}
}

// RegisterRoutes wires all API routes onto the router. auth must verify the
// caller; authOpt lets anonymous requests through.
func RegisterRoutes(router *gin.Engine, h *Handler, auth, authOpt gin.HandlerFunc) {
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Successfully access MeetFood API."})
	})

	v1 := router.Group("/api/v1")

	user := v1.Group("/user")
	user.POST("/create", auth, h.CreateUser)
	user.GET("/profile/me", auth, h.GetUserProfile)
	user.POST("/profile/me", auth, h.UpdateProfile)
	user.POST("/profile/photo", auth, h.UpdateProfilePhoto)
	user.DELETE("/delete", auth, h.DeleteUser)
	user.POST("/videos/videoCollection/:videoPostId", auth, h.CollectVideo)
	user.DELETE("/videos/videoCollection/:videoPostId", auth, h.DeleteFromCollections)

	video := v1.Group("/video")
	video.GET("/videos", authOpt, h.FetchVideoPosts)
	video.GET("/:videoPostId", auth, h.GetVideoPost)
	video.POST("/comment/:videoPostId", auth, h.PostComment)
	video.DELETE("/comment/:videoPostId/:commentId", auth, h.DeleteComment)
	video.PUT("/like/:videoPostId", auth, h.LikeVideoPost)
	video.PUT("/unlike/:videoPostId", auth, h.UnlikeVideoPost)
	video.POST("/coverImage", auth, h.UploadCoverImage)
	video.POST("/upload", auth, h.UploadVideo)
	video.POST("/new", auth, h.CreateVideoPost)
	video.DELETE("/customer/:videoPostId", auth, h.DeleteVideoPost)
}
