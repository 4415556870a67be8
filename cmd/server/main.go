package main

import (
	"context"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/swqa7697/MeetFood/engagement"
	"github.com/swqa7697/MeetFood/feed"
	"github.com/swqa7697/MeetFood/file_store"
	"github.com/swqa7697/MeetFood/identity"
	"github.com/swqa7697/MeetFood/server/handlers"
	"github.com/swqa7697/MeetFood/server/middlewares"
	"github.com/swqa7697/MeetFood/store"
	"github.com/swqa7697/MeetFood/userdir"
	"github.com/swqa7697/MeetFood/utils"
	"github.com/swqa7697/MeetFood/utils/dotenv"
	. "github.com/swqa7697/MeetFood/utils/flag"
	Logger "github.com/swqa7697/MeetFood/utils/log"
	gintrace "gopkg.in/DataDog/dd-trace-go.v1/contrib/gin-gonic/gin"
)

func cleanup() {
	utils.CloseProfiler()
	utils.CloseTracer()
	Logger.Log.Info("api server shutdown")
}

func main() {
	defer cleanup()

	ParseFlags()
	Logger.InitLogger()

	if err := dotenv.LoadDotEnvs(); err != nil {
		panic(err)
	}
	if !*IsDevelopment {
		utils.StartTracer()
		utils.StartProfiler()
	}

	ctx := context.Background()

	st, err := store.NewMongoStore(ctx, os.Getenv("MONGODB_URI"), os.Getenv("DB_NAME"))
	if err != nil {
		Logger.Log.WithError(err).Fatal("database connection failed")
	}
	defer st.Disconnect(ctx)
	Logger.Log.Info("database connection is ready")

	provider, err := identity.NewCognitoProvider(ctx, os.Getenv("COGNITO_USER_POOL_ID"))
	if err != nil {
		Logger.Log.WithError(err).Fatal("cognito client setup failed")
	}

	profilePhotos, err := file_store.NewS3BlobStore(
		os.Getenv("S3_PROFILE_PHOTO_BUCKET"), os.Getenv("S3_PROFILE_PHOTO_URL_PREFIX"))
	if err != nil {
		Logger.Log.WithError(err).Fatal("profile photo store setup failed")
	}
	coverImages, err := file_store.NewS3BlobStore(
		os.Getenv("S3_COVER_IMAGE_BUCKET"), os.Getenv("S3_COVER_IMAGE_URL_PREFIX"))
	if err != nil {
		Logger.Log.WithError(err).Fatal("cover image store setup failed")
	}
	videos, err := file_store.NewS3BlobStore(
		os.Getenv("S3_VIDEO_BUCKET"), os.Getenv("S3_VIDEO_URL_PREFIX"))
	if err != nil {
		Logger.Log.WithError(err).Fatal("video store setup failed")
	}

	userSvc := userdir.NewService(st, profilePhotos)
	engSvc := engagement.NewService(st, profilePhotos, coverImages, videos, provider)
	feedSvc := feed.NewService(st)

	// Default with the Logger and Recovery middleware already attached
	router := gin.Default()
	router.Use(cors.Default())
	router.Use(gintrace.Middleware(*ServiceName))

	auth := middlewares.Auth(provider, st)
	authOpt := middlewares.AuthOptional(provider)
	if *ByPassAuth {
		noop := func(c *gin.Context) { c.Next() }
		auth, authOpt = noop, noop
	}

	handlers.RegisterRoutes(router, handlers.NewHandler(userSvc, engSvc, feedSvc), auth, authOpt)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	Logger.Log.Info("api server starts up")
	router.Run(":" + port)
}
