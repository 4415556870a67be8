package engagement

import (
	"context"
	"io"
	"time"

	"github.com/swqa7697/MeetFood/file_store"
	"github.com/swqa7697/MeetFood/model"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NewPostInput carries the validated fields of a post creation request.
type NewPostInput struct {
	PostTitle         string
	CoverImageURL     string
	VideoURL          string
	RestaurantName    string
	RestaurantAddress model.Address
	OrderedVia        string
}

// CreateVideoPost inserts the post and appends it to the author's videos
// array as one transaction. Creation is the write path that must be atomic:
// a post must never exist without its author-side reference.
func (s *Service) CreateVideoPost(ctx context.Context, callerID primitive.ObjectID, in NewPostInput) (*model.VideoPost, error) {
	var post *model.VideoPost
	err := s.store.WithTransaction(ctx, func(ctx context.Context) error {
		user, err := s.store.UserByID(ctx, callerID)
		if err != nil {
			return err
		}

		post = &model.VideoPost{
			PostTitle:         in.PostTitle,
			UserID:            user.ID,
			VideoURL:          in.VideoURL,
			CoverImageURL:     in.CoverImageURL,
			RestaurantName:    in.RestaurantName,
			RestaurantAddress: in.RestaurantAddress,
			OrderedVia:        in.OrderedVia,
			PostTime:          time.Now(),
			Likes:             []model.Like{},
			Comments:          []model.Comment{},
		}
		if err := s.store.CreateVideoPost(ctx, post); err != nil {
			return err
		}

		user.Videos = append(user.Videos, model.VideoRef{VideoPost: post.ID})
		return s.store.UpdateUser(ctx, user)
	})
	if err != nil {
		return nil, err
	}
	return post, nil
}

// DeleteVideoPost deletes an authored post: the record, the author-side
// reference, then the cover and video blobs. Entries referencing this post
// in other users' collections/likedVideos are left behind on purpose; reads
// treat them as weak references and filter them out.
func (s *Service) DeleteVideoPost(ctx context.Context, callerID, postID primitive.ObjectID) error {
	post, err := s.store.VideoPostByID(ctx, postID)
	if err != nil {
		return err
	}
	user, err := s.store.UserByID(ctx, callerID)
	if err != nil {
		return err
	}
	if post.UserID != user.ID {
		return ErrNotPostOwner
	}

	err = s.store.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.store.DeleteVideoPost(ctx, postID); err != nil {
			return err
		}
		user.Videos = model.RemoveRef(user.Videos, postID)
		return s.store.UpdateUser(ctx, user)
	})
	if err != nil {
		return err
	}

	if err := s.coverImages.Delete(ctx, post.CoverImageURL); err != nil {
		return blobFailure(err, "delete cover image blob")
	}
	if err := s.videos.Delete(ctx, post.VideoURL); err != nil {
		return blobFailure(err, "delete video blob")
	}
	return nil
}

// UploadCoverImage streams a cover image to the blob store and returns its
// public URL. The post itself is created later via CreateVideoPost.
func (s *Service) UploadCoverImage(ctx context.Context, callerID primitive.ObjectID, body io.Reader, fileName string) (string, error) {
	return s.uploadFor(ctx, callerID, s.coverImages, body, fileName, "upload cover image blob")
}

// UploadVideo streams a video file to the blob store and returns its public
// URL.
func (s *Service) UploadVideo(ctx context.Context, callerID primitive.ObjectID, body io.Reader, fileName string) (string, error) {
	return s.uploadFor(ctx, callerID, s.videos, body, fileName, "upload video blob")
}

func (s *Service) uploadFor(ctx context.Context, callerID primitive.ObjectID, bs file_store.BlobStore, body io.Reader, fileName, failMsg string) (string, error) {
	if _, err := s.store.UserByID(ctx, callerID); err != nil {
		return "", err
	}
	url, err := bs.Upload(ctx, body, fileName)
	if err != nil {
		return "", blobFailure(err, failMsg)
	}
	return url, nil
}
