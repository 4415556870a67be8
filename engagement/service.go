// Package engagement enforces the cross-entity consistency rules between
// user records and video posts: like/unlike, collect/uncollect, comments,
// and the deletion cascades. Denormalized counters (countLike, countComment,
// countCollections) are maintained here and nowhere else.
package engagement

import (
	"context"

	"github.com/pkg/errors"
	"github.com/swqa7697/MeetFood/file_store"
	"github.com/swqa7697/MeetFood/identity"
	"github.com/swqa7697/MeetFood/model"
	"github.com/swqa7697/MeetFood/store"
	Logger "github.com/swqa7697/MeetFood/utils/log"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Service coordinates writes that span the users and videoposts collections.
type Service struct {
	store         store.Store
	profilePhotos file_store.BlobStore
	coverImages   file_store.BlobStore
	videos        file_store.BlobStore
	accounts      identity.AccountAdmin
}

func NewService(
	st store.Store,
	profilePhotos, coverImages, videos file_store.BlobStore,
	accounts identity.AccountAdmin,
) *Service {
	return &Service{
		store:         st,
		profilePhotos: profilePhotos,
		coverImages:   coverImages,
		videos:        videos,
		accounts:      accounts,
	}
}

// blobFailure logs the underlying blob store error and returns a wrapped
// file_store.ErrBlobStore for the handler layer.
func blobFailure(err error, msg string) error {
	Logger.Log.WithError(err).Error(msg)
	return errors.WithMessage(file_store.ErrBlobStore, msg)
}

// LikeVideoPost records a like on the post and mirrors it into the caller's
// likedVideos array. Both writes commit in one transaction.
func (s *Service) LikeVideoPost(ctx context.Context, callerID, postID primitive.ObjectID) error {
	return s.store.WithTransaction(ctx, func(ctx context.Context) error {
		user, err := s.store.UserByID(ctx, callerID)
		if err != nil {
			return err
		}
		post, err := s.store.VideoPostByID(ctx, postID)
		if err != nil {
			return err
		}

		if post.LikedBy(callerID) {
			return ErrAlreadyLiked
		}

		post.Likes = append([]model.Like{{User: callerID}}, post.Likes...)
		post.CountLike = len(post.Likes)
		user.LikedVideos = append(user.LikedVideos, model.VideoRef{VideoPost: postID})

		if err := s.store.UpdateVideoPost(ctx, post); err != nil {
			return err
		}
		return s.store.UpdateUser(ctx, user)
	})
}

// UnlikeVideoPost removes the caller's like from the post and from the
// caller's likedVideos array.
func (s *Service) UnlikeVideoPost(ctx context.Context, callerID, postID primitive.ObjectID) error {
	return s.store.WithTransaction(ctx, func(ctx context.Context) error {
		user, err := s.store.UserByID(ctx, callerID)
		if err != nil {
			return err
		}
		post, err := s.store.VideoPostByID(ctx, postID)
		if err != nil {
			return err
		}

		if !post.LikedBy(callerID) {
			return ErrNotLiked
		}

		likes := post.Likes[:0]
		for _, l := range post.Likes {
			if l.User != callerID {
				likes = append(likes, l)
			}
		}
		post.Likes = likes
		post.CountLike = len(post.Likes)
		user.LikedVideos = model.RemoveRef(user.LikedVideos, postID)

		if err := s.store.UpdateVideoPost(ctx, post); err != nil {
			return err
		}
		return s.store.UpdateUser(ctx, user)
	})
}

// CollectResult is the merged view returned by the collection toggles.
type CollectResult struct {
	Collections []model.VideoPost `json:"collections"`
	Post        *model.VideoPost  `json:"post"`
}

// CollectVideo saves the post into the caller's collections and bumps the
// post's countCollections.
func (s *Service) CollectVideo(ctx context.Context, callerID, postID primitive.ObjectID) (*CollectResult, error) {
	var (
		post *model.VideoPost
		refs []model.VideoRef
	)
	err := s.store.WithTransaction(ctx, func(ctx context.Context) error {
		user, err := s.store.UserByID(ctx, callerID)
		if err != nil {
			return err
		}
		post, err = s.store.VideoPostByID(ctx, postID)
		if err != nil {
			return err
		}

		if user.HasCollected(postID) {
			return ErrAlreadyCollected
		}

		user.Collections = append(user.Collections, model.VideoRef{VideoPost: postID})
		post.CountCollections++
		refs = user.Collections

		if err := s.store.UpdateUser(ctx, user); err != nil {
			return err
		}
		return s.store.UpdateVideoPost(ctx, post)
	})
	if err != nil {
		return nil, err
	}
	return s.collectResult(ctx, refs, post)
}

// DeleteFromCollections removes the post from the caller's collections and
// decrements countCollections, refusing to take the counter below zero.
func (s *Service) DeleteFromCollections(ctx context.Context, callerID, postID primitive.ObjectID) (*CollectResult, error) {
	var (
		post *model.VideoPost
		refs []model.VideoRef
	)
	err := s.store.WithTransaction(ctx, func(ctx context.Context) error {
		user, err := s.store.UserByID(ctx, callerID)
		if err != nil {
			return err
		}
		post, err = s.store.VideoPostByID(ctx, postID)
		if err != nil {
			return err
		}

		if !user.HasCollected(postID) {
			return ErrNotCollected
		}
		// countCollections never goes below zero
		if post.CountCollections <= 0 {
			return ErrNotCollected
		}

		user.Collections = model.RemoveRef(user.Collections, postID)
		post.CountCollections--
		refs = user.Collections

		if err := s.store.UpdateUser(ctx, user); err != nil {
			return err
		}
		return s.store.UpdateVideoPost(ctx, post)
	})
	if err != nil {
		return nil, err
	}
	return s.collectResult(ctx, refs, post)
}

// collectResult resolves the collection refs into full posts. Dangling ids
// (posts deleted since being collected) are filtered out here; membership
// arrays are weak references.
func (s *Service) collectResult(ctx context.Context, refs []model.VideoRef, post *model.VideoPost) (*CollectResult, error) {
	ids := make([]primitive.ObjectID, 0, len(refs))
	for _, r := range refs {
		ids = append(ids, r.VideoPost)
	}
	posts, err := s.store.VideoPostsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []model.VideoPost{}
	}
	return &CollectResult{Collections: posts, Post: post}, nil
}
