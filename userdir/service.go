// Package userdir owns the user record lifecycle: creation on first
// authenticated request, profile reads and updates, and the profile photo.
package userdir

import (
	"context"
	goerrors "errors"
	"io"

	"github.com/pkg/errors"
	"github.com/swqa7697/MeetFood/file_store"
	"github.com/swqa7697/MeetFood/model"
	"github.com/swqa7697/MeetFood/store"
	"github.com/swqa7697/MeetFood/utils"
	Logger "github.com/swqa7697/MeetFood/utils/log"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrUserExists is returned when the subject already has a user record.
var ErrUserExists = goerrors.New("user already registered")

// Service is the user directory.
type Service struct {
	store         store.Store
	profilePhotos file_store.BlobStore
}

func NewService(st store.Store, profilePhotos file_store.BlobStore) *Service {
	return &Service{store: st, profilePhotos: profilePhotos}
}

// CreateUser registers a user record for a verified subject. The default
// user name is the local part of the email; when the unique index rejects it
// the subject id is appended to disambiguate.
func (s *Service) CreateUser(ctx context.Context, sub, email string) (*model.User, error) {
	_, err := s.store.UserBySubject(ctx, sub)
	if err == nil {
		return nil, ErrUserExists
	}
	if !goerrors.Is(err, store.ErrNoUser) {
		return nil, err
	}

	user := &model.User{
		UserID:      sub,
		Email:       email,
		UserName:    utils.EmailLocalPart(email),
		Videos:      []model.VideoRef{},
		Collections: []model.VideoRef{},
		LikedVideos: []model.VideoRef{},
	}

	err = s.store.CreateUser(ctx, user)
	if goerrors.Is(err, store.ErrDuplicateUserName) {
		user.UserName = utils.EmailLocalPart(email) + sub
		err = s.store.CreateUser(ctx, user)
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Profile is a user record with its membership arrays resolved to posts.
type Profile struct {
	User        *model.User       `json:"user"`
	Videos      []model.VideoPost `json:"videos"`
	Collections []model.VideoPost `json:"collections"`
	LikedVideos []model.VideoPost `json:"likedVideos"`
}

// GetProfile loads the caller's record and resolves the three membership
// arrays. Ids referencing posts deleted since then are filtered out; the
// arrays are weak references.
func (s *Service) GetProfile(ctx context.Context, callerID primitive.ObjectID) (*Profile, error) {
	user, err := s.store.UserByID(ctx, callerID)
	if err != nil {
		return nil, err
	}

	videos, err := s.resolveRefs(ctx, user.Videos)
	if err != nil {
		return nil, err
	}
	collections, err := s.resolveRefs(ctx, user.Collections)
	if err != nil {
		return nil, err
	}
	liked, err := s.resolveRefs(ctx, user.LikedVideos)
	if err != nil {
		return nil, err
	}

	return &Profile{
		User:        user,
		Videos:      videos,
		Collections: collections,
		LikedVideos: liked,
	}, nil
}

func (s *Service) resolveRefs(ctx context.Context, refs []model.VideoRef) ([]model.VideoPost, error) {
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
	return posts, nil
}

// UpdateProfile changes the mutable profile fields. A userName conflict
// surfaces as store.ErrDuplicateUserName from the unique index.
func (s *Service) UpdateProfile(ctx context.Context, callerID primitive.ObjectID, userName, firstName, lastName string) (*model.User, error) {
	user, err := s.store.UserByID(ctx, callerID)
	if err != nil {
		return nil, err
	}

	user.UserName = userName
	user.FirstName = firstName
	user.LastName = lastName

	if err := s.store.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateProfilePhoto uploads the new photo, removes the previous blob if one
// exists and persists the new URL.
func (s *Service) UpdateProfilePhoto(ctx context.Context, callerID primitive.ObjectID, body io.Reader, fileName string) (*model.User, error) {
	user, err := s.store.UserByID(ctx, callerID)
	if err != nil {
		return nil, err
	}

	url, err := s.profilePhotos.Upload(ctx, body, fileName)
	if err != nil {
		Logger.Log.WithError(err).Error("upload profile photo blob")
		return nil, errors.WithMessage(file_store.ErrBlobStore, "upload profile photo blob")
	}

	if user.ProfilePhoto != "" {
		if err := s.profilePhotos.Delete(ctx, user.ProfilePhoto); err != nil {
			Logger.Log.WithError(err).Error("delete previous profile photo blob")
			return nil, errors.WithMessage(file_store.ErrBlobStore, "delete previous profile photo blob")
		}
	}

	user.ProfilePhoto = url
	if err := s.store.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
