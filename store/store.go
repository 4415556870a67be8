// Package store is the canonical place for document database access. It
// should not contain any business logic; counter and membership rules live in
// the engagement package.
package store

import (
	"context"
	"errors"

	"github.com/swqa7697/MeetFood/model"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// ErrNoUser is returned when the referenced user record does not exist.
	ErrNoUser = errors.New("user record not found")
	// ErrNoPost is returned when the referenced video post does not exist.
	ErrNoPost = errors.New("video post not found")
	// ErrDuplicateUserName is returned when a write violates the unique
	// userName index.
	ErrDuplicateUserName = errors.New("user name already taken")
)

// RankedVideoPost is a video post together with its derived popularity score,
// as produced by the feed aggregation.
type RankedVideoPost struct {
	model.VideoPost `bson:",inline"`
	Popularity      float64 `bson:"popularity" json:"popularity"`
}

// UserStore is the authoritative mapping from subject id to user record.
type UserStore interface {
	// CreateUser inserts u and fills in its database id. Returns
	// ErrDuplicateUserName when the userName is already taken.
	CreateUser(ctx context.Context, u *model.User) error
	UserByID(ctx context.Context, id primitive.ObjectID) (*model.User, error)
	UserBySubject(ctx context.Context, sub string) (*model.User, error)
	// UsersByIDs loads the given users in one round trip. Missing ids are
	// silently absent from the result map.
	UsersByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*model.User, error)
	// UpdateUser replaces the whole user document. Returns
	// ErrDuplicateUserName on a userName conflict.
	UpdateUser(ctx context.Context, u *model.User) error
	DeleteUser(ctx context.Context, id primitive.ObjectID) error
}

// VideoPostStore is the authoritative store of video post records.
type VideoPostStore interface {
	// CreateVideoPost inserts p and fills in its database id.
	CreateVideoPost(ctx context.Context, p *model.VideoPost) error
	VideoPostByID(ctx context.Context, id primitive.ObjectID) (*model.VideoPost, error)
	// VideoPostsByIDs loads posts preserving the order of ids; missing ids
	// are skipped.
	VideoPostsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]model.VideoPost, error)
	VideoPostsByAuthor(ctx context.Context, authorID primitive.ObjectID) ([]model.VideoPost, error)
	// FetchVideoPage computes the derived popularity score over the full
	// collection, sorts and returns one page.
	FetchVideoPage(ctx context.Context, opts PageOptions) ([]RankedVideoPost, error)
	// UpdateVideoPost replaces the whole post document.
	UpdateVideoPost(ctx context.Context, p *model.VideoPost) error
	DeleteVideoPost(ctx context.Context, id primitive.ObjectID) error
	DeleteVideoPostsByAuthor(ctx context.Context, authorID primitive.ObjectID) error
}

// Store bundles both collections plus the transaction boundary used by the
// write paths that must commit user and post mutations together.
type Store interface {
	UserStore
	VideoPostStore
	// WithTransaction runs fn inside a single multi-document transaction.
	// All store calls made with the ctx passed to fn join the transaction.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
