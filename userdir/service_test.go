package userdir

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swqa7697/MeetFood/file_store"
	"github.com/swqa7697/MeetFood/model"
	"github.com/swqa7697/MeetFood/store"
)

func newTestService() (*Service, *store.MemoryStore, *file_store.FakeBlobStore) {
	st := store.NewMemoryStore()
	photos := &file_store.FakeBlobStore{URLPrefix: "https://cdn.test/photos"}
	return NewService(st, photos), st, photos
}

func TestCreateUserDefaults(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, "sub-1", "foodie@example.com")
	require.NoError(t, err)
	assert.Equal(t, "sub-1", user.UserID)
	assert.Equal(t, "foodie@example.com", user.Email)
	assert.Equal(t, "foodie", user.UserName)
	assert.Empty(t, user.Videos)
	assert.Empty(t, user.Collections)
	assert.Empty(t, user.LikedVideos)
	assert.False(t, user.ID.IsZero())
}

func TestCreateUserAlreadyRegistered(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, "sub-1", "foodie@example.com")
	require.NoError(t, err)

	_, err = svc.CreateUser(ctx, "sub-1", "foodie@example.com")
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestCreateUserNameCollisionFallback(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, "sub-1", "foodie@example.com")
	require.NoError(t, err)

	// same email local part from a different provider account
	user, err := svc.CreateUser(ctx, "sub-2", "foodie@other.com")
	require.NoError(t, err)
	assert.Equal(t, "foodiesub-2", user.UserName)
}

func TestUpdateProfile(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, "sub-1", "foodie@example.com")
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(ctx, user.ID, "ramenlover", "Jane", "Doe")
	require.NoError(t, err)
	assert.Equal(t, "ramenlover", updated.UserName)
	assert.Equal(t, "Jane", updated.FirstName)
	assert.Equal(t, "Doe", updated.LastName)
}

func TestUpdateProfileUserNameConflict(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, "sub-1", "taken@example.com")
	require.NoError(t, err)
	user, err := svc.CreateUser(ctx, "sub-2", "other@example.com")
	require.NoError(t, err)

	_, err = svc.UpdateProfile(ctx, user.ID, "taken", "", "")
	assert.ErrorIs(t, err, store.ErrDuplicateUserName)
}

func TestGetProfileFiltersDanglingRefs(t *testing.T) {
	svc, st, _ := newTestService()
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, "sub-1", "foodie@example.com")
	require.NoError(t, err)

	post := &model.VideoPost{PostTitle: "ramen", Likes: []model.Like{}, Comments: []model.Comment{}}
	require.NoError(t, st.CreateVideoPost(ctx, post))
	gone := &model.VideoPost{PostTitle: "deleted later", Likes: []model.Like{}, Comments: []model.Comment{}}
	require.NoError(t, st.CreateVideoPost(ctx, gone))

	user.Collections = []model.VideoRef{{VideoPost: post.ID}, {VideoPost: gone.ID}}
	user.LikedVideos = []model.VideoRef{{VideoPost: gone.ID}}
	require.NoError(t, st.UpdateUser(ctx, user))
	require.NoError(t, st.DeleteVideoPost(ctx, gone.ID))

	profile, err := svc.GetProfile(ctx, user.ID)
	require.NoError(t, err)

	// the dangling id is still stored but filtered from the resolved view
	require.Len(t, profile.Collections, 1)
	assert.Equal(t, post.ID, profile.Collections[0].ID)
	assert.Empty(t, profile.LikedVideos)
	assert.Len(t, profile.User.Collections, 2)
}

func TestUpdateProfilePhotoReplacesOldBlob(t *testing.T) {
	svc, st, photos := newTestService()
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, "sub-1", "foodie@example.com")
	require.NoError(t, err)

	first, err := svc.UpdateProfilePhoto(ctx, user.ID, nil, "one.jpg")
	require.NoError(t, err)
	assert.NotEmpty(t, first.ProfilePhoto)
	assert.Empty(t, photos.Deleted)

	second, err := svc.UpdateProfilePhoto(ctx, user.ID, nil, "two.jpg")
	require.NoError(t, err)
	assert.NotEqual(t, first.ProfilePhoto, second.ProfilePhoto)
	assert.Equal(t, []string{first.ProfilePhoto}, photos.Deleted)

	got, err := st.UserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, second.ProfilePhoto, got.ProfilePhoto)
}

func TestUpdateProfilePhotoDeleteFailure(t *testing.T) {
	svc, st, photos := newTestService()
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, "sub-1", "foodie@example.com")
	require.NoError(t, err)

	first, err := svc.UpdateProfilePhoto(ctx, user.ID, nil, "one.jpg")
	require.NoError(t, err)

	photos.FailDelete = errors.New("s3 unavailable")
	_, err = svc.UpdateProfilePhoto(ctx, user.ID, nil, "two.jpg")
	assert.ErrorIs(t, err, file_store.ErrBlobStore)

	// the record keeps pointing at the old photo
	got, err := st.UserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ProfilePhoto, got.ProfilePhoto)
}
