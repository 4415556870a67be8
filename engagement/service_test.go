package engagement

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swqa7697/MeetFood/file_store"
	"github.com/swqa7697/MeetFood/identity"
	"github.com/swqa7697/MeetFood/model"
	"github.com/swqa7697/MeetFood/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type testEnv struct {
	svc           *Service
	store         *store.MemoryStore
	profilePhotos *file_store.FakeBlobStore
	coverImages   *file_store.FakeBlobStore
	videos        *file_store.FakeBlobStore
	accounts      *identity.FakeProvider
}

func newTestEnv() *testEnv {
	env := &testEnv{
		store:         store.NewMemoryStore(),
		profilePhotos: &file_store.FakeBlobStore{URLPrefix: "https://cdn.test/photos"},
		coverImages:   &file_store.FakeBlobStore{URLPrefix: "https://cdn.test/covers"},
		videos:        &file_store.FakeBlobStore{URLPrefix: "https://cdn.test/videos"},
		accounts:      &identity.FakeProvider{},
	}
	env.svc = NewService(env.store, env.profilePhotos, env.coverImages, env.videos, env.accounts)
	return env
}

func seedUser(t *testing.T, st *store.MemoryStore, userName string) *model.User {
	t.Helper()
	u := &model.User{
		UserID:      "sub-" + userName,
		Email:       userName + "@example.com",
		UserName:    userName,
		Videos:      []model.VideoRef{},
		Collections: []model.VideoRef{},
		LikedVideos: []model.VideoRef{},
	}
	require.NoError(t, st.CreateUser(context.Background(), u))
	return u
}

func seedPost(t *testing.T, st *store.MemoryStore, author *model.User, title string) *model.VideoPost {
	t.Helper()
	ctx := context.Background()

	p := &model.VideoPost{
		PostTitle:     title,
		UserID:        author.ID,
		VideoURL:      "https://cdn.test/videos/" + title + ".mp4",
		CoverImageURL: "https://cdn.test/covers/" + title + ".jpg",
		Likes:         []model.Like{},
		Comments:      []model.Comment{},
	}
	require.NoError(t, st.CreateVideoPost(ctx, p))

	author.Videos = append(author.Videos, model.VideoRef{VideoPost: p.ID})
	require.NoError(t, st.UpdateUser(ctx, author))
	return p
}

func TestLikeVideoPost(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	alice := seedUser(t, env.store, "alice")
	post := seedPost(t, env.store, seedUser(t, env.store, "bob"), "ramen")

	require.NoError(t, env.svc.LikeVideoPost(ctx, alice.ID, post.ID))

	got, err := env.store.VideoPostByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.CountLike)
	assert.Len(t, got.Likes, 1)
	assert.Equal(t, alice.ID, got.Likes[0].User)

	gotUser, err := env.store.UserByID(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, gotUser.LikedVideos, 1)
	assert.Equal(t, post.ID, gotUser.LikedVideos[0].VideoPost)
}

func TestLikeVideoPostTwice(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	alice := seedUser(t, env.store, "alice")
	post := seedPost(t, env.store, seedUser(t, env.store, "bob"), "ramen")

	require.NoError(t, env.svc.LikeVideoPost(ctx, alice.ID, post.ID))
	err := env.svc.LikeVideoPost(ctx, alice.ID, post.ID)
	assert.ErrorIs(t, err, ErrAlreadyLiked)

	// the guard must not change any counter
	got, err := env.store.VideoPostByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.CountLike)

	gotUser, err := env.store.UserByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Len(t, gotUser.LikedVideos, 1)
}

func TestLikeVideoPostMissingRecords(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	alice := seedUser(t, env.store, "alice")
	post := seedPost(t, env.store, alice, "ramen")

	err := env.svc.LikeVideoPost(ctx, primitive.NewObjectID(), post.ID)
	assert.ErrorIs(t, err, store.ErrNoUser)

	err = env.svc.LikeVideoPost(ctx, alice.ID, primitive.NewObjectID())
	assert.ErrorIs(t, err, store.ErrNoPost)
}

func TestUnlikeVideoPost(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	alice := seedUser(t, env.store, "alice")
	post := seedPost(t, env.store, seedUser(t, env.store, "bob"), "ramen")

	require.NoError(t, env.svc.LikeVideoPost(ctx, alice.ID, post.ID))
	require.NoError(t, env.svc.UnlikeVideoPost(ctx, alice.ID, post.ID))

	got, err := env.store.VideoPostByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.CountLike)
	assert.Empty(t, got.Likes)

	gotUser, err := env.store.UserByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, gotUser.LikedVideos)
}

func TestUnlikeVideoPostNotLiked(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	alice := seedUser(t, env.store, "alice")
	post := seedPost(t, env.store, seedUser(t, env.store, "bob"), "ramen")

	err := env.svc.UnlikeVideoPost(ctx, alice.ID, post.ID)
	assert.ErrorIs(t, err, ErrNotLiked)
}

func TestCollectVideo(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	alice := seedUser(t, env.store, "alice")
	post := seedPost(t, env.store, seedUser(t, env.store, "bob"), "ramen")

	result, err := env.svc.CollectVideo(ctx, alice.ID, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Post.CountCollections)
	require.Len(t, result.Collections, 1)
	assert.Equal(t, post.ID, result.Collections[0].ID)

	gotUser, err := env.store.UserByID(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, gotUser.Collections, 1)
	assert.Equal(t, post.ID, gotUser.Collections[0].VideoPost)
}

func TestCollectVideoTwice(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	alice := seedUser(t, env.store, "alice")
	post := seedPost(t, env.store, seedUser(t, env.store, "bob"), "ramen")

	_, err := env.svc.CollectVideo(ctx, alice.ID, post.ID)
	require.NoError(t, err)
	_, err = env.svc.CollectVideo(ctx, alice.ID, post.ID)
	assert.ErrorIs(t, err, ErrAlreadyCollected)

	got, err := env.store.VideoPostByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.CountCollections)
}

func TestCollectThenUncollectRestoresCounter(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	alice := seedUser(t, env.store, "alice")
	post := seedPost(t, env.store, seedUser(t, env.store, "bob"), "ramen")

	_, err := env.svc.CollectVideo(ctx, alice.ID, post.ID)
	require.NoError(t, err)
	result, err := env.svc.DeleteFromCollections(ctx, alice.ID, post.ID)
	require.NoError(t, err)

	assert.Equal(t, 0, result.Post.CountCollections)
	assert.Empty(t, result.Collections)

	gotUser, err := env.store.UserByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, gotUser.Collections)
}

func TestDeleteFromCollectionsNeverCollected(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	alice := seedUser(t, env.store, "alice")
	post := seedPost(t, env.store, seedUser(t, env.store, "bob"), "ramen")

	_, err := env.svc.DeleteFromCollections(ctx, alice.ID, post.ID)
	assert.ErrorIs(t, err, ErrNotCollected)

	// no state change
	got, err := env.store.VideoPostByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.CountCollections)
}

func TestDeleteFromCollectionsCounterFloor(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	alice := seedUser(t, env.store, "alice")
	post := seedPost(t, env.store, seedUser(t, env.store, "bob"), "ramen")

	// Simulate a drifted state: the membership entry exists but the counter
	// was never incremented. The decrement must be refused instead of going
	// negative.
	alice.Collections = append(alice.Collections, model.VideoRef{VideoPost: post.ID})
	require.NoError(t, env.store.UpdateUser(ctx, alice))

	_, err := env.svc.DeleteFromCollections(ctx, alice.ID, post.ID)
	assert.ErrorIs(t, err, ErrNotCollected)

	got, err := env.store.VideoPostByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.CountCollections)
}
