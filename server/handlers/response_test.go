package handlers

import (
	"errors"
	"net/http"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/swqa7697/MeetFood/engagement"
	"github.com/swqa7697/MeetFood/file_store"
	"github.com/swqa7697/MeetFood/store"
	"github.com/swqa7697/MeetFood/userdir"
)

func TestStatusOf(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"no post", store.ErrNoPost, http.StatusNotFound},
		{"comment not found", engagement.ErrCommentNotFound, http.StatusNotFound},
		{"no user", store.ErrNoUser, http.StatusBadRequest},
		{"duplicate user name", store.ErrDuplicateUserName, http.StatusBadRequest},
		{"user exists", userdir.ErrUserExists, http.StatusBadRequest},
		{"already liked", engagement.ErrAlreadyLiked, http.StatusBadRequest},
		{"not liked", engagement.ErrNotLiked, http.StatusBadRequest},
		{"already collected", engagement.ErrAlreadyCollected, http.StatusBadRequest},
		{"not collected", engagement.ErrNotCollected, http.StatusBadRequest},
		{"not comment author", engagement.ErrNotCommentAuthor, http.StatusUnauthorized},
		{"not post owner", engagement.ErrNotPostOwner, http.StatusUnauthorized},
		{"blob store failure", file_store.ErrBlobStore, http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, statusOf(tc.err))
		})
	}
}

func TestStatusOfWrappedError(t *testing.T) {
	err := pkgerrors.WithMessage(store.ErrNoPost, "loading post")
	assert.Equal(t, http.StatusNotFound, statusOf(err))

	err = pkgerrors.WithMessage(file_store.ErrBlobStore, "deleting video file")
	assert.Equal(t, http.StatusInternalServerError, statusOf(err))
}
