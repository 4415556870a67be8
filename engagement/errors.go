package engagement

import "errors"

// Guard errors returned by the coordinator. Handlers map these to HTTP
// statuses; everything else is treated as a server failure.
var (
	ErrAlreadyLiked     = errors.New("post already liked by this user")
	ErrNotLiked         = errors.New("post has not been liked by this user")
	ErrAlreadyCollected = errors.New("post already in this user's collections")
	ErrNotCollected     = errors.New("post not in this user's collections")
	ErrCommentNotFound  = errors.New("comment not found")
	ErrNotCommentAuthor = errors.New("caller is not the author of this comment")
	ErrNotPostOwner     = errors.New("caller is not the owner of this post")
)
