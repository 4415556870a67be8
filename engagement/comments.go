package engagement

import (
	"context"
	"time"

	"github.com/swqa7697/MeetFood/model"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PostComment prepends a comment to the post. The caller's existence is not
// re-validated against the user directory; the verified subject from the
// auth layer is trusted.
func (s *Service) PostComment(ctx context.Context, callerID, postID primitive.ObjectID, text string) (*model.VideoPost, error) {
	post, err := s.store.VideoPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	comment := model.Comment{
		ID:   primitive.NewObjectID(),
		User: callerID,
		Text: text,
		Date: time.Now(),
	}
	post.Comments = append([]model.Comment{comment}, post.Comments...)
	post.CountComment = len(post.Comments)

	if err := s.store.UpdateVideoPost(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// DeleteComment removes the comment by id. Only the comment's author may
// delete it.
func (s *Service) DeleteComment(ctx context.Context, callerID, postID, commentID primitive.ObjectID) error {
	post, err := s.store.VideoPostByID(ctx, postID)
	if err != nil {
		return err
	}

	comment := post.FindComment(commentID)
	if comment == nil {
		return ErrCommentNotFound
	}
	if comment.User != callerID {
		return ErrNotCommentAuthor
	}

	comments := post.Comments[:0]
	for _, c := range post.Comments {
		if c.ID != commentID {
			comments = append(comments, c)
		}
	}
	post.Comments = comments
	post.CountComment = len(post.Comments)

	return s.store.UpdateVideoPost(ctx, post)
}
