package engagement

import (
	"context"

	Logger "github.com/swqa7697/MeetFood/utils/log"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DeleteUser tears down an account:
//
//  1. delete the profile photo blob,
//  2. delete the video and cover-image blobs of every authored post,
//  3. delete the authored post records,
//  4. delete the user record,
//  5. delete the account from the identity provider.
//
// Blob deletion runs before any database write and a failure aborts the
// whole operation: failing closed here is what keeps the buckets free of
// orphaned blobs. The identity-provider step is best effort.
func (s *Service) DeleteUser(ctx context.Context, callerID primitive.ObjectID, email string) error {
	user, err := s.store.UserByID(ctx, callerID)
	if err != nil {
		return err
	}

	if user.ProfilePhoto != "" {
		if err := s.profilePhotos.Delete(ctx, user.ProfilePhoto); err != nil {
			return blobFailure(err, "delete profile photo blob")
		}
	}

	posts, err := s.store.VideoPostsByAuthor(ctx, user.ID)
	if err != nil {
		return err
	}
	for _, p := range posts {
		if err := s.videos.Delete(ctx, p.VideoURL); err != nil {
			return blobFailure(err, "delete video blob")
		}
		if err := s.coverImages.Delete(ctx, p.CoverImageURL); err != nil {
			return blobFailure(err, "delete cover image blob")
		}
	}

	if err := s.store.DeleteVideoPostsByAuthor(ctx, user.ID); err != nil {
		return err
	}
	if err := s.store.DeleteUser(ctx, user.ID); err != nil {
		return err
	}

	if err := s.accounts.DeleteAccount(ctx, email); err != nil {
		// The database side is already gone; surfacing this would only make
		// the client retry a delete that cannot succeed twice.
		Logger.Log.WithError(err).Warn("identity provider account deletion failed")
	}
	return nil
}
