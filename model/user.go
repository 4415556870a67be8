package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// VideoRef is a reference to a VideoPost held inside one of a user's
// membership arrays (videos, collections, likedVideos).
type VideoRef struct {
	VideoPost primitive.ObjectID `bson:"videoPost" json:"videoPost"`
}

// User is the application user record, keyed by the Cognito subject id in
// addition to the database id. The three membership arrays are ordered and
// hold at most one entry per video post.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID       string             `bson:"userId" json:"userId"`
	Email        string             `bson:"email" json:"email"`
	UserName     string             `bson:"userName" json:"userName"`
	FirstName    string             `bson:"firstName,omitempty" json:"firstName,omitempty"`
	LastName     string             `bson:"lastName,omitempty" json:"lastName,omitempty"`
	ProfilePhoto string             `bson:"profilePhoto,omitempty" json:"profilePhoto,omitempty"`

	// Posts authored by this user. Entries are appended on post creation and
	// removed on post deletion.
	Videos []VideoRef `bson:"videos" json:"videos"`
	// Posts saved by this user. The reverse relation on the post side is only
	// the countCollections counter.
	Collections []VideoRef `bson:"collections" json:"collections"`
	// Posts liked by this user, mirroring the likes array on the post side.
	LikedVideos []VideoRef `bson:"likedVideos" json:"likedVideos"`
}

// HasVideo reports whether id is present in the authored videos array.
func (u *User) HasVideo(id primitive.ObjectID) bool {
	return containsRef(u.Videos, id)
}

// HasCollected reports whether id is present in the collections array.
func (u *User) HasCollected(id primitive.ObjectID) bool {
	return containsRef(u.Collections, id)
}

// HasLiked reports whether id is present in the likedVideos array.
func (u *User) HasLiked(id primitive.ObjectID) bool {
	return containsRef(u.LikedVideos, id)
}

func containsRef(refs []VideoRef, id primitive.ObjectID) bool {
	for _, r := range refs {
		if r.VideoPost == id {
			return true
		}
	}
	return false
}

// RemoveRef removes every entry referencing id from refs and returns the
// filtered array.
func RemoveRef(refs []VideoRef, id primitive.ObjectID) []VideoRef {
	out := refs[:0]
	for _, r := range refs {
		if r.VideoPost != id {
			out = append(out, r)
		}
	}
	return out
}
