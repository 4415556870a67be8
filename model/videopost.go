package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Like marks a single user as having liked a post. Membership semantics: at
// most one entry per user.
type Like struct {
	User primitive.ObjectID `bson:"user" json:"user"`
}

// Comment is embedded in a VideoPost, newest first. Deletable only by its
// author.
type Comment struct {
	ID   primitive.ObjectID `bson:"_id" json:"_id"`
	User primitive.ObjectID `bson:"user" json:"user"`
	Text string             `bson:"text" json:"text"`
	Date time.Time          `bson:"date" json:"date"`
}

// Address is the structured restaurant address attached to a post.
type Address struct {
	Street  string `bson:"street,omitempty" json:"street,omitempty"`
	City    string `bson:"city,omitempty" json:"city,omitempty"`
	State   string `bson:"state,omitempty" json:"state,omitempty"`
	ZipCode string `bson:"zipCode,omitempty" json:"zipCode,omitempty"`
}

// VideoPost is the video post record. countLike and countComment are
// denormalized lengths of their arrays; countCollections counts users
// currently collecting the post and has no array on this side.
type VideoPost struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	PostTitle         string             `bson:"postTitle" json:"postTitle"`
	UserID            primitive.ObjectID `bson:"userId" json:"userId"`
	VideoURL          string             `bson:"videoUrl" json:"videoUrl"`
	CoverImageURL     string             `bson:"coverImageUrl" json:"coverImageUrl"`
	RestaurantName    string             `bson:"restaurantName" json:"restaurantName"`
	RestaurantAddress Address            `bson:"restaurantAddress,omitempty" json:"restaurantAddress,omitempty"`
	OrderedVia        string             `bson:"orderedVia,omitempty" json:"orderedVia,omitempty"`
	PostTime          time.Time          `bson:"postTime" json:"postTime"`

	Likes     []Like `bson:"likes" json:"likes"`
	CountLike int    `bson:"countLike" json:"countLike"`

	Comments     []Comment `bson:"comments" json:"comments"`
	CountComment int       `bson:"countComment" json:"countComment"`

	CountCollections int `bson:"countCollections" json:"countCollections"`
}

// LikedBy reports whether the given user has an entry in the likes array.
func (p *VideoPost) LikedBy(userID primitive.ObjectID) bool {
	for _, l := range p.Likes {
		if l.User == userID {
			return true
		}
	}
	return false
}

// FindComment returns the comment with the given id, or nil.
func (p *VideoPost) FindComment(commentID primitive.ObjectID) *Comment {
	for i := range p.Comments {
		if p.Comments[i].ID == commentID {
			return &p.Comments[i]
		}
	}
	return nil
}

// Weights of the derived popularity score. The collection count dominates
// since saving a post is a stronger signal than liking it.
const (
	PopularityCollectionsWeight = 0.7
	PopularityLikeWeight        = 0.3
)

// Popularity is the derived ranking score used by the feed.
func (p *VideoPost) Popularity() float64 {
	return PopularityCollectionsWeight*float64(p.CountCollections) + PopularityLikeWeight*float64(p.CountLike)
}
