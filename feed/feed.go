// Package feed is the read-only ranking side: popularity-sorted pages of
// video posts, enriched with author and commenter projections.
package feed

import (
	"context"
	"time"

	"github.com/swqa7697/MeetFood/model"
	"github.com/swqa7697/MeetFood/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DeletedAccountName is the display name substituted for commenters whose
// account no longer resolves.
const DeletedAccountName = "Deleted Account"

// Service ranks and enriches video posts.
type Service struct {
	store store.Store
}

func NewService(st store.Store) *Service {
	return &Service{store: st}
}

// AuthorView is the minimal author projection attached to a feed entry.
type AuthorView struct {
	ID           primitive.ObjectID `json:"_id"`
	UserID       string             `json:"userId"`
	UserName     string             `json:"userName"`
	ProfilePhoto string             `json:"profilePhoto,omitempty"`
}

// CommentView is a comment with its author resolved for display.
type CommentView struct {
	ID     primitive.ObjectID `json:"_id"`
	User   string             `json:"user"`
	Text   string             `json:"text"`
	Name   string             `json:"name"`
	Avatar string             `json:"avatar"`
	Date   time.Time          `json:"date"`
}

// PostView is one enriched feed entry.
type PostView struct {
	ID                primitive.ObjectID `json:"_id"`
	PostTitle         string             `json:"postTitle"`
	VideoURL          string             `json:"videoUrl"`
	CoverImageURL     string             `json:"coverImageUrl"`
	RestaurantName    string             `json:"restaurantName"`
	RestaurantAddress model.Address      `json:"restaurantAddress,omitempty"`
	OrderedVia        string             `json:"orderedVia,omitempty"`
	PostTime          time.Time          `json:"postTime"`
	CountLike         int                `json:"countLike"`
	CountComment      int                `json:"countComment"`
	CountCollections  int                `json:"countCollections"`
	Popularity        float64            `json:"popularity"`
	Author            *AuthorView        `json:"author,omitempty"`
	Comments          []CommentView      `json:"comments"`
}

// FetchVideoPosts returns one page of posts ranked by the derived popularity
// score (0.7*countCollections + 0.3*countLike by default), with deterministic
// id-descending tiebreak across pages.
func (s *Service) FetchVideoPosts(ctx context.Context, opts store.PageOptions) ([]PostView, error) {
	page, err := s.store.FetchVideoPage(ctx, opts)
	if err != nil {
		return nil, err
	}

	users, err := s.loadReferencedUsers(ctx, page)
	if err != nil {
		return nil, err
	}

	views := make([]PostView, 0, len(page))
	for _, ranked := range page {
		views = append(views, buildView(ranked, users))
	}
	return views, nil
}

// GetVideoPost loads one post with full comment enrichment.
func (s *Service) GetVideoPost(ctx context.Context, postID primitive.ObjectID) (*PostView, error) {
	post, err := s.store.VideoPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	ranked := []store.RankedVideoPost{{VideoPost: *post, Popularity: post.Popularity()}}
	users, err := s.loadReferencedUsers(ctx, ranked)
	if err != nil {
		return nil, err
	}

	view := buildView(ranked[0], users)
	return &view, nil
}

// loadReferencedUsers batches the author and commenter lookups of a page
// into a single read.
func (s *Service) loadReferencedUsers(ctx context.Context, page []store.RankedVideoPost) (map[primitive.ObjectID]*model.User, error) {
	seen := make(map[primitive.ObjectID]bool)
	var ids []primitive.ObjectID
	add := func(id primitive.ObjectID) {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	for _, p := range page {
		add(p.UserID)
		for _, c := range p.Comments {
			add(c.User)
		}
	}
	return s.store.UsersByIDs(ctx, ids)
}

func buildView(r store.RankedVideoPost, users map[primitive.ObjectID]*model.User) PostView {
	view := PostView{
		ID:                r.ID,
		PostTitle:         r.PostTitle,
		VideoURL:          r.VideoURL,
		CoverImageURL:     r.CoverImageURL,
		RestaurantName:    r.RestaurantName,
		RestaurantAddress: r.RestaurantAddress,
		OrderedVia:        r.OrderedVia,
		PostTime:          r.PostTime,
		CountLike:         r.CountLike,
		CountComment:      r.CountComment,
		CountCollections:  r.CountCollections,
		Popularity:        r.Popularity,
		Comments:          make([]CommentView, 0, len(r.Comments)),
	}

	if author, ok := users[r.UserID]; ok {
		view.Author = &AuthorView{
			ID:           author.ID,
			UserID:       author.UserID,
			UserName:     author.UserName,
			ProfilePhoto: author.ProfilePhoto,
		}
	}

	for _, c := range r.Comments {
		cv := CommentView{
			ID:   c.ID,
			Text: c.Text,
			Date: c.Date,
		}
		if u, ok := users[c.User]; ok {
			cv.User = u.ID.Hex()
			cv.Name = u.UserName
			cv.Avatar = u.ProfilePhoto
		} else {
			// commenter's account is gone; keep the comment readable
			cv.Name = DeletedAccountName
		}
		view.Comments = append(view.Comments, cv)
	}
	return view
}
