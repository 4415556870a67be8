package store

import (
	"bytes"
	"context"
	"sort"
	"sync"

	"github.com/swqa7697/MeetFood/model"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryStore is an in-process Store used in tests and local debugging. It
// mirrors the MongoStore semantics including the unique userName index and
// the _id descending tiebreak on feed pages.
type MemoryStore struct {
	mu    sync.RWMutex
	users map[primitive.ObjectID]model.User
	posts map[primitive.ObjectID]model.VideoPost
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users: make(map[primitive.ObjectID]model.User),
		posts: make(map[primitive.ObjectID]model.VideoPost),
	}
}

// WithTransaction just runs fn; the in-memory store offers no rollback.
func (s *MemoryStore) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// ---- users ----

func (s *MemoryStore) CreateUser(ctx context.Context, u *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.UserName == u.UserName {
			return ErrDuplicateUserName
		}
	}
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	s.users[u.ID] = copyUser(*u)
	return nil
}

func (s *MemoryStore) UserByID(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, ErrNoUser
	}
	u = copyUser(u)
	return &u, nil
}

func (s *MemoryStore) UserBySubject(ctx context.Context, sub string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.UserID == sub {
			u = copyUser(u)
			return &u, nil
		}
	}
	return nil, ErrNoUser
}

func (s *MemoryStore) UsersByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[primitive.ObjectID]*model.User, len(ids))
	for _, id := range ids {
		if u, ok := s.users[id]; ok {
			u = copyUser(u)
			out[id] = &u
		}
	}
	return out, nil
}

func (s *MemoryStore) UpdateUser(ctx context.Context, u *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[u.ID]; !ok {
		return ErrNoUser
	}
	for id, existing := range s.users {
		if id != u.ID && existing.UserName == u.UserName {
			return ErrDuplicateUserName
		}
	}
	s.users[u.ID] = copyUser(*u)
	return nil
}

func (s *MemoryStore) DeleteUser(ctx context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return ErrNoUser
	}
	delete(s.users, id)
	return nil
}

// ---- video posts ----

func (s *MemoryStore) CreateVideoPost(ctx context.Context, p *model.VideoPost) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	s.posts[p.ID] = copyPost(*p)
	return nil
}

func (s *MemoryStore) VideoPostByID(ctx context.Context, id primitive.ObjectID) (*model.VideoPost, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.posts[id]
	if !ok {
		return nil, ErrNoPost
	}
	p = copyPost(p)
	return &p, nil
}

func (s *MemoryStore) VideoPostsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]model.VideoPost, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.VideoPost, 0, len(ids))
	for _, id := range ids {
		if p, ok := s.posts[id]; ok {
			out = append(out, copyPost(p))
		}
	}
	return out, nil
}

func (s *MemoryStore) VideoPostsByAuthor(ctx context.Context, authorID primitive.ObjectID) ([]model.VideoPost, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.VideoPost
	for _, p := range s.posts {
		if p.UserID == authorID {
			out = append(out, copyPost(p))
		}
	}
	return out, nil
}

func (s *MemoryStore) FetchVideoPage(ctx context.Context, opts PageOptions) ([]RankedVideoPost, error) {
	s.mu.RLock()
	ranked := make([]RankedVideoPost, 0, len(s.posts))
	for _, p := range s.posts {
		ranked = append(ranked, RankedVideoPost{VideoPost: copyPost(p), Popularity: p.Popularity()})
	}
	s.mu.RUnlock()

	sortKey := func(r RankedVideoPost) float64 {
		switch opts.SortField() {
		case "countLike":
			return float64(r.CountLike)
		case "countCollections":
			return float64(r.CountCollections)
		default:
			return r.Popularity
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		ki, kj := sortKey(ranked[i]), sortKey(ranked[j])
		if ki != kj {
			if opts.Order() > 0 {
				return ki < kj
			}
			return ki > kj
		}
		// _id descending tiebreak, same as the mongo pipeline
		return bytes.Compare(ranked[i].ID[:], ranked[j].ID[:]) > 0
	})

	offset := opts.Offset()
	if offset >= len(ranked) {
		return nil, nil
	}
	end := offset + opts.Limit()
	if end > len(ranked) {
		end = len(ranked)
	}
	return ranked[offset:end], nil
}

func (s *MemoryStore) UpdateVideoPost(ctx context.Context, p *model.VideoPost) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.posts[p.ID]; !ok {
		return ErrNoPost
	}
	s.posts[p.ID] = copyPost(*p)
	return nil
}

func (s *MemoryStore) DeleteVideoPost(ctx context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.posts[id]; !ok {
		return ErrNoPost
	}
	delete(s.posts, id)
	return nil
}

func (s *MemoryStore) DeleteVideoPostsByAuthor(ctx context.Context, authorID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, p := range s.posts {
		if p.UserID == authorID {
			delete(s.posts, id)
		}
	}
	return nil
}

func copyUser(u model.User) model.User {
	u.Videos = append([]model.VideoRef(nil), u.Videos...)
	u.Collections = append([]model.VideoRef(nil), u.Collections...)
	u.LikedVideos = append([]model.VideoRef(nil), u.LikedVideos...)
	return u
}

func copyPost(p model.VideoPost) model.VideoPost {
	p.Likes = append([]model.Like(nil), p.Likes...)
	p.Comments = append([]model.Comment(nil), p.Comments...)
	return p
}
