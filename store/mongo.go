package store

import (
	"context"

	"github.com/pkg/errors"
	"github.com/swqa7697/MeetFood/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	usersCollection = "users"
	postsCollection = "videoposts"
)

// MongoStore implements Store on top of two MongoDB collections.
type MongoStore struct {
	client *mongo.Client
	users  *mongo.Collection
	posts  *mongo.Collection
}

var _ Store = (*MongoStore)(nil)

// NewMongoStore connects to the cluster at uri, verifies the connection and
// ensures the indexes the write paths rely on.
func NewMongoStore(ctx context.Context, uri, dbName string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(err, "connect to mongodb")
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, errors.Wrap(err, "ping mongodb")
	}

	db := client.Database(dbName)
	s := &MongoStore{
		client: client,
		users:  db.Collection(usersCollection),
		posts:  db.Collection(postsCollection),
	}
	if err := s.ensureIndexes(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// ensureIndexes creates the unique indexes that replace the old read-then-write
// uniqueness checks, plus the author index used by the deletion cascade.
func (s *MongoStore) ensureIndexes(ctx context.Context) error {
	_, err := s.users.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userName", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	if err != nil {
		return errors.Wrap(err, "create user indexes")
	}

	_, err = s.posts.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}},
	})
	return errors.Wrap(err, "create post indexes")
}

// Disconnect tears down the underlying client.
func (s *MongoStore) Disconnect(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// WithTransaction runs fn in one multi-document transaction. fn must thread
// the session context it receives into every store call.
func (s *MongoStore) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := s.client.StartSession()
	if err != nil {
		return errors.Wrap(err, "start mongo session")
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}

// ---- users ----

func (s *MongoStore) CreateUser(ctx context.Context, u *model.User) error {
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	_, err := s.users.InsertOne(ctx, u)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateUserName
	}
	return errors.Wrap(err, "insert user")
}

func (s *MongoStore) UserByID(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	return s.findUser(ctx, bson.M{"_id": id})
}

func (s *MongoStore) UserBySubject(ctx context.Context, sub string) (*model.User, error) {
	return s.findUser(ctx, bson.M{"userId": sub})
}

func (s *MongoStore) findUser(ctx context.Context, filter bson.M) (*model.User, error) {
	var u model.User
	err := s.users.FindOne(ctx, filter).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNoUser
	}
	if err != nil {
		return nil, errors.Wrap(err, "find user")
	}
	return &u, nil
}

func (s *MongoStore) UsersByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*model.User, error) {
	out := make(map[primitive.ObjectID]*model.User, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	cursor, err := s.users.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, errors.Wrap(err, "find users by ids")
	}
	var users []model.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, errors.Wrap(err, "decode users")
	}
	for i := range users {
		out[users[i].ID] = &users[i]
	}
	return out, nil
}

func (s *MongoStore) UpdateUser(ctx context.Context, u *model.User) error {
	res, err := s.users.ReplaceOne(ctx, bson.M{"_id": u.ID}, u)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateUserName
	}
	if err != nil {
		return errors.Wrap(err, "replace user")
	}
	if res.MatchedCount == 0 {
		return ErrNoUser
	}
	return nil
}

func (s *MongoStore) DeleteUser(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.users.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Wrap(err, "delete user")
	}
	if res.DeletedCount == 0 {
		return ErrNoUser
	}
	return nil
}

// ---- video posts ----

func (s *MongoStore) CreateVideoPost(ctx context.Context, p *model.VideoPost) error {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	_, err := s.posts.InsertOne(ctx, p)
	return errors.Wrap(err, "insert video post")
}

func (s *MongoStore) VideoPostByID(ctx context.Context, id primitive.ObjectID) (*model.VideoPost, error) {
	var p model.VideoPost
	err := s.posts.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNoPost
	}
	if err != nil {
		return nil, errors.Wrap(err, "find video post")
	}
	return &p, nil
}

func (s *MongoStore) VideoPostsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]model.VideoPost, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	cursor, err := s.posts.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, errors.Wrap(err, "find video posts by ids")
	}
	var posts []model.VideoPost
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, errors.Wrap(err, "decode video posts")
	}

	// Preserve the caller's ordering; $in does not.
	byID := make(map[primitive.ObjectID]model.VideoPost, len(posts))
	for _, p := range posts {
		byID[p.ID] = p
	}
	ordered := make([]model.VideoPost, 0, len(posts))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			ordered = append(ordered, p)
		}
	}
	return ordered, nil
}

func (s *MongoStore) VideoPostsByAuthor(ctx context.Context, authorID primitive.ObjectID) ([]model.VideoPost, error) {
	cursor, err := s.posts.Find(ctx, bson.M{"userId": authorID})
	if err != nil {
		return nil, errors.Wrap(err, "find video posts by author")
	}
	var posts []model.VideoPost
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, errors.Wrap(err, "decode video posts")
	}
	return posts, nil
}

func (s *MongoStore) FetchVideoPage(ctx context.Context, opts PageOptions) ([]RankedVideoPost, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$addFields", Value: bson.D{
			{Key: "popularity", Value: bson.D{
				{Key: "$add", Value: bson.A{
					bson.D{{Key: "$multiply", Value: bson.A{model.PopularityCollectionsWeight, "$countCollections"}}},
					bson.D{{Key: "$multiply", Value: bson.A{model.PopularityLikeWeight, "$countLike"}}},
				}},
			}},
		}}},
		// _id tiebreak keeps the ordering deterministic across pages with
		// equal sort keys.
		{{Key: "$sort", Value: bson.D{
			{Key: opts.SortField(), Value: opts.Order()},
			{Key: "_id", Value: -1},
		}}},
		{{Key: "$skip", Value: int64(opts.Offset())}},
		{{Key: "$limit", Value: int64(opts.Limit())}},
	}

	cursor, err := s.posts.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, errors.Wrap(err, "aggregate video page")
	}
	var page []RankedVideoPost
	if err := cursor.All(ctx, &page); err != nil {
		return nil, errors.Wrap(err, "decode video page")
	}
	return page, nil
}

func (s *MongoStore) UpdateVideoPost(ctx context.Context, p *model.VideoPost) error {
	res, err := s.posts.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	if err != nil {
		return errors.Wrap(err, "replace video post")
	}
	if res.MatchedCount == 0 {
		return ErrNoPost
	}
	return nil
}

func (s *MongoStore) DeleteVideoPost(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.posts.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Wrap(err, "delete video post")
	}
	if res.DeletedCount == 0 {
		return ErrNoPost
	}
	return nil
}

func (s *MongoStore) DeleteVideoPostsByAuthor(ctx context.Context, authorID primitive.ObjectID) error {
	_, err := s.posts.DeleteMany(ctx, bson.M{"userId": authorID})
	return errors.Wrap(err, "delete video posts by author")
}
