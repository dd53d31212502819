package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	apperr "github.com/matzehuels/corescene/pkg/errors"
)

const (
	collectionDocuments  = "documents"
	DefaultMongoDatabase = "corescene"
)

// MongoStore keeps records in the "documents" collection.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// OpenMongo connects to uri and pings the primary.
func OpenMongo(ctx context.Context, uri, database string) (*MongoStore, error) {
	if uri == "" {
		return nil, apperr.New(apperr.ErrCodeInvalidInput, "mongo store needs a URI")
	}
	if database == "" {
		database = DefaultMongoDatabase
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeStorage, err, "connect to mongo")
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, apperr.Wrap(apperr.ErrCodeStorage, err, "ping mongo")
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(database).Collection(collectionDocuments),
	}, nil
}

func (s *MongoStore) Get(ctx context.Context, id string) (*Record, error) {
	var r Record
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&r)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeStorage, err, "get %s", id)
	}
	return &r, nil
}

func (s *MongoStore) Put(ctx context.Context, r *Record) error {
	if err := prepare(r, time.Now()); err != nil {
		return err
	}
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": r.ID}, r, options.Replace().SetUpsert(true))
	if err != nil {
		return apperr.Wrap(apperr.ErrCodeStorage, err, "put %s", r.ID)
	}
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, id string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return apperr.Wrap(apperr.ErrCodeStorage, err, "delete %s", id)
	}
	if res.DeletedCount == 0 {
		return notFound(id)
	}
	return nil
}

func (s *MongoStore) List(ctx context.Context) ([]Record, error) {
	opts := options.Find().
		SetProjection(bson.M{"data": 0}).
		SetSort(bson.D{{Key: "name", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeStorage, err, "list documents")
	}
	out := []Record{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeStorage, err, "list documents")
	}
	return out, nil
}

func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
