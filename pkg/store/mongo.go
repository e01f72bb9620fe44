package store

import (
	"context"
	stderrors "errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/matzehuels/brainwave/pkg/cache"
	"github.com/matzehuels/brainwave/pkg/errors"
	"github.com/matzehuels/brainwave/pkg/mindmap"
)

// MongoCollection is the collection documents are stored in.
const MongoCollection = "documents"

// MongoConfig configures a [MongoStore].
type MongoConfig struct {
	URI      string
	Database string        // Default "brainwave"
	Timeout  time.Duration // Per-operation timeout, default 5s
}

// MongoStore keeps one BSON document per mind map, keyed by name.
type MongoStore struct {
	client  *mongo.Client
	coll    *mongo.Collection
	timeout time.Duration
}

type mongoDocument struct {
	Name      string       `bson:"_id"`
	Data      mindmap.Data `bson:"data"`
	Nodes     int          `bson:"nodeCount"`
	UpdatedAt time.Time    `bson:"updatedAt"`
}

// NewMongoStore connects to MongoDB and pings the primary.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.URI == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "mongo URI is empty")
	}
	if cfg.Database == "" {
		cfg.Database = "brainwave"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI).SetTimeout(cfg.Timeout))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "connect to mongo")
	}
	s := &MongoStore{
		client:  client,
		coll:    client.Database(cfg.Database).Collection(MongoCollection),
		timeout: cfg.Timeout,
	}

	err = cache.RetryWithBackoff(ctx, func() error {
		ctx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()
		return wrapMongo(client.Ping(ctx, readpref.Primary()), "ping mongo")
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return s, nil
}

func wrapMongo(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	if mongo.IsTimeout(err) || stderrors.Is(err, context.DeadlineExceeded) {
		return errors.Wrap(errors.ErrCodeTimeout, cache.Retryable(err), format, args...)
	}
	if mongo.IsNetworkError(err) {
		return errors.Wrap(errors.ErrCodeNetwork, cache.Retryable(err), format, args...)
	}
	return errors.Wrap(errors.ErrCodeNetwork, err, format, args...)
}

func (s *MongoStore) Load(ctx context.Context, name string) (*mindmap.Data, error) {
	if err := errors.ValidateDocumentName(name); err != nil {
		return nil, err
	}
	var doc mongoDocument
	found := true
	err := cache.RetryWithBackoff(ctx, func() error {
		ctx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()
		err := s.coll.FindOne(ctx, bson.M{"_id": name}).Decode(&doc)
		if stderrors.Is(err, mongo.ErrNoDocuments) {
			found = false
			return nil
		}
		return wrapMongo(err, "find document %s", name)
	})
	if err != nil || !found {
		return nil, err
	}
	if doc.Data.Links == nil {
		doc.Data.Links = []mindmap.Link{}
	}
	return &doc.Data, nil
}

func (s *MongoStore) Save(ctx context.Context, name string, data mindmap.Data) error {
	if err := errors.ValidateDocumentName(name); err != nil {
		return err
	}
	doc := mongoDocument{
		Name:      name,
		Data:      data,
		Nodes:     len(data.Nodes),
		UpdatedAt: time.Now().UTC(),
	}
	return cache.RetryWithBackoff(ctx, func() error {
		ctx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()
		_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": name}, doc, options.Replace().SetUpsert(true))
		return wrapMongo(err, "replace document %s", name)
	})
}

func (s *MongoStore) Delete(ctx context.Context, name string) error {
	return cache.RetryWithBackoff(ctx, func() error {
		ctx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()
		_, err := s.coll.DeleteOne(ctx, bson.M{"_id": name})
		return wrapMongo(err, "delete document %s", name)
	})
}

func (s *MongoStore) List(ctx context.Context) ([]string, error) {
	var names []string
	err := cache.RetryWithBackoff(ctx, func() error {
		ctx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()
		opts := options.Find().
			SetProjection(bson.M{"_id": 1}).
			SetSort(bson.D{{Key: "_id", Value: 1}})
		cur, err := s.coll.Find(ctx, bson.M{}, opts)
		if err != nil {
			return wrapMongo(err, "list documents")
		}
		var rows []struct {
			Name string `bson:"_id"`
		}
		if err := cur.All(ctx, &rows); err != nil {
			return wrapMongo(err, "read document names")
		}
		names = names[:0]
		for _, r := range rows {
			names = append(names, r.Name)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return names, nil
}

// Close disconnects the client.
func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
