package db

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/fedragon/go-unitysweep/internal/core"
	"github.com/fedragon/go-unitysweep/internal/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	settingsCollection = "settings"
	assetPattern       = `unityAssets\.json$`
)

// URI builds mongodb://<username>:<password>@<host>:<port>/ with the user info escaped.
func URI(host, port, username, password string) string {
	u := url.URL{
		Scheme: "mongodb",
		User:   url.UserPassword(username, password),
		Host:   net.JoinHostPort(host, port),
		Path:   "/",
	}

	return u.String()
}

func Connect(ctx context.Context, uri string, appName string, timeout time.Duration) (*mongo.Client, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetAppName(appName).
		SetConnectTimeout(timeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to MongoDB: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("unable to ping MongoDB: %w", err)
	}

	return client, nil
}

type MongoCluster struct {
	client *mongo.Client
}

func NewCluster(client *mongo.Client) *MongoCluster {
	return &MongoCluster{client: client}
}

func (c *MongoCluster) DatabaseNames(ctx context.Context) ([]string, error) {
	return c.client.ListDatabaseNames(ctx, bson.D{})
}

func (c *MongoCluster) Database(name string) core.Database {
	return &MongoDatabase{db: c.client.Database(name)}
}

type MongoDatabase struct {
	db *mongo.Database
}

func (d *MongoDatabase) Name() string {
	return d.db.Name()
}

func (d *MongoDatabase) Models(ctx context.Context) ([]string, error) {
	cursor, err := d.db.Collection(settingsCollection).Find(
		ctx,
		bson.M{"federate": bson.M{"$ne": true}},
		options.Find().SetProjection(bson.M{"_id": 1}),
	)
	if err != nil {
		return nil, err
	}

	var settings []struct {
		ID string `bson:"_id"`
	}
	if err := cursor.All(ctx, &settings); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(settings))
	for _, s := range settings {
		ids = append(ids, s.ID)
	}

	return ids, nil
}

func (d *MongoDatabase) bucket(namespace string) (*gridfs.Bucket, error) {
	return gridfs.NewBucket(d.db, options.GridFSBucket().SetName(namespace))
}

func (d *MongoDatabase) FindAssets(ctx context.Context, namespace string) ([]models.Asset, error) {
	bucket, err := d.bucket(namespace)
	if err != nil {
		return nil, err
	}

	cursor, err := bucket.FindContext(ctx, bson.M{"filename": primitive.Regex{Pattern: assetPattern}})
	if err != nil {
		return nil, err
	}

	var assets []models.Asset
	if err := cursor.All(ctx, &assets); err != nil {
		return nil, err
	}

	return assets, nil
}

func (d *MongoDatabase) DeleteAsset(ctx context.Context, namespace string, id interface{}) error {
	bucket, err := d.bucket(namespace)
	if err != nil {
		return err
	}

	return bucket.DeleteContext(ctx, id)
}

// HasRevision matches the revision both as a standard (subtype 4) and as a
// legacy (subtype 3) binary UUID, since older drivers stored the latter.
func (d *MongoDatabase) HasRevision(ctx context.Context, namespace string, revision uuid.UUID) (bool, error) {
	count, err := d.db.Collection(namespace).CountDocuments(
		ctx,
		revisionFilter(revision),
		options.Count().SetLimit(1),
	)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func revisionFilter(revision uuid.UUID) bson.M {
	data := revision[:]

	return bson.M{"_id": bson.M{"$in": bson.A{
		primitive.Binary{Subtype: bsontype.BinaryUUID, Data: data},
		primitive.Binary{Subtype: bsontype.BinaryUUIDOld, Data: data},
	}}}
}
