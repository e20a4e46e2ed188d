// Package db manages the MongoDB connection behind the content store.
package db

import (
	"context"
	"time"

	"github.com/juju/errors"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// Collection names used by the content store.
const (
	ProjectsCollectionName = "projects"
	MessagesCollectionName = "messages"
	SettingsCollectionName = "settings"
)

// Client holds a verified connection and the portfolio database.
type Client struct {
	client *mongo.Client
	db     *mongo.Database
}

// New connects, pings the primary and binds the named database. It fails
// within the connect and server-selection timeouts when MongoDB is down.
func New(ctx context.Context, mongoURI, database string) (*Client, error) {
	opts := options.Client().
		ApplyURI(mongoURI).
		SetConnectTimeout(10 * time.Second).
		SetServerSelectionTimeout(10 * time.Second)

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, errors.Annotate(err, "connecting to MongoDB")
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Annotate(err, "pinging MongoDB")
	}
	return &Client{client: client, db: client.Database(database)}, nil
}

func (c *Client) ProjectsCollection() *mongo.Collection {
	return c.db.Collection(ProjectsCollectionName)
}

func (c *Client) MessagesCollection() *mongo.Collection {
	return c.db.Collection(MessagesCollectionName)
}

// SettingsCollection holds the single settings document.
func (c *Client) SettingsCollection() *mongo.Collection {
	return c.db.Collection(SettingsCollectionName)
}

// Ping checks that the primary is reachable.
func (c *Client) Ping(ctx context.Context) error {
	return c.client.Ping(ctx, readpref.Primary())
}

// Close disconnects; ctx bounds how long in-flight operations may drain.
func (c *Client) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}

// sortIndexes back the newest-first list queries; _id breaks ties between
// items stamped in the same millisecond.
var sortIndexes = map[string]mongo.IndexModel{
	ProjectsCollectionName: {
		Keys:    bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}},
		Options: options.Index().SetName("createdAt_desc"),
	},
	MessagesCollectionName: {
		Keys:    bson.D{{Key: "date", Value: -1}, {Key: "_id", Value: -1}},
		Options: options.Index().SetName("date_desc"),
	},
}

// CreateIndexes ensures the sort indexes exist. Re-running it is a no-op.
func (c *Client) CreateIndexes(ctx context.Context) error {
	for coll, model := range sortIndexes {
		if _, err := c.db.Collection(coll).Indexes().CreateOne(ctx, model); err != nil {
			return errors.Annotatef(err, "creating %s index", coll)
		}
	}
	return nil
}
