package data

import (
	"context"

	"github.com/PaulBabatuyi/portfolio-cms/internal/db"
)

// MongoStore serves every repository from one MongoDB database.
type MongoStore struct {
	*ProjectsStore
	*MessagesStore
	*SettingsStore

	client *db.Client
}

// NewMongoStore wires the per-collection stores onto c.
func NewMongoStore(c *db.Client) *MongoStore {
	return &MongoStore{
		ProjectsStore: NewProjectsStore(c.ProjectsCollection()),
		MessagesStore: NewMessagesStore(c.MessagesCollection()),
		SettingsStore: NewSettingsStore(c.SettingsCollection()),
		client:        c,
	}
}

// Ping reports whether MongoDB is reachable.
func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx)
}

// Close disconnects the underlying client.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Close(ctx)
}

var _ Store = (*MongoStore)(nil)
