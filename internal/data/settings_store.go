package data

import (
	"context"

	"github.com/juju/errors"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// SettingsStore keeps the singleton settings document. The collection is
// expected to hold at most one document; the empty filter always targets it.
type SettingsStore struct {
	coll *mongo.Collection
}

// NewSettingsStore returns a SettingsStore using given collection.
func NewSettingsStore(coll *mongo.Collection) *SettingsStore {
	return &SettingsStore{coll: coll}
}

// GetSettings returns the stored document or a NotFound error.
func (s *SettingsStore) GetSettings(ctx context.Context) (*SiteSettings, error) {
	var settings SiteSettings
	if err := s.coll.FindOne(ctx, bson.M{}).Decode(&settings); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errors.NotFoundf("settings")
		}
		return nil, storeErr(err, "reading settings")
	}
	return &settings, nil
}

// UpsertSettings writes the update's fields, creating the document when
// none exists, and returns the stored result.
func (s *SettingsStore) UpsertSettings(ctx context.Context, u SettingsUpdate) (*SiteSettings, error) {
	set := u.Set()
	if len(set) == 0 {
		// nothing to write; make sure the singleton exists and return it
		current, err := s.GetSettings(ctx)
		if err == nil || !errors.Is(err, errors.NotFound) {
			return current, err
		}
		if _, err := s.coll.InsertOne(ctx, bson.M{}); err != nil {
			return nil, storeErr(err, "creating settings")
		}
		return &SiteSettings{}, nil
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)
	var settings SiteSettings
	err := s.coll.FindOneAndUpdate(ctx, bson.M{}, bson.M{"$set": bson.M(set)}, opts).Decode(&settings)
	if err != nil {
		return nil, storeErr(err, "updating settings")
	}
	return &settings, nil
}
