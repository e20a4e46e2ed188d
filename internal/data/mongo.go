package data

import (
	"time"

	"github.com/juju/errors"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// storeErr annotates a driver error, tagging connectivity failures with
// ErrStoreUnavailable.
func storeErr(err error, format string, args ...any) error {
	annotated := errors.Annotatef(err, format, args...)
	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) || errors.Is(err, mongo.ErrClientDisconnected) {
		return errors.WithType(annotated, ErrStoreUnavailable)
	}
	return annotated
}

// objectID parses a hex id. Malformed ids cannot name a stored document,
// so they are reported as not found.
func objectID(kind, id string) (bson.ObjectID, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return bson.ObjectID{}, errors.NotFoundf("%s %q", kind, id)
	}
	return oid, nil
}

// nowMillis is the default clock for createdAt/date stamps.
func nowMillis() int64 {
	return time.Now().UnixMilli()
}
