package data

import (
	"context"

	"github.com/juju/errors"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// messageDoc maps to the messages collection.
type messageDoc struct {
	ID      bson.ObjectID `bson:"_id,omitempty"`
	Name    string        `bson:"name"`
	Email   string        `bson:"email"`
	Message string        `bson:"message"`
	Date    int64         `bson:"date"`
}

func (d messageDoc) message() Message {
	return Message{
		ID:      d.ID.Hex(),
		Name:    d.Name,
		Email:   d.Email,
		Message: d.Message,
		Date:    d.Date,
	}
}

// MessagesStore provides contact message database operations.
type MessagesStore struct {
	// coll is reference to "messages" collection in MongoDB
	coll *mongo.Collection
	now  func() int64
}

// NewMessagesStore returns a MessagesStore using given collection.
func NewMessagesStore(coll *mongo.Collection) *MessagesStore {
	return &MessagesStore{coll: coll, now: nowMillis}
}

// CreateMessage stores a visitor message; the date is stamped here, never
// taken from the visitor.
func (m *MessagesStore) CreateMessage(ctx context.Context, in NewMessage) (*Message, error) {
	in = in.Normalize()
	doc := messageDoc{
		Name:    in.Name,
		Email:   in.Email,
		Message: in.Message,
		Date:    m.now(),
	}

	result, err := m.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, storeErr(err, "saving message")
	}
	doc.ID = result.InsertedID.(bson.ObjectID)
	msg := doc.message()
	return &msg, nil
}

// ListMessages returns all messages, newest first.
func (m *MessagesStore) ListMessages(ctx context.Context) ([]Message, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := m.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, storeErr(err, "listing messages")
	}
	defer cursor.Close(ctx)

	var docs []messageDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, storeErr(err, "decoding messages")
	}
	messages := make([]Message, 0, len(docs))
	for _, d := range docs {
		messages = append(messages, d.message())
	}
	return messages, nil
}

// DeleteMessage removes one message.
func (m *MessagesStore) DeleteMessage(ctx context.Context, id string) error {
	oid, err := objectID("message", id)
	if err != nil {
		return err
	}
	result, err := m.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return storeErr(err, "deleting message %q", id)
	}
	if result.DeletedCount == 0 {
		return errors.NotFoundf("message %q", id)
	}
	return nil
}

// DeleteMessages removes the listed messages with a single DeleteMany, or
// every message when ids is empty. Ids that matched nothing are reported
// in Missing.
func (m *MessagesStore) DeleteMessages(ctx context.Context, ids []string) (BatchDeleteResult, error) {
	res := BatchDeleteResult{Missing: []string{}}
	if len(ids) == 0 {
		result, err := m.coll.DeleteMany(ctx, bson.M{})
		if err != nil {
			return res, storeErr(err, "clearing messages")
		}
		res.Deleted = result.DeletedCount
		return res, nil
	}

	byHex := make(map[string]bson.ObjectID, len(ids))
	oids := make([]bson.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := bson.ObjectIDFromHex(id)
		if err != nil {
			res.Missing = append(res.Missing, id)
			continue
		}
		if _, dup := byHex[oid.Hex()]; dup {
			continue
		}
		byHex[oid.Hex()] = oid
		oids = append(oids, oid)
	}
	if len(oids) == 0 {
		return res, nil
	}

	// find which of the requested ids exist before removing them
	filter := bson.M{"_id": bson.M{"$in": oids}}
	cursor, err := m.coll.Find(ctx, filter, options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return res, storeErr(err, "looking up messages")
	}
	var found []struct {
		ID bson.ObjectID `bson:"_id"`
	}
	if err := cursor.All(ctx, &found); err != nil {
		return res, storeErr(err, "decoding message ids")
	}
	existing := make(map[string]bool, len(found))
	for _, f := range found {
		existing[f.ID.Hex()] = true
	}
	for _, oid := range oids {
		if !existing[oid.Hex()] {
			res.Missing = append(res.Missing, oid.Hex())
		}
	}

	result, err := m.coll.DeleteMany(ctx, filter)
	if err != nil {
		return res, storeErr(err, "deleting messages")
	}
	res.Deleted = result.DeletedCount
	return res, nil
}
