package data

import (
	"context"

	"github.com/juju/errors"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// projectDoc maps to the projects collection.
type projectDoc struct {
	ID             bson.ObjectID `bson:"_id,omitempty"`
	Title          string        `bson:"title"`
	Description    string        `bson:"description"`
	Category       Category      `bson:"category"`
	ImageURL       string        `bson:"imageUrl"`
	ObjectPosition Position      `bson:"objectPosition"`
	CreatedAt      int64         `bson:"createdAt"`
}

func (d projectDoc) project() Project {
	return Project{
		ID:             d.ID.Hex(),
		Title:          d.Title,
		Description:    d.Description,
		Category:       d.Category,
		ImageURL:       d.ImageURL,
		ObjectPosition: d.ObjectPosition.OrDefault(),
		CreatedAt:      d.CreatedAt,
	}
}

// ProjectsStore provides project database operations.
type ProjectsStore struct {
	// coll is reference to "projects" collection in MongoDB
	coll *mongo.Collection
	now  func() int64
}

// NewProjectsStore returns a ProjectsStore using given collection.
func NewProjectsStore(coll *mongo.Collection) *ProjectsStore {
	return &ProjectsStore{coll: coll, now: nowMillis}
}

// ListProjects returns all projects sorted by createdAt descending.
func (s *ProjectsStore) ListProjects(ctx context.Context) ([]Project, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, storeErr(err, "listing projects")
	}
	defer cursor.Close(ctx)

	var docs []projectDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, storeErr(err, "decoding projects")
	}

	projects := make([]Project, 0, len(docs))
	for _, d := range docs {
		projects = append(projects, d.project())
	}
	return projects, nil
}

// GetProject finds a project by id.
func (s *ProjectsStore) GetProject(ctx context.Context, id string) (*Project, error) {
	oid, err := objectID("project", id)
	if err != nil {
		return nil, err
	}
	var doc projectDoc
	if err := s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errors.NotFoundf("project %q", id)
		}
		return nil, storeErr(err, "reading project %q", id)
	}
	p := doc.project()
	return &p, nil
}

// CreateProject inserts a project stamped with the current time.
func (s *ProjectsStore) CreateProject(ctx context.Context, in NewProject) (*Project, error) {
	doc := projectDoc{
		Title:          in.Title,
		Description:    in.Description,
		Category:       in.Category,
		ImageURL:       in.ImageURL,
		ObjectPosition: in.ObjectPosition.OrDefault(),
		CreatedAt:      s.now(),
	}
	result, err := s.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, storeErr(err, "creating project")
	}
	doc.ID = result.InsertedID.(bson.ObjectID)
	p := doc.project()
	return &p, nil
}

// UpdateProject sets the patched fields and returns the updated document.
func (s *ProjectsStore) UpdateProject(ctx context.Context, id string, patch ProjectPatch) (*Project, error) {
	oid, err := objectID("project", id)
	if err != nil {
		return nil, err
	}
	if patch.Empty() {
		return s.GetProject(ctx, id)
	}

	set := bson.M{}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Category != nil {
		set["category"] = *patch.Category
	}
	if patch.ImageURL != nil {
		set["imageUrl"] = *patch.ImageURL
	}
	if patch.ObjectPosition != nil {
		set["objectPosition"] = patch.ObjectPosition.OrDefault()
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc projectDoc
	err = s.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errors.NotFoundf("project %q", id)
		}
		return nil, storeErr(err, "updating project %q", id)
	}
	p := doc.project()
	return &p, nil
}

// DeleteProject removes a project; a missing id is reported as not found.
func (s *ProjectsStore) DeleteProject(ctx context.Context, id string) error {
	oid, err := objectID("project", id)
	if err != nil {
		return err
	}
	result, err := s.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return storeErr(err, "deleting project %q", id)
	}
	if result.DeletedCount == 0 {
		return errors.NotFoundf("project %q", id)
	}
	return nil
}
