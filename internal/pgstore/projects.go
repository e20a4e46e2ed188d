package pgstore

import (
	"context"

	"github.com/juju/errors"
	"gorm.io/gorm"

	"github.com/PaulBabatuyi/portfolio-cms/internal/data"
)

// ListProjects returns all projects, newest first.
func (s *Store) ListProjects(ctx context.Context) ([]data.Project, error) {
	var rows []projectRow
	if err := s.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&rows).Error; err != nil {
		return nil, storeErr(err, "listing projects")
	}
	projects := make([]data.Project, 0, len(rows))
	for _, r := range rows {
		projects = append(projects, r.project())
	}
	return projects, nil
}

func (s *Store) GetProject(ctx context.Context, id string) (*data.Project, error) {
	key, err := rowID("project", id)
	if err != nil {
		return nil, err
	}
	var row projectRow
	if err := s.db.WithContext(ctx).First(&row, "id = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NotFoundf("project %q", id)
		}
		return nil, storeErr(err, "reading project %q", id)
	}
	p := row.project()
	return &p, nil
}

func (s *Store) CreateProject(ctx context.Context, in data.NewProject) (*data.Project, error) {
	row := projectRow{
		ID:             newID(),
		Title:          in.Title,
		Description:    in.Description,
		Category:       string(in.Category),
		ImageURL:       in.ImageURL,
		ObjectPosition: string(in.ObjectPosition.OrDefault()),
		CreatedAt:      s.now(),
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, storeErr(err, "creating project")
	}
	p := row.project()
	return &p, nil
}

// UpdateProject writes the patched columns and reads the row back.
func (s *Store) UpdateProject(ctx context.Context, id string, patch data.ProjectPatch) (*data.Project, error) {
	key, err := rowID("project", id)
	if err != nil {
		return nil, err
	}
	if patch.Empty() {
		return s.GetProject(ctx, id)
	}

	cols := map[string]any{}
	if patch.Title != nil {
		cols["title"] = *patch.Title
	}
	if patch.Description != nil {
		cols["description"] = *patch.Description
	}
	if patch.Category != nil {
		cols["category"] = string(*patch.Category)
	}
	if patch.ImageURL != nil {
		cols["image_url"] = *patch.ImageURL
	}
	if patch.ObjectPosition != nil {
		cols["object_position"] = string(patch.ObjectPosition.OrDefault())
	}

	var row projectRow
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&projectRow{}).Where("id = ?", key).Updates(cols)
		if result.Error != nil {
			return storeErr(result.Error, "updating project %q", id)
		}
		if result.RowsAffected == 0 {
			return errors.NotFoundf("project %q", id)
		}
		if err := tx.First(&row, "id = ?", key).Error; err != nil {
			return storeErr(err, "reading project %q", id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	p := row.project()
	return &p, nil
}

func (s *Store) DeleteProject(ctx context.Context, id string) error {
	key, err := rowID("project", id)
	if err != nil {
		return err
	}
	result := s.db.WithContext(ctx).Delete(&projectRow{}, "id = ?", key)
	if result.Error != nil {
		return storeErr(result.Error, "deleting project %q", id)
	}
	if result.RowsAffected == 0 {
		return errors.NotFoundf("project %q", id)
	}
	return nil
}
