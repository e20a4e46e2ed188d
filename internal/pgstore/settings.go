package pgstore

import (
	"context"
	"encoding/json"

	"github.com/juju/errors"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/PaulBabatuyi/portfolio-cms/internal/data"
)

// GetSettings returns the stored document or a NotFound error.
func (s *Store) GetSettings(ctx context.Context) (*data.SiteSettings, error) {
	var row settingsRow
	if err := s.db.WithContext(ctx).First(&row, settingsID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NotFoundf("settings")
		}
		return nil, storeErr(err, "reading settings")
	}
	return decodeSettings(row.Document)
}

// UpsertSettings merges the update into the stored document under a row
// lock, creating the row on first write.
func (s *Store) UpsertSettings(ctx context.Context, u data.SettingsUpdate) (*data.SiteSettings, error) {
	var merged data.SiteSettings
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row settingsRow
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&row, settingsID).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
		case err != nil:
			return storeErr(err, "reading settings")
		default:
			current, err := decodeSettings(row.Document)
			if err != nil {
				return err
			}
			merged = *current
		}

		merged = merged.Apply(u)
		doc, err := json.Marshal(merged)
		if err != nil {
			return errors.Annotate(err, "encoding settings")
		}
		row = settingsRow{ID: settingsID, Document: datatypes.JSON(doc)}
		err = tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"document", "updated_at"}),
		}).Create(&row).Error
		if err != nil {
			return storeErr(err, "writing settings")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &merged, nil
}

func decodeSettings(doc datatypes.JSON) (*data.SiteSettings, error) {
	var settings data.SiteSettings
	if len(doc) == 0 {
		return &settings, nil
	}
	if err := json.Unmarshal(doc, &settings); err != nil {
		return nil, errors.Annotate(err, "decoding settings")
	}
	return &settings, nil
}
