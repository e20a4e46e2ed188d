package pgstore

import (
	"context"

	"github.com/juju/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/PaulBabatuyi/portfolio-cms/internal/data"
)

func (s *Store) CreateMessage(ctx context.Context, in data.NewMessage) (*data.Message, error) {
	in = in.Normalize()
	row := messageRow{
		ID:      newID(),
		Name:    in.Name,
		Email:   in.Email,
		Message: in.Message,
		Date:    s.now(),
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, storeErr(err, "saving message")
	}
	m := row.message()
	return &m, nil
}

// ListMessages returns all messages, newest first.
func (s *Store) ListMessages(ctx context.Context) ([]data.Message, error) {
	var rows []messageRow
	if err := s.db.WithContext(ctx).Order("date DESC, id DESC").Find(&rows).Error; err != nil {
		return nil, storeErr(err, "listing messages")
	}
	msgs := make([]data.Message, 0, len(rows))
	for _, r := range rows {
		msgs = append(msgs, r.message())
	}
	return msgs, nil
}

func (s *Store) DeleteMessage(ctx context.Context, id string) error {
	key, err := rowID("message", id)
	if err != nil {
		return err
	}
	result := s.db.WithContext(ctx).Delete(&messageRow{}, "id = ?", key)
	if result.Error != nil {
		return storeErr(result.Error, "deleting message %q", id)
	}
	if result.RowsAffected == 0 {
		return errors.NotFoundf("message %q", id)
	}
	return nil
}

// DeleteMessages removes the listed ids in one statement, or every message
// when ids is empty. Requested ids with no row end up in Missing.
func (s *Store) DeleteMessages(ctx context.Context, ids []string) (data.BatchDeleteResult, error) {
	res := data.BatchDeleteResult{Missing: []string{}}
	db := s.db.WithContext(ctx)
	if len(ids) == 0 {
		result := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&messageRow{})
		if result.Error != nil {
			return res, storeErr(result.Error, "clearing messages")
		}
		res.Deleted = result.RowsAffected
		return res, nil
	}

	seen := make(map[string]bool, len(ids))
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		key, err := rowID("message", id)
		if err != nil {
			res.Missing = append(res.Missing, id)
			continue
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		keys = append(keys, key)
	}
	if len(keys) == 0 {
		return res, nil
	}

	// DELETE ... RETURNING id tells us which rows existed
	var deleted []messageRow
	result := db.Clauses(clause.Returning{Columns: []clause.Column{{Name: "id"}}}).
		Where("id IN ?", keys).Delete(&deleted)
	if result.Error != nil {
		return res, storeErr(result.Error, "deleting messages")
	}
	gone := make(map[string]bool, len(deleted))
	for _, r := range deleted {
		gone[r.ID] = true
	}
	for _, key := range keys {
		if !gone[key] {
			res.Missing = append(res.Missing, key)
		}
	}
	res.Deleted = result.RowsAffected
	return res, nil
}
