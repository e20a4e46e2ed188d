// Package pgstore is the Postgres backend for the content store, built on gorm.
package pgstore

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/juju/errors"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/PaulBabatuyi/portfolio-cms/internal/data"
)

type projectRow struct {
	ID             string `gorm:"primaryKey;type:uuid"`
	Title          string
	Description    string
	Category       string `gorm:"index"`
	ImageURL       string
	ObjectPosition string
	CreatedAt      int64 `gorm:"autoCreateTime:milli;index"`
}

func (projectRow) TableName() string { return "projects" }

func (r projectRow) project() data.Project {
	return data.Project{
		ID:             r.ID,
		Title:          r.Title,
		Description:    r.Description,
		Category:       data.Category(r.Category),
		ImageURL:       r.ImageURL,
		ObjectPosition: data.Position(r.ObjectPosition),
		CreatedAt:      r.CreatedAt,
	}
}

type messageRow struct {
	ID      string `gorm:"primaryKey;type:uuid"`
	Name    string
	Email   string
	Message string
	Date    int64 `gorm:"index"`
}

func (messageRow) TableName() string { return "messages" }

func (r messageRow) message() data.Message {
	return data.Message{ID: r.ID, Name: r.Name, Email: r.Email, Message: r.Message, Date: r.Date}
}

// settingsID is the primary key of the only settings row.
const settingsID = 1

type settingsRow struct {
	ID        uint           `gorm:"primaryKey"`
	Document  datatypes.JSON `gorm:"type:jsonb;not null"`
	UpdatedAt time.Time
}

func (settingsRow) TableName() string { return "settings" }

// Store implements data.Store on Postgres.
type Store struct {
	db  *gorm.DB
	now func() int64
}

var _ data.Store = (*Store)(nil)

// Open connects with dsn and migrates the schema.
func Open(dsn string) (*Store, error) {
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, errors.WithType(errors.Annotate(err, "connecting to postgres"), data.ErrStoreUnavailable)
	}
	s := New(gdb)
	if err := s.Migrate(); err != nil {
		_ = s.Close(context.Background())
		return nil, err
	}
	return s, nil
}

// New wraps an open gorm handle.
func New(gdb *gorm.DB) *Store {
	return &Store{db: gdb, now: func() int64 { return time.Now().UnixMilli() }}
}

// Migrate creates or updates the tables.
func (s *Store) Migrate() error {
	if err := s.db.AutoMigrate(&projectRow{}, &messageRow{}, &settingsRow{}); err != nil {
		return errors.Annotate(err, "migrating schema")
	}
	return nil
}

// Ping checks the underlying connection pool.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return errors.WithType(errors.Annotate(err, "pinging postgres"), data.ErrStoreUnavailable)
	}
	return nil
}

// Close releases the connection pool.
func (s *Store) Close(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// storeErr annotates a gorm error. Failures reaching the pool are tagged
// unavailable; constraint errors are not.
func storeErr(err error, format string, args ...any) error {
	annotated := errors.Annotatef(err, format, args...)
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, gorm.ErrInvalidDB) {
		return errors.WithType(annotated, data.ErrStoreUnavailable)
	}
	return annotated
}

// newID returns a time-ordered UUIDv7, so ordering by id follows insertion
// order when timestamps tie.
func newID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// rowID parses a uuid. A malformed id cannot name a row, so it is not found.
func rowID(kind, id string) (string, error) {
	u, err := uuid.Parse(id)
	if err != nil {
		return "", errors.NotFoundf("%s %q", kind, id)
	}
	return u.String(), nil
}
