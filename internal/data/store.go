// Package data provides the content model and its stores.
package data

import (
	"context"

	"github.com/juju/errors"
)

// ErrStoreUnavailable marks failures caused by losing the backing store
// (network errors, timeouts, closed client).
const ErrStoreUnavailable = errors.ConstError("store unavailable")

// ProjectRepository persists portfolio projects.
type ProjectRepository interface {
	// ListProjects returns every project, newest first. An empty store
	// yields an empty slice, never an error.
	ListProjects(ctx context.Context) ([]Project, error)
	GetProject(ctx context.Context, id string) (*Project, error)
	CreateProject(ctx context.Context, in NewProject) (*Project, error)
	// UpdateProject applies patch and returns the stored result. A missing
	// id yields an errors.NotFound error.
	UpdateProject(ctx context.Context, id string, patch ProjectPatch) (*Project, error)
	DeleteProject(ctx context.Context, id string) error
}

// MessageRepository persists contact messages.
type MessageRepository interface {
	// ListMessages returns every message, newest first.
	ListMessages(ctx context.Context) ([]Message, error)
	CreateMessage(ctx context.Context, in NewMessage) (*Message, error)
	DeleteMessage(ctx context.Context, id string) error
	// DeleteMessages removes the given ids in one operation. An empty ids
	// slice removes every message.
	DeleteMessages(ctx context.Context, ids []string) (BatchDeleteResult, error)
}

// SettingsRepository persists the singleton settings document.
type SettingsRepository interface {
	// GetSettings returns the stored document, or an errors.NotFound error
	// when none has been written yet.
	GetSettings(ctx context.Context) (*SiteSettings, error)
	// UpsertSettings writes the fields named in u and returns the stored document.
	UpsertSettings(ctx context.Context, u SettingsUpdate) (*SiteSettings, error)
}

// Pinger reports store connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Store bundles everything the API needs from a backend.
type Store interface {
	ProjectRepository
	MessageRepository
	SettingsRepository
	Pinger
	Close(ctx context.Context) error
}
