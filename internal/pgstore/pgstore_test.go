package pgstore

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/juju/errors"

	"github.com/PaulBabatuyi/portfolio-cms/internal/data"
)

func setupStore(t *testing.T) *Store {
	dsn := os.Getenv("POSTGRES_DSN")
	if dsn == "" {
		t.Skip("POSTGRES_DSN not set; skipping integration test")
	}
	s, err := Open(dsn)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	s.db.Exec("TRUNCATE projects, messages, settings")
	t.Cleanup(func() { _ = s.Close(context.Background()) })
	return s
}

func TestProjectsCRUD(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	clock := int64(0)
	s.now = func() int64 { clock += 10; return clock }

	older, err := s.CreateProject(ctx, data.NewProject{Title: "Old", Category: data.CategoryBranding})
	if err != nil {
		t.Fatalf("CreateProject failed: %v", err)
	}
	if older.ObjectPosition != data.PositionCenter {
		t.Fatalf("expected default position, got %q", older.ObjectPosition)
	}
	newer, err := s.CreateProject(ctx, data.NewProject{Title: "New", Category: data.CategoryThumbnail})
	if err != nil {
		t.Fatalf("CreateProject failed: %v", err)
	}

	list, err := s.ListProjects(ctx)
	if err != nil {
		t.Fatalf("ListProjects failed: %v", err)
	}
	if len(list) != 2 || list[0].ID != newer.ID {
		t.Fatalf("expected newest first, got %+v", list)
	}

	title := "Renamed"
	updated, err := s.UpdateProject(ctx, older.ID, data.ProjectPatch{Title: &title})
	if err != nil {
		t.Fatalf("UpdateProject failed: %v", err)
	}
	if updated.Title != "Renamed" || updated.Category != data.CategoryBranding || updated.CreatedAt != older.CreatedAt {
		t.Fatalf("patch changed more than the title: %+v", updated)
	}

	if _, err := s.UpdateProject(ctx, uuid.NewString(), data.ProjectPatch{Title: &title}); !errors.Is(err, errors.NotFound) {
		t.Fatalf("expected NotFound for absent id, got %v", err)
	}
	if _, err := s.GetProject(ctx, "not-a-uuid"); !errors.Is(err, errors.NotFound) {
		t.Fatalf("expected NotFound for malformed id, got %v", err)
	}

	if err := s.DeleteProject(ctx, older.ID); err != nil {
		t.Fatalf("DeleteProject failed: %v", err)
	}
	if err := s.DeleteProject(ctx, older.ID); !errors.Is(err, errors.NotFound) {
		t.Fatalf("expected NotFound on second delete, got %v", err)
	}
}

func TestMessagesBatchDelete(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	var ids []string
	for _, name := range []string{"a", "b", "c"} {
		m, err := s.CreateMessage(ctx, data.NewMessage{Name: name, Email: name + "@x.com", Message: "hi"})
		if err != nil {
			t.Fatalf("CreateMessage failed: %v", err)
		}
		ids = append(ids, m.ID)
	}

	absent := uuid.NewString()
	res, err := s.DeleteMessages(ctx, []string{ids[0], ids[0], absent, "junk"})
	if err != nil {
		t.Fatalf("DeleteMessages failed: %v", err)
	}
	if res.Deleted != 1 || len(res.Missing) != 2 {
		t.Fatalf("unexpected result %+v", res)
	}

	res, err = s.DeleteMessages(ctx, nil)
	if err != nil {
		t.Fatalf("DeleteMessages(all) failed: %v", err)
	}
	if res.Deleted != 2 {
		t.Fatalf("expected 2 cleared, got %+v", res)
	}
	list, err := s.ListMessages(ctx)
	if err != nil || len(list) != 0 {
		t.Fatalf("expected empty inbox, got %v %v", list, err)
	}
}

func TestSettingsUpsertMerges(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	if _, err := s.GetSettings(ctx); !errors.Is(err, errors.NotFound) {
		t.Fatalf("expected NotFound before first write, got %v", err)
	}

	first, err := data.ParseSettingsUpdate([]byte(`{"designerName":"Ada","skills":["Type"]}`))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.UpsertSettings(ctx, first); err != nil {
		t.Fatalf("UpsertSettings failed: %v", err)
	}

	second, err := data.ParseSettingsUpdate([]byte(`{"heroHeading":"Hello"}`))
	if err != nil {
		t.Fatal(err)
	}
	got, err := s.UpsertSettings(ctx, second)
	if err != nil {
		t.Fatalf("UpsertSettings failed: %v", err)
	}
	if got.DesignerName != "Ada" || got.HeroHeading != "Hello" || len(got.Skills) != 1 {
		t.Fatalf("fields were not merged: %+v", got)
	}

	var count int64
	s.db.Model(&settingsRow{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected a single settings row, got %d", count)
	}
}

func TestNewIDIsTimeOrdered(t *testing.T) {
	prev := newID()
	for i := 0; i < 1000; i++ {
		id := newID()
		if id <= prev {
			t.Fatalf("id %s not after %s", id, prev)
		}
		prev = id
	}
}

func TestProjectsSameMillisecondOrder(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	s.now = func() int64 { return 1000 }

	var ids []string
	for _, title := range []string{"a", "b", "c"} {
		p, err := s.CreateProject(ctx, data.NewProject{Title: title, Category: data.CategoryBranding, ImageURL: "https://img.example/x.jpg"})
		if err != nil {
			t.Fatalf("CreateProject failed: %v", err)
		}
		ids = append(ids, p.ID)
	}
	list, err := s.ListProjects(ctx)
	if err != nil {
		t.Fatalf("ListProjects failed: %v", err)
	}
	for i, p := range list {
		if want := ids[len(ids)-1-i]; p.ID != want {
			t.Fatalf("position %d: got %s, want %s", i, p.ID, want)
		}
	}
}
