package data

import (
	"strings"
	"testing"

	"github.com/juju/errors"
)

func TestValidateNewProject(t *testing.T) {
	ok := NewProject{Title: "Poster", Category: CategoryBranding, ImageURL: "data:image/jpeg;base64,AA==", ObjectPosition: PositionTopLeft}
	if err := Validate(ok); err != nil {
		t.Fatalf("valid project rejected: %v", err)
	}

	noPosition := NewProject{Title: "Poster", Category: CategoryUIUX, ImageURL: "https://img.example/p.jpg"}
	if err := Validate(noPosition); err != nil {
		t.Fatalf("empty position should be allowed: %v", err)
	}

	bad := NewProject{Title: "Poster", Category: "Sculpture", ObjectPosition: "middle"}
	err := Validate(bad)
	if !errors.Is(err, errors.NotValid) {
		t.Fatalf("expected NotValid, got %v", err)
	}
	if !strings.Contains(err.Error(), "category") || !strings.Contains(err.Error(), "objectPosition") {
		t.Fatalf("error should name both fields: %v", err)
	}

	for _, img := range []string{"", "   "} {
		err := Validate(NewProject{Title: "Poster", Category: CategoryBranding, ImageURL: img})
		if !errors.Is(err, errors.NotValid) || !strings.Contains(err.Error(), "imageUrl") {
			t.Fatalf("image %q: expected imageUrl NotValid, got %v", img, err)
		}
	}
}

func TestValidateProjectPatch(t *testing.T) {
	cat := Category("Logo Design")
	if err := Validate(ProjectPatch{Category: &cat}); err != nil {
		t.Fatalf("valid patch rejected: %v", err)
	}
	bad := Category("logo")
	if err := Validate(ProjectPatch{Category: &bad}); !errors.Is(err, errors.NotValid) {
		t.Fatalf("expected NotValid, got %v", err)
	}
	if err := Validate(ProjectPatch{}); err != nil {
		t.Fatalf("empty patch rejected: %v", err)
	}
}

func TestValidateNewMessage(t *testing.T) {
	if err := Validate(NewMessage{Name: "A", Email: "a@x.com", Message: "hi"}); err != nil {
		t.Fatalf("valid message rejected: %v", err)
	}
	err := Validate(NewMessage{Name: "", Email: "not-an-email", Message: "hi"})
	if !errors.Is(err, errors.NotValid) {
		t.Fatalf("expected NotValid, got %v", err)
	}
	if !strings.Contains(err.Error(), "name") || !strings.Contains(err.Error(), "email") {
		t.Fatalf("error should name fields: %v", err)
	}
}

func TestBlankMessageFields(t *testing.T) {
	blank := NewMessage{Name: "  ", Email: "a@x.com", Message: "\n\t"}
	err := Validate(blank)
	if !errors.Is(err, errors.NotValid) || !strings.Contains(err.Error(), "name") || !strings.Contains(err.Error(), "message") {
		t.Fatalf("expected blank name and message rejected, got %v", err)
	}

	bell := NewMessage{Name: "Ann", Email: "a@x.com", Message: "\a"}.Normalize()
	if bell.Message != "" || Validate(bell) == nil {
		t.Fatalf("control-only message should normalize to blank and fail: %+v", bell)
	}

	n := NewMessage{Name: " Ann \t Lee ", Email: " Ann@X.COM ", Message: " hi\n"}.Normalize()
	if n.Name != "Ann Lee" || n.Email != "ann@x.com" || n.Message != "hi" {
		t.Fatalf("unexpected normalized message %+v", n)
	}
}

func TestCategoryAndPosition(t *testing.T) {
	for _, c := range Categories {
		if !c.Valid() {
			t.Fatalf("%q should be valid", c)
		}
	}
	if len(Positions) != 9 {
		t.Fatalf("expected nine anchors, got %d", len(Positions))
	}
	if Position("").OrDefault() != PositionCenter {
		t.Fatal("empty position should default to center")
	}
}
