package data

import (
	"testing"

	"github.com/juju/errors"
)

func TestWithDefaultsNil(t *testing.T) {
	got := WithDefaults(nil)
	want := DefaultSettings()
	if got.DesignerName != want.DesignerName || len(got.Services) != len(want.Services) {
		t.Fatalf("WithDefaults(nil) did not return defaults: %+v", got)
	}
}

func TestWithDefaultsFieldByField(t *testing.T) {
	stored := &SiteSettings{
		HeroHeading: "Motion & Brand",
		Stats:       []Stat{{Label: "Clients", Value: "40"}},
		SocialLinks: &SocialLinks{Instagram: "https://instagram.com/me"},
	}
	got := WithDefaults(stored)

	if got.HeroHeading != "Motion & Brand" {
		t.Fatalf("stored heading lost: %q", got.HeroHeading)
	}
	if got.HeroSubtext != DefaultSettings().HeroSubtext {
		t.Fatalf("unset field not defaulted: %q", got.HeroSubtext)
	}
	if len(got.Stats) != 1 || got.Stats[0].Value != "40" {
		t.Fatalf("stored stats lost: %+v", got.Stats)
	}
	if len(got.Services) != 6 {
		t.Fatalf("expected default services, got %d", len(got.Services))
	}
	if got.SocialLinks.Instagram != "https://instagram.com/me" {
		t.Fatalf("stored link lost: %q", got.SocialLinks.Instagram)
	}
	if got.SocialLinks.X != PlaceholderLink {
		t.Fatalf("missing link should be placeholder, got %q", got.SocialLinks.X)
	}
}

func TestWithDefaultsDoesNotShareDefaults(t *testing.T) {
	a := WithDefaults(nil)
	a.SocialLinks.X = "changed"
	if b := WithDefaults(nil); b.SocialLinks.X != PlaceholderLink {
		t.Fatal("defaults were mutated through a previous result")
	}
}

func TestParseSettingsUpdatePresentFieldsOnly(t *testing.T) {
	body := []byte(`{"heroHeading":"New","aboutText":"","unknownKey":1}`)
	u, err := ParseSettingsUpdate(body)
	if err != nil {
		t.Fatalf("ParseSettingsUpdate: %v", err)
	}
	set := u.Set()
	if len(u.Fields) != 2 || len(set) != 2 {
		t.Fatalf("unexpected fields %v", u.Fields)
	}
	if set["heroHeading"] != "New" {
		t.Fatalf("heroHeading = %v", set["heroHeading"])
	}
	if v, ok := set["aboutText"]; !ok || v != "" {
		t.Fatalf("explicit empty aboutText must be written, got %v (present=%v)", v, ok)
	}
	if _, ok := set["designerName"]; ok {
		t.Fatal("absent field must not be written")
	}
}

func TestParseSettingsUpdateAssignsServiceIDs(t *testing.T) {
	body := []byte(`{"services":[{"title":"Motion"},{"id":"keep","number":"09","title":"Print"}]}`)
	u, err := ParseSettingsUpdate(body)
	if err != nil {
		t.Fatalf("ParseSettingsUpdate: %v", err)
	}
	svcs := u.Values.Services
	if svcs[0].ID == "" || svcs[0].Number != "01" {
		t.Fatalf("first service not filled in: %+v", svcs[0])
	}
	if svcs[1].ID != "keep" || svcs[1].Number != "09" {
		t.Fatalf("second service rewritten: %+v", svcs[1])
	}
}

func TestParseSettingsUpdateRejects(t *testing.T) {
	for name, body := range map[string]string{
		"not an object": `[1,2]`,
		"wrong type":    `{"stats":"lots"}`,
		"bad email":     `{"contactEmail":"nope"}`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ParseSettingsUpdate([]byte(body))
			if !errors.Is(err, errors.NotValid) {
				t.Fatalf("expected NotValid, got %v", err)
			}
		})
	}
}

func TestApplyMergesFields(t *testing.T) {
	current := SiteSettings{DesignerName: "A", FooterText: "bye"}
	u, err := ParseSettingsUpdate([]byte(`{"designerName":"B","skills":["x"]}`))
	if err != nil {
		t.Fatal(err)
	}
	got := current.Apply(u)
	if got.DesignerName != "B" || got.FooterText != "bye" || len(got.Skills) != 1 {
		t.Fatalf("Apply = %+v", got)
	}
}
