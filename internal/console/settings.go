package console

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/juju/errors"
	"gopkg.in/yaml.v3"

	"github.com/PaulBabatuyi/portfolio-cms/internal/data"
)

// structuredFields take a YAML or JSON value rather than plain text.
var structuredFields = map[string]bool{
	"skills":      true,
	"services":    true,
	"stats":       true,
	"socialLinks": true,
}

// SettingsField turns a "settings set" argument into a one-field update
// body. Text fields take raw as is; list and object fields parse raw as
// YAML (so JSON works too), and skills also accepts a comma list.
func SettingsField(field, raw string) (map[string]any, error) {
	if !slices.Contains(data.SettingsFields, field) {
		return nil, errors.NotValidf("settings field %q (want one of %s)", field, strings.Join(data.SettingsFields, ", "))
	}
	var value any = raw
	if structuredFields[field] {
		var parsed any
		if err := yaml.Unmarshal([]byte(raw), &parsed); err != nil {
			return nil, errors.NewNotValid(err, fmt.Sprintf("%s value", field))
		}
		value = parsed
		if s, ok := parsed.(string); ok && field == "skills" {
			value = splitSkills(s)
		}
	}
	body := map[string]any{field: value}

	// run the server's parser so type mistakes fail before the request
	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, errors.NewNotValid(err, fmt.Sprintf("%s value", field))
	}
	if _, err := data.ParseSettingsUpdate(encoded); err != nil {
		return nil, err
	}
	return body, nil
}

func splitSkills(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// WriteSettingsYAML prints settings as YAML keyed by wire name. Inline
// images are summarised unless full is set.
func WriteSettingsYAML(out io.Writer, s data.SiteSettings, full bool) error {
	values := s.Values()
	if !full && strings.HasPrefix(s.AboutImageURL, "data:") {
		values["aboutImageUrl"] = imageKind(s.AboutImageURL)
	}
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(values); err != nil {
		return errors.Annotate(err, "encoding settings")
	}
	return errors.Trace(enc.Close())
}
