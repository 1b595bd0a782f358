// Package i18n resolves dotted translation keys against embedded locale tables.
package i18n

import (
	"embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var locales embed.FS

// Catalog is a loaded locale table. Lookups never fail: unresolved keys
// come back unchanged.
type Catalog struct {
	locale string
	tree   map[string]any
	days   []string
}

func Load(locale string) (*Catalog, error) {
	payload, err := locales.ReadFile("locales/" + locale + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("unknown locale %q: %w", locale, err)
	}
	tree := map[string]any{}
	if err := yaml.Unmarshal(payload, &tree); err != nil {
		return nil, fmt.Errorf("decode locale %s: %w", locale, err)
	}
	c := &Catalog{locale: locale, tree: tree}
	if raw, ok := tree["days"].([]any); ok {
		for _, d := range raw {
			c.days = append(c.days, fmt.Sprint(d))
		}
	}
	return c, nil
}

// MustLoad is Load for the built-in locales, which are known to parse.
func MustLoad(locale string) *Catalog {
	c, err := Load(locale)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Catalog) Locale() string { return c.locale }

func (c *Catalog) Translate(key string) string {
	var current any = c.tree
	for _, part := range strings.Split(key, ".") {
		node, ok := current.(map[string]any)
		if !ok {
			return key
		}
		current, ok = node[part]
		if !ok {
			return key
		}
	}
	if s, ok := current.(string); ok {
		return s
	}
	return key
}

func (c *Catalog) DayName(dayIndex int) string {
	if len(c.days) == 0 {
		return fmt.Sprintf("day %d", dayIndex)
	}
	n := len(c.days)
	return c.days[((dayIndex%n)+n)%n]
}
