// SPDX-License-Identifier: MPL-2.0

// Package i18n provides the localized report name and description.
//
// Messages live in embedded TOML bundles (bundles/doxygen_<lang>.toml) and are
// addressed by dotted keys such as "report.myreport.name". A locale is matched
// against the available bundles with golang.org/x/text/language; unmatched
// locales and missing keys fall back to English.
package i18n

import (
	"embed"
	"fmt"
	"path"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
)

const (
	// KeyReportName is the bundle key of the report name.
	KeyReportName = "report.myreport.name"
	// KeyReportDescription is the bundle key of the report description.
	KeyReportDescription = "report.myreport.description"
)

//go:embed bundles/*.toml
var bundleFS embed.FS

// supported lists the embedded bundles; the first entry is the fallback.
var supported = []language.Tag{language.English, language.French, language.German}

type (
	// Bundle holds the messages of one language.
	Bundle struct {
		tag      language.Tag
		messages map[string]string
		fallback *Bundle
	}

	catalog struct {
		once    sync.Once
		bundles []*Bundle
		matcher language.Matcher
		err     error
	}
)

var defaultCatalog catalog

// Lookup returns the bundle best matching locale, a BCP 47 tag such as
// "fr-CA". An empty locale selects English.
func Lookup(locale string) (*Bundle, error) {
	tag := language.English
	if locale != "" {
		var err error
		tag, err = language.Parse(locale)
		if err != nil {
			return nil, fmt.Errorf("parse locale %q: %w", locale, err)
		}
	}

	if err := defaultCatalog.load(); err != nil {
		return nil, err
	}
	_, idx, _ := defaultCatalog.matcher.Match(tag)
	return defaultCatalog.bundles[idx], nil
}

// Supported returns the languages with an embedded bundle.
func Supported() []language.Tag {
	out := make([]language.Tag, len(supported))
	copy(out, supported)
	return out
}

// Tag returns the bundle language.
func (b *Bundle) Tag() language.Tag { return b.tag }

// Get returns the message for key, falling back to English and then to key itself.
func (b *Bundle) Get(key string) string {
	for cur := b; cur != nil; cur = cur.fallback {
		if msg, ok := cur.messages[key]; ok {
			return msg
		}
	}
	return key
}

func (c *catalog) load() error {
	c.once.Do(func() {
		c.bundles = make([]*Bundle, 0, len(supported))
		for _, tag := range supported {
			b, err := readBundle(tag)
			if err != nil {
				c.err = err
				return
			}
			if len(c.bundles) > 0 {
				b.fallback = c.bundles[0]
			}
			c.bundles = append(c.bundles, b)
		}
		c.matcher = language.NewMatcher(supported)
	})
	return c.err
}

func readBundle(tag language.Tag) (*Bundle, error) {
	base, _ := tag.Base()
	name := path.Join("bundles", "doxygen_"+base.String()+".toml")

	data, err := bundleFS.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read bundle %s: %w", name, err)
	}

	var tree map[string]any
	if err := toml.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("parse bundle %s: %w", name, err)
	}

	messages := make(map[string]string)
	flatten("", tree, messages)
	return &Bundle{tag: tag, messages: messages}, nil
}

// flatten turns nested TOML tables into dotted keys.
func flatten(prefix string, tree map[string]any, out map[string]string) {
	for k, v := range tree {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case map[string]any:
			flatten(key, val, out)
		case string:
			out[key] = val
		default:
			out[key] = strings.TrimSpace(fmt.Sprint(val))
		}
	}
}
