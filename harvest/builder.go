package harvest

import (
	"fmt"
	"strings"

	"github.com/fwojciec/cssdocs"
)

// Builder merges ask API results into a cssdocs.Document.
type Builder struct {
	Renderer cssdocs.Renderer

	// Converter, if set, converts every rendered fragment to Markdown.
	Converter cssdocs.Converter

	Options cssdocs.Options
}

// MergeStats counts the entries of one response.
type MergeStats struct {
	Merged  int
	Skipped int
}

// MergeProperties inserts a property for every entry with a non-empty
// summary. Vendor-prefixed entries are skipped when ExcludeVendorPrefixed
// is set. An existing property with the same key is replaced.
func (b *Builder) MergeProperties(doc *cssdocs.Document, results *cssdocs.QueryResults) (MergeStats, error) {
	var stats MergeStats
	for _, e := range results.Entries {
		if b.Options.ExcludeVendorPrefixed && cssdocs.IsVendorPrefixed(e.Key) {
			stats.Skipped++
			continue
		}
		summary := e.First(cssdocs.PrintoutSummary)
		if summary == "" {
			stats.Skipped++
			continue
		}

		url := cssdocs.NormalizeURL(e.FullURL, b.Options.AddProtocol)
		html, err := b.render(summary, url, false)
		if err != nil {
			return stats, fmt.Errorf("render summary of %q: %w", e.Key, err)
		}

		doc.Put(b.key(e.Key), &cssdocs.Property{
			Summary: html,
			URL:     url,
		})
		stats.Merged++
	}
	return stats, nil
}

// MergeValues appends a value to its owning property. The owner is the
// part of the entry key before "#". Entries without a value or whose owner
// is not in doc are skipped.
func (b *Builder) MergeValues(doc *cssdocs.Document, results *cssdocs.QueryResults) (MergeStats, error) {
	var stats MergeStats
	for _, e := range results.Entries {
		text := e.First(cssdocs.PrintoutPropertyValue)
		if text == "" {
			stats.Skipped++
			continue
		}
		prop, ok := doc.Get(b.key(OwnerKey(e.Key)))
		if !ok {
			stats.Skipped++
			continue
		}

		v := &cssdocs.Value{}
		if desc := e.First(cssdocs.PrintoutValueDescription); desc != "" {
			html, err := b.render(cssdocs.CleanDescription(desc), prop.URL, false)
			if err != nil {
				return stats, fmt.Errorf("render description of %q: %w", e.Key, err)
			}
			v.Description = html
		}
		html, err := b.render(text, prop.URL, true)
		if err != nil {
			return stats, fmt.Errorf("render value of %q: %w", e.Key, err)
		}
		v.Value = html

		prop.Values = append(prop.Values, v)
		stats.Merged++
	}
	return stats, nil
}

// OwnerKey returns the property identifier a value entry belongs to.
func OwnerKey(key string) string {
	if i := strings.Index(key, "#"); i >= 0 {
		return key[:i]
	}
	return key
}

func (b *Builder) key(id string) string {
	if b.Options.LowercaseKeys {
		return strings.ToLower(id)
	}
	return id
}

// render escapes, renders and link-fixes markup. Links resolve against base.
func (b *Builder) render(markup, base string, trimParagraph bool) (string, error) {
	html, err := b.Renderer.Render(cssdocs.EscapeTags(markup))
	if err != nil {
		return "", err
	}
	if trimParagraph {
		html = cssdocs.TrimParagraph(html)
	}
	html = cssdocs.FixLinks(html, base)
	if b.Converter == nil || strings.TrimSpace(html) == "" {
		return html, nil
	}
	return b.Converter.Convert(html)
}
