package cssdocs

import (
	"regexp"
	"strings"
)

// PassthroughTags are left unescaped by EscapeTags so the renderer can
// interpret them.
var PassthroughTags = []string{"pre", "code", "tt", "div"}

var (
	tagRe          = regexp.MustCompile(`<(/?)([^>]*)>`)
	externalLinkRe = regexp.MustCompile(`\[((?:https?|ftp|mailto|news|irc):[^\s\]]+)\s+([^\]]+)\]`)
	fragmentLinkRe = regexp.MustCompile(`\[\[(#[^\]|]+)(?:\|([^\]]*))?\]\](\w*)`)
	altAttributeRe = regexp.MustCompile(`\|alt=([^;]*);`)
	entityRe       = regexp.MustCompile(`&\w+;`)
	nonAlnumRe     = regexp.MustCompile(`[^\p{L}\p{N}\s]`)
	vendorPrefixRe = regexp.MustCompile(`^-\w+-.+`)
)

// EscapeTags replaces every angle-bracket tag with its entity-escaped form
// unless its inner text is exactly one of PassthroughTags.
func EscapeTags(text string) string {
	return tagRe.ReplaceAllStringFunc(text, func(match string) string {
		m := tagRe.FindStringSubmatch(match)
		slash, inner := m[1], m[2]
		for _, tag := range PassthroughTags {
			if inner == tag {
				return match
			}
		}
		return "&lt;" + slash + inner + "&gt;"
	})
}

// FixLinks rewrites bracketed external links and [[#fragment]] links into
// anchors. Fragment links resolve against baseURL; word characters directly
// after the closing brackets stay outside the anchor.
func FixLinks(text, baseURL string) string {
	text = externalLinkRe.ReplaceAllString(text, `<a href="$1">$2</a>`)
	return fragmentLinkRe.ReplaceAllStringFunc(text, func(match string) string {
		m := fragmentLinkRe.FindStringSubmatch(match)
		fragment, label, trailing := m[1], m[2], m[3]
		if label == "" {
			label = fragment
		}
		return `<a href="` + baseURL + fragment + `">` + label + `</a>` + trailing
	})
}

// CleanDescription repairs two wikitext artifacts found in value
// descriptions: an image "|alt=...;" attribute is reduced to its label and
// ":{|" is corrected to a table start.
func CleanDescription(text string) string {
	if loc := altAttributeRe.FindStringSubmatchIndex(text); loc != nil {
		text = text[:loc[0]] + "|" + text[loc[2]:loc[3]] + text[loc[1]:]
	}
	return strings.ReplaceAll(text, ":{|", "{|")
}

// SortKey strips entity references and then every character that is not a
// letter, digit or whitespace.
func SortKey(text string) string {
	text = entityRe.ReplaceAllString(text, "")
	return nonAlnumRe.ReplaceAllString(text, "")
}

// IsVendorPrefixed reports whether the last path segment of identifier
// carries a vendor prefix such as -moz- or -webkit-.
func IsVendorPrefixed(identifier string) bool {
	name := identifier[strings.LastIndex(identifier, "/")+1:]
	return vendorPrefixRe.MatchString(name)
}

// NormalizeURL makes a protocol-relative URL absolute when addProtocol is set.
func NormalizeURL(u string, addProtocol bool) string {
	if addProtocol && strings.HasPrefix(u, "//") {
		return "https:" + u
	}
	return u
}

// TrimParagraph removes the leading <p> the renderer puts around a value.
// The closing </p> is removed too unless a second paragraph follows.
func TrimParagraph(html string) string {
	if !strings.HasPrefix(html, "<p>") {
		return html
	}
	html = strings.TrimPrefix(html, "<p>")
	trimmed := strings.TrimRight(html, "\n")
	if strings.HasSuffix(trimmed, "</p>") && !strings.Contains(trimmed, "<p>") {
		return strings.TrimSuffix(trimmed, "</p>")
	}
	return html
}
