package convert

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/yaklabco/gdocmark/pkg/docops"
)

// htmlRule rewrites one element into its Markdown surface syntax.
type htmlRule struct {
	pattern     *regexp.Regexp
	replacement string
}

func rule(pattern, replacement string) htmlRule {
	return htmlRule{pattern: regexp.MustCompile(pattern), replacement: replacement}
}

// elementRule matches <name ...>content</name> non-greedily on one line.
func elementRule(name, replacement string) htmlRule {
	return rule(`(?i)<`+name+`(?:\s[^>]*)?>(.*?)</`+name+`\s*>`, replacement)
}

//nolint:gochecknoglobals // Compiled once, read-only.
var (
	orderedList = regexp.MustCompile(`(?is)<ol(?:\s[^>]*)?>(.*?)</ol\s*>`)
	listItem    = regexp.MustCompile(`(?i)<li(?:\s[^>]*)?>(.*?)</li\s*>`)
	anyTag      = regexp.MustCompile(`<[^>]*>`)
	entity      = regexp.MustCompile(`&(?:#[0-9]+|#[xX][0-9a-fA-F]+|[A-Za-z][A-Za-z0-9]*);?`)
)

// markdownSyntax lists the characters that would read as Markdown when an
// entity decodes to them. While the HTML text passes through the Markdown
// stages each is held as the private-use rune literalBase+i, which is one
// UTF-16 unit like the character it stands for.
const (
	markdownSyntax = "*~`[]()#>-+."
	literalBase    = '\uE000'
)

func literalRune(r rune) bool {
	return r >= literalBase && r < literalBase+rune(len(markdownSyntax))
}

func protectLiterals(s string) string {
	return strings.Map(func(r rune) rune {
		if i := strings.IndexRune(markdownSyntax, r); i >= 0 {
			return literalBase + rune(i)
		}
		return r
	}, s)
}

func restoreLiterals(s string) string {
	return strings.Map(func(r rune) rune {
		if literalRune(r) {
			return rune(markdownSyntax[r-literalBase])
		}
		return r
	}, s)
}

// decodeEntities decodes character references. With protect set, decoded
// Markdown syntax is held as placeholder runes.
func decodeEntities(s string, protect bool) string {
	return entity.ReplaceAllStringFunc(s, func(ref string) string {
		decoded := html.UnescapeString(ref)
		if protect {
			decoded = protectLiterals(decoded)
		}
		return decoded
	})
}

// htmlRules are applied in order after ordered lists are numbered.
//
//nolint:gochecknoglobals // Read-only lookup table.
var htmlRules = buildHTMLRules()

func buildHTMLRules() []htmlRule {
	rules := make([]htmlRule, 0, 20)
	for level := 1; level <= maxHeadingLevel; level++ {
		name := "h" + strconv.Itoa(level)
		rules = append(rules, elementRule(name, strings.Repeat("#", level)+" $1\n"))
	}
	return append(rules,
		elementRule("strong", "**$1**"),
		elementRule("b", "**$1**"),
		elementRule("em", "*$1*"),
		elementRule("i", "*$1*"),
		elementRule("code", "`$1`"),
		rule(`(?i)<a\s[^>]*?href\s*=\s*["']([^"']*)["'][^>]*>(.*?)</a\s*>`, "[$2]($1)"),
		elementRule("p", "$1\n"),
		rule(`(?i)<br\s*/?>`, "\n"),
		rule(`(?i)<hr(?:\s[^>]*)?/?>`, "---\n"),
		rule(`(?i)</?ul(?:\s[^>]*)?>`, ""),
		rule(`(?i)</?ol(?:\s[^>]*)?>`, ""),
		elementRule("li", "- $1\n"),
		elementRule("blockquote", "> $1\n"),
	)
}

// NormalizeHTML rewrites a restricted HTML subset into Markdown: headings,
// bold, italic, code, links, paragraphs, line breaks, rules, lists and
// blockquotes. Every other tag is dropped and character entities are
// decoded. It is not an HTML parser; nested elements of the same kind and
// elements spanning lines are not guaranteed to survive.
func NormalizeHTML(content string) string {
	return normalizeHTML(content, false)
}

func normalizeHTML(content string, protect bool) string {
	out := numberOrderedLists(content)
	for _, r := range htmlRules {
		out = r.pattern.ReplaceAllString(out, r.replacement)
	}
	out = anyTag.ReplaceAllString(out, "")
	return tidyLines(decodeEntities(out, protect))
}

// convertHTML converts content through the Markdown stages. Characters
// that came from entities stay literal unless content already holds
// placeholder runes.
func convertHTML(content string, start int) (Document, bool) {
	protect := !strings.ContainsFunc(content, literalRune)
	normalized := normalizeHTML(content, protect)
	if normalized == "" {
		return Document{}, false
	}
	doc := convertMarkdown(normalized, start)
	if protect {
		doc.unprotect()
	}
	return doc, true
}

// unprotect swaps placeholder runes back in the text, the blocks and
// link targets. Offsets are unaffected.
func (d *Document) unprotect() {
	d.Text = restoreLiterals(d.Text)
	for i := range d.Blocks {
		d.Blocks[i].Raw = restoreLiterals(d.Blocks[i].Raw)
		d.Blocks[i].Clean = restoreLiterals(d.Blocks[i].Clean)
	}
	for i := range d.Spans {
		if link := d.Spans[i].Character.Link; link != nil {
			d.Spans[i].Character.Link = &docops.Link{URL: restoreLiterals(link.URL)}
		}
	}
}

// numberOrderedLists turns the items of every <ol> into "N. " lines.
func numberOrderedLists(content string) string {
	return orderedList.ReplaceAllStringFunc(content, func(list string) string {
		inner := orderedList.FindStringSubmatch(list)[1]
		n := 0
		return listItem.ReplaceAllStringFunc(inner, func(item string) string {
			n++
			text := listItem.FindStringSubmatch(item)[1]
			return fmt.Sprintf("%d. %s\n", n, text)
		})
	})
}

// tidyLines trims every line and drops blank ones. Whitespace between HTML
// elements is not content; every element that ends a block already ends
// its line.
func tidyLines(content string) string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	lines := strings.Split(content, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			kept = append(kept, trimmed)
		}
	}
	return strings.Join(kept, "\n")
}
