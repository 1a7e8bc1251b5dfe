// Package render turns class descriptions into the Markdown API section.
package render

import (
	"sort"
	"strings"

	"github.com/QTest-hq/classdoc/internal/extractor"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Class renders the Markdown fragment for one class:
//
//	### {title}
//	{description}
//	#### Constructor
//	- `{constructor}`: {description}
//	#### Properties / #### Accessors / #### Methods
//
// Member sections list entries sorted by name and collapse to a single blank
// line when the class has no such members.
func Class(desc *extractor.ClassDescription) string {
	var b strings.Builder

	b.WriteString("### " + desc.Title + "\n")
	b.WriteString(description(desc.Description))

	b.WriteString("#### Constructor\n")
	if desc.Constructor.Title != "" {
		b.WriteString(listItem(desc.Constructor.Title, desc.Constructor.Description))
	} else {
		b.WriteString("\n")
	}

	b.WriteString(section("Properties", desc.Properties))
	b.WriteString(section("Accessors", desc.Accessors))
	b.WriteString(section("Methods", desc.Methods))

	return b.String()
}

// SortedNames returns the member names in case- and accent-insensitive order
func SortedNames(members map[string]extractor.MemberRecord) []string {
	names := make([]string, 0, len(members))
	for name := range members {
		names = append(names, name)
	}

	col := collate.New(language.Und, collate.IgnoreCase, collate.IgnoreDiacritics)
	sort.Slice(names, func(i, j int) bool {
		if c := col.CompareString(names[i], names[j]); c != 0 {
			return c < 0
		}
		return names[i] < names[j]
	})

	return names
}

func section(heading string, members map[string]extractor.MemberRecord) string {
	if len(members) == 0 {
		return "\n"
	}

	var b strings.Builder
	b.WriteString("#### " + heading + "\n")
	for _, name := range SortedNames(members) {
		m := members[name]
		b.WriteString(listItem(m.Title, m.Description))
	}
	b.WriteString("\n")
	return b.String()
}

func description(text *string) string {
	if text == nil {
		return "\n"
	}
	return *text + "\n"
}

// listItem renders "- `title`: description" on one line
func listItem(title string, text *string) string {
	line := "- " + code(title) + ":"
	if text != nil && *text != "" {
		line += " " + oneLine(*text)
	}
	return line + "\n"
}

// code wraps s in an inline code span, widening the fence when s contains backticks
func code(s string) string {
	if !strings.Contains(s, "`") {
		return "`" + s + "`"
	}
	return "`` " + s + " ``"
}

func oneLine(s string) string {
	lines := strings.Split(s, "\n")
	parts := make([]string, 0, len(lines))
	for _, l := range lines {
		if l = strings.TrimSpace(l); l != "" {
			parts = append(parts, l)
		}
	}
	return strings.Join(parts, " ")
}
