package prereq

import (
	"strings"
)

// Heading and Intro are the fixed parts of the rendered box.
const (
	Heading = "Prerequisites"
	Intro   = "This how-to guide assumes you have:"
)

var mdEscaper = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	"*", `\*`,
	"_", `\_`,
	"[", `\[`,
	"]", `\]`,
	"<", `\<`,
)

// Markdown renders the item as inline Markdown.
func (i Item) Markdown() string {
	var b strings.Builder
	writeMarkdown(&b, i.Inlines)
	return b.String()
}

func writeMarkdown(b *strings.Builder, inlines []Inline) {
	for _, in := range inlines {
		switch v := in.(type) {
		case Text:
			b.WriteString(mdEscaper.Replace(v.Value))
		case Code:
			fence := "`"
			for strings.Contains(v.Value, fence) {
				fence += "`"
			}
			pad := ""
			if strings.HasPrefix(v.Value, "`") || strings.HasSuffix(v.Value, "`") {
				pad = " "
			}
			b.WriteString(fence + pad + v.Value + pad + fence)
		case Emphasis:
			marker := strings.Repeat("*", max(v.Level, 1))
			b.WriteString(marker)
			writeMarkdown(b, v.Children)
			b.WriteString(marker)
		case Link:
			b.WriteByte('[')
			writeMarkdown(b, v.Children)
			b.WriteString("](")
			b.WriteString(v.Destination)
			if v.Title != "" {
				b.WriteString(` "`)
				b.WriteString(strings.ReplaceAll(v.Title, `"`, `\"`))
				b.WriteByte('"')
			}
			b.WriteByte(')')
		}
	}
}

// Markdown renders the block as a Docusaurus "info" admonition.
func (b Block) Markdown() string {
	var sb strings.Builder
	sb.WriteString(":::info " + Heading + "\n\n")
	sb.WriteString(Intro + "\n\n")
	for _, it := range b.Items {
		sb.WriteString("- ")
		sb.WriteString(it.Markdown())
		sb.WriteByte('\n')
	}
	sb.WriteString("\n:::\n")
	return sb.String()
}
