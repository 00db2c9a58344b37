package guide

import (
	"strings"

	"charm.land/lipgloss/v2"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/abhisek/learnpb/internal/ui/theme"
)

var (
	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Primary).
			MarginTop(1)

	subTopicStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Secondary)

	proseStyle = lipgloss.NewStyle().
			Foreground(theme.Text)

	bulletStyle = lipgloss.NewStyle().
			Foreground(theme.TextDim)
)

// Render projects a sanitized guide fragment onto the terminal as styled
// text wrapped to width. It is a pure function of its inputs; malformed
// fragments degrade to whatever text the parser recovers rather than
// erroring.
func Render(fragment string, width int) string {
	if width < 20 {
		width = 20
	}

	nodes, err := html.ParseFragment(strings.NewReader(fragment), &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	})
	if err != nil {
		return proseStyle.Width(width).Render(fragment)
	}

	var blocks []string
	for _, n := range nodes {
		renderBlock(n, width, &blocks)
	}
	return strings.Join(blocks, "\n\n")
}

func renderBlock(n *html.Node, width int, blocks *[]string) {
	if n.Type != html.ElementNode {
		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				*blocks = append(*blocks, proseStyle.Width(width).Render(text))
			}
		}
		return
	}

	switch n.Data {
	case "h2":
		*blocks = append(*blocks, sectionStyle.Width(width).Render(inlineText(n)))
	case "h3":
		*blocks = append(*blocks, subTopicStyle.Width(width).Render(inlineText(n)))
	case "p":
		if text := inlineText(n); text != "" {
			*blocks = append(*blocks, proseStyle.Width(width).Render(text))
		}
	case "ul":
		var items []string
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && c.Data == "li" {
				item := bulletStyle.Render("• ") + inlineText(c)
				items = append(items, proseStyle.Width(width-2).Render(item))
			}
		}
		if len(items) > 0 {
			*blocks = append(*blocks, strings.Join(items, "\n"))
		}
	case "pre":
		code := rawText(n)
		code = strings.Trim(code, "\n")
		if code != "" {
			*blocks = append(*blocks, theme.CodeBlock.Width(width).Render(code))
		}
	default:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			renderBlock(c, width, blocks)
		}
	}
}

// inlineText flattens a node's children to plain text, styling inline code
// spans and collapsing whitespace runs.
func inlineText(n *html.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch {
		case c.Type == html.TextNode:
			b.WriteString(collapseSpace(c.Data))
		case c.Type == html.ElementNode && c.Data == "code":
			b.WriteString(theme.InlineCode.Render(rawText(c)))
		case c.Type == html.ElementNode:
			b.WriteString(inlineText(c))
		}
	}
	return strings.TrimSpace(b.String())
}

// rawText flattens a subtree to text verbatim, preserving whitespace.
func rawText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c)
	}
	return b.String()
}

func collapseSpace(s string) string {
	fields := strings.Fields(s)
	joined := strings.Join(fields, " ")
	if len(s) > 0 {
		if r := s[0]; r == ' ' || r == '\n' || r == '\t' {
			joined = " " + joined
		}
		if r := s[len(s)-1]; r == ' ' || r == '\n' || r == '\t' {
			joined = joined + " "
		}
	}
	return joined
}
