// Package matricial extracts ledger entries from the fixed-position
// HTML reports the management system prints. The reports are a text
// grid rendered as absolutely positioned divs; cell meaning comes from
// the horizontal pixel band a div sits in, not from markup structure.
package matricial

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// Item is one positioned text cell of the report grid.
type Item struct {
	Top  int
	Left int
	Text string
}

var (
	topStyle  = regexp.MustCompile(`(?i)top\s*:\s*([\d.]+)`)
	leftStyle = regexp.MustCompile(`(?i)left\s*:\s*([\d.]+)`)
)

// ExtractItems pulls every absolutely positioned div out of a report
// document, in document order. Divs without a top: style are layout
// chrome and skipped.
func ExtractItems(doc string) ([]Item, error) {
	root, err := html.Parse(strings.NewReader(doc))
	if err != nil {
		return nil, err
	}

	var items []Item
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "div" {
			if style, ok := attr(n, "style"); ok {
				if m := topStyle.FindStringSubmatch(style); m != nil {
					top := roundPixel(m[1])
					left := 0
					if lm := leftStyle.FindStringSubmatch(style); lm != nil {
						left = roundPixel(lm[1])
					}
					items = append(items, Item{
						Top:  top,
						Left: left,
						Text: strings.TrimSpace(textContent(n)),
					})
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return items, nil
}

func attr(n *html.Node, name string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func roundPixel(s string) int {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return int(f + 0.5)
}
