package metadata

import (
	"html"
	"io"
	"net/url"
	"slices"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	nethtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var (
	titleMetaKeys       = []string{"og:title", "twitter:title", "title"}
	descriptionMetaKeys = []string{"description", "og:description", "twitter:description"}
	iconRels            = []string{"icon", "shortcut icon", "apple-touch-icon", "apple-touch-icon-precomposed"}

	// Page-supplied text is shown verbatim in the UI; strip any markup.
	textPolicy = bluemonday.StrictPolicy()
)

// page holds the raw head elements collected in document order.
type page struct {
	metas []*nethtml.Node
	links []*nethtml.Node
	title string
}

// Parse extracts metadata from an HTML document served at pageURL.
// Missing values fall back to the URL-derived domain and favicon service.
func Parse(r io.Reader, pageURL string) (*Metadata, error) {
	doc, err := nethtml.Parse(r)
	if err != nil {
		return nil, err
	}

	p := &page{}
	p.collect(doc)

	m := fallback(pageURL, timeNow())
	m.Fallback = false

	if t := p.meta(titleMetaKeys); t != "" {
		m.Title = t
	} else if p.title != "" {
		m.Title = p.title
	}
	m.Description = p.meta(descriptionMetaKeys)
	if icon := p.icon(pageURL); icon != "" {
		m.IconURL = icon
	}

	return m, nil
}

func (p *page) collect(n *nethtml.Node) {
	if n.Type == nethtml.ElementNode {
		switch n.DataAtom {
		case atom.Meta:
			p.metas = append(p.metas, n)
		case atom.Link:
			p.links = append(p.links, n)
		case atom.Title:
			if p.title == "" {
				p.title = cleanText(textContent(n))
			}
			return
		case atom.Script, atom.Style:
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		p.collect(c)
	}
}

// meta returns the content of the first meta tag, in document order,
// whose property or name is one of keys.
func (p *page) meta(keys []string) string {
	for _, n := range p.metas {
		key := getAttr(n, "property")
		if key == "" {
			key = getAttr(n, "name")
		}
		content := cleanText(getAttr(n, "content"))
		if key == "" || content == "" {
			continue
		}
		if slices.Contains(keys, strings.ToLower(key)) {
			return content
		}
	}
	return ""
}

// icon returns the first icon link resolved against pageURL.
func (p *page) icon(pageURL string) string {
	base, err := url.Parse(pageURL)
	if err != nil {
		return ""
	}
	for _, n := range p.links {
		rel := strings.ToLower(strings.TrimSpace(getAttr(n, "rel")))
		href := strings.TrimSpace(getAttr(n, "href"))
		if rel == "" || href == "" {
			continue
		}
		isIcon := slices.ContainsFunc(iconRels, func(candidate string) bool {
			return strings.Contains(rel, candidate)
		})
		if !isIcon {
			continue
		}
		ref, err := url.Parse(href)
		if err != nil {
			continue
		}
		return base.ResolveReference(ref).String()
	}
	return ""
}

// cleanText removes markup, decodes entities and collapses whitespace.
func cleanText(s string) string {
	if s == "" {
		return ""
	}
	s = html.UnescapeString(textPolicy.Sanitize(s))
	return strings.Join(strings.Fields(s), " ")
}

func textContent(n *nethtml.Node) string {
	var b strings.Builder
	var walk func(*nethtml.Node)
	walk = func(n *nethtml.Node) {
		if n.Type == nethtml.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// getAttr returns the value of an attribute, case-insensitive.
func getAttr(n *nethtml.Node, key string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return a.Val
		}
	}
	return ""
}
