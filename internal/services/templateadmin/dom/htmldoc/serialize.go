package htmldoc

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
)

// Text nodes are serialized the way browsers do for innerHTML: only &, <, >
// and no-break spaces are escaped. html.Render also escapes quotes, which
// would change the bytes the console receives for schema text.
var textEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"\u00a0", "&nbsp;",
)

// rawTextParents hold text that browsers serialize verbatim.
var rawTextParents = map[string]bool{
	"script":    true,
	"style":     true,
	"xmp":       true,
	"iframe":    true,
	"noembed":   true,
	"noframes":  true,
	"plaintext": true,
}

func writeMarkup(buf *bytes.Buffer, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		if n.Parent != nil && rawTextParents[n.Parent.Data] {
			buf.WriteString(n.Data)
			return
		}
		buf.WriteString(textEscaper.Replace(n.Data))
	case html.ElementNode:
		buf.WriteByte('<')
		buf.WriteString(n.Data)
		for _, a := range n.Attr {
			buf.WriteByte(' ')
			if a.Namespace != "" {
				buf.WriteString(a.Namespace)
				buf.WriteByte(':')
			}
			buf.WriteString(a.Key)
			buf.WriteString(`="`)
			buf.WriteString(attrEscaper.Replace(a.Val))
			buf.WriteByte('"')
		}
		buf.WriteByte('>')
		if voidElements[n.Data] {
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			writeMarkup(buf, c)
		}
		buf.WriteString("</")
		buf.WriteString(n.Data)
		buf.WriteByte('>')
	default:
		_ = html.Render(buf, n)
	}
}

var attrEscaper = strings.NewReplacer(
	"&", "&amp;",
	"\"", "&quot;",
	"\u00a0", "&nbsp;",
)

var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"source": true, "track": true, "wbr": true,
}
