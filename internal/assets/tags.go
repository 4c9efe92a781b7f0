package assets

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// StylesheetTag renders <link rel="stylesheet" href="href"/>.
func StylesheetTag(href string) (string, error) {
	return renderElement(atom.Link, html.Attribute{Key: "rel", Val: "stylesheet"}, html.Attribute{Key: "href", Val: href})
}

// ScriptTag renders <script src="src"></script>.
func ScriptTag(src string) (string, error) {
	return renderElement(atom.Script, html.Attribute{Key: "src", Val: src})
}

func renderElement(a atom.Atom, attrs ...html.Attribute) (string, error) {
	n := &html.Node{
		Type:     html.ElementNode,
		DataAtom: a,
		Data:     a.String(),
		Attr:     attrs,
	}
	var sb strings.Builder
	if err := html.Render(&sb, n); err != nil {
		return "", err
	}
	return sb.String(), nil
}
