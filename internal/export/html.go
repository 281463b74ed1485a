package export

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/law-makers/stageradar/pkg/models"
)

const title = "Internship listings"

// tableNode builds the <table> element for table. Real links become anchors.
func tableNode(table *models.Table) *html.Node {
	tbl := element(atom.Table)

	thead := element(atom.Thead)
	headRow := element(atom.Tr)
	for _, c := range columnsOf(table) {
		headRow.AppendChild(cell(atom.Th, c))
	}
	thead.AppendChild(headRow)
	tbl.AppendChild(thead)

	tbody := element(atom.Tbody)
	for _, rec := range table.Records {
		tr := element(atom.Tr)
		values := rec.Values()
		for i, v := range values {
			td := cell(atom.Td, "")
			if i == len(values)-1 && isLink(v) {
				a := element(atom.A)
				a.Attr = []html.Attribute{{Key: "href", Val: v}}
				a.AppendChild(text(v))
				td.AppendChild(a)
			} else {
				td.AppendChild(text(v))
			}
			tr.AppendChild(td)
		}
		tbody.AppendChild(tr)
	}
	tbl.AppendChild(tbody)
	return tbl
}

func encodeHTML(table *models.Table) ([]byte, error) {
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	root := element(atom.Html)
	root.Attr = []html.Attribute{{Key: "lang", Val: "fr"}}
	head := element(atom.Head)
	meta := element(atom.Meta)
	meta.Attr = []html.Attribute{{Key: "charset", Val: "utf-8"}}
	head.AppendChild(meta)
	head.AppendChild(cell(atom.Title, title))
	root.AppendChild(head)

	body := element(atom.Body)
	body.AppendChild(tableNode(table))
	root.AppendChild(body)
	doc.AppendChild(root)

	var buf bytes.Buffer
	if err := html.Render(&buf, doc); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func element(a atom.Atom) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
}

func cell(a atom.Atom, s string) *html.Node {
	n := element(a)
	if s != "" {
		n.AppendChild(text(s))
	}
	return n
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func isLink(v string) bool {
	return strings.HasPrefix(v, "http://") || strings.HasPrefix(v, "https://")
}
