package report

import (
	"io"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// HTML renders each result set as a <table> whose caption is the query text.
type HTML struct {
	w     io.Writer
	table *html.Node
}

var _ Sink = (*HTML)(nil)

// NewHTML returns an HTML sink writing to w.
func NewHTML(w io.Writer) *HTML {
	return &HTML{w: w}
}

func element(a atom.Atom, children ...*html.Node) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	for _, c := range children {
		n.AppendChild(c)
	}
	return n
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func (h *HTML) Begin(title string, columns []string) error {
	head := element(atom.Tr)
	for _, c := range columns {
		head.AppendChild(element(atom.Th, text(c)))
	}
	h.table = element(atom.Table,
		element(atom.Caption, text(title)),
		element(atom.Thead, head),
		element(atom.Tbody),
	)
	return nil
}

func (h *HTML) Row(values []Value) error {
	tr := element(atom.Tr)
	for _, v := range values {
		tr.AppendChild(element(atom.Td, text(v.String())))
	}
	h.table.LastChild.AppendChild(tr)
	return nil
}

func (h *HTML) End() error {
	if err := html.Render(h.w, h.table); err != nil {
		return err
	}
	h.table = nil
	_, err := io.WriteString(h.w, "\n")
	return err
}

func (h *HTML) Close() error { return nil }
