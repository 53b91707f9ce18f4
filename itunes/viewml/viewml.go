// Package viewml is a read-only query layer over the store's
// view-description documents: the nested layout-container XML
// (ScrollView, MatrixView, TextView, ...) the catalog service emits
// instead of a data format. It is not a general XML DOM; it only keeps
// what the extractors need: tags, attributes, text, and order.
package viewml

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"iter"
	"strings"
)

type Node struct {
	Tag      string
	Children []*Node

	parent *Node
	index  int
	attrs  []xml.Attr
	text   strings.Builder
}

// Parse builds the document tree. The document must have a single root
// element; anything before or after it is ignored.
func Parse(doc []byte) (*Node, error) {
	d := xml.NewDecoder(bytes.NewReader(doc))

	var (
		root *Node
		cur  *Node
	)
	for {
		tok, err := d.Token()
		if nil != err {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to tokenize document: %v", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			n := &Node{
				Tag:    t.Name.Local,
				parent: cur,
				attrs:  append([]xml.Attr(nil), t.Attr...),
			}
			if nil == cur {
				if nil == root {
					root = n
				}
			} else {
				n.index = len(cur.Children)
				cur.Children = append(cur.Children, n)
			}
			cur = n
		case xml.EndElement:
			if nil != cur {
				cur = cur.parent
			}
		case xml.CharData:
			if nil != cur {
				cur.text.Write(t)
			}
		}
	}

	if nil == root {
		return nil, errors.New("document has no root element")
	}
	return root, nil
}

// FirstChild returns the first direct child with the given tag, or nil.
func (n *Node) FirstChild(tag string) *Node {
	for _, c := range n.Children {
		if c.Tag == tag {
			return c
		}
	}
	return nil
}

// LastChild returns the last direct child with the given tag, or nil.
func (n *Node) LastChild(tag string) *Node {
	for i := len(n.Children) - 1; i >= 0; i-- {
		if n.Children[i].Tag == tag {
			return n.Children[i]
		}
	}
	return nil
}

// ChildrenOf returns all direct children with the given tag, in document order.
func (n *Node) ChildrenOf(tag string) []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Tag == tag {
			out = append(out, c)
		}
	}
	return out
}

// Descendants yields every node below n with the given tag, in document
// order. The sequence is finite and restartable; each range starts over.
func (n *Node) Descendants(tag string) iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		n.walkDescendants(tag, yield)
	}
}

func (n *Node) walkDescendants(tag string, yield func(*Node) bool) bool {
	for _, c := range n.Children {
		if c.Tag == tag && !yield(c) {
			return false
		}
		if !c.walkDescendants(tag, yield) {
			return false
		}
	}
	return true
}

// Attr returns the value of the named attribute and whether it is present.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// Text returns the node's own character data with surrounding whitespace
// trimmed. Child element text is not included.
func (n *Node) Text() string {
	return strings.TrimSpace(n.text.String())
}

// NextSibling returns the next sibling after n, or the next sibling with
// the given tag when tag is non-empty. Nil for the root and for the last
// matching position.
func (n *Node) NextSibling(tag string) *Node {
	if nil == n.parent {
		return nil
	}
	for _, s := range n.parent.Children[n.index+1:] {
		if tag == "" || s.Tag == tag {
			return s
		}
	}
	return nil
}

// NextSiblings yields all siblings after n with the given tag, in document
// order. An empty tag matches every following sibling.
func (n *Node) NextSiblings(tag string) iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		if nil == n.parent {
			return
		}
		for _, s := range n.parent.Children[n.index+1:] {
			if tag == "" || s.Tag == tag {
				if !yield(s) {
					return
				}
			}
		}
	}
}
