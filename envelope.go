// Copyright (c) 2014 VMware, Inc. All Rights Reserved.

package cimc

import (
	"bytes"
	"encoding/xml"
	"io"
	"sort"
	"strconv"
)

// Envelope is an outbound request: one operation, a flat attribute bag,
// and for configuration sets one nested managed-object sub-tree.
type Envelope struct {
	Op     Operation
	Attrs  map[string]string
	Config *Element
}

func newEnvelope(op Operation, attrs map[string]string) *Envelope {
	if attrs == nil {
		attrs = map[string]string{}
	}
	return &Envelope{Op: op, Attrs: attrs}
}

// Element is a node of a parsed or constructed envelope document.
type Element struct {
	Name     string
	Attrs    map[string]string
	Children []*Element
}

// NewElement constructs an Element with the given tag name and attributes
func NewElement(name string, attrs map[string]string) *Element {
	if attrs == nil {
		attrs = map[string]string{}
	}
	return &Element{Name: name, Attrs: attrs}
}

// Attr returns the named attribute's value, or "" when absent
func (e *Element) Attr(name string) string {
	return e.Attrs[name]
}

// Append adds a child element
func (e *Element) Append(child *Element) {
	e.Children = append(e.Children, child)
}

// Get returns all children with the given tag name. The result is always
// a slice so callers see a uniform shape whether the device returned
// zero, one, or many repeated children.
func (e *Element) Get(name string) []*Element {
	var out []*Element
	for _, c := range e.Children {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// First returns the first child with the given tag name, or nil
func (e *Element) First(name string) *Element {
	for _, c := range e.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// The device firmware's parser requires children of these two boot-order
// containers in ascending "order". Everywhere else sibling order is
// irrelevant.
var orderedContainers = map[string]bool{
	"lsbootDef":          true,
	"lsbootDevPrecision": true,
}

func sortedChildren(e *Element) []*Element {
	children := make([]*Element, len(e.Children))
	copy(children, e.Children)
	if !orderedContainers[e.Name] {
		return children
	}
	sort.SliceStable(children, func(i, j int) bool {
		oi, erri := strconv.Atoi(children[i].Attr("order"))
		oj, errj := strconv.Atoi(children[j].Attr("order"))
		if erri == nil && errj == nil {
			return oi < oj
		}
		if erri == nil || errj == nil {
			// numbered entries ahead of unnumbered ones
			return erri == nil
		}
		return children[i].Name < children[j].Name
	})
	return children
}

func writeElement(buf *bytes.Buffer, e *Element) {
	buf.WriteByte('<')
	buf.WriteString(e.Name)

	// attributes sorted by name for a stable document
	names := make([]string, 0, len(e.Attrs))
	for name := range e.Attrs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		buf.WriteByte(' ')
		buf.WriteString(name)
		buf.WriteString(`="`)
		_ = xml.EscapeText(buf, []byte(e.Attrs[name]))
		buf.WriteByte('"')
	}

	if len(e.Children) == 0 {
		buf.WriteString("/>")
		return
	}

	buf.WriteByte('>')
	for _, c := range sortedChildren(e) {
		writeElement(buf, c)
	}
	buf.WriteString("</")
	buf.WriteString(e.Name)
	buf.WriteByte('>')
}

// encodeEnvelope serializes a request into the XML document sent as the
// POST body: the operation name is the sole root element, the attribute
// bag becomes its attributes, and a config sub-tree is wrapped in
// <inConfig> the way configConfMo expects.
func encodeEnvelope(req *Envelope) []byte {
	root := NewElement(req.Op.String(), req.Attrs)
	if req.Config != nil {
		in := NewElement("inConfig", nil)
		in.Append(req.Config)
		root.Append(in)
	}

	buf := new(bytes.Buffer)
	writeElement(buf, root)
	return buf.Bytes()
}

// decodeEnvelope parses a response document into an Element tree,
// enforcing the single-top-level-element shape.
func decodeEnvelope(data []byte) (*Element, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))

	var root *Element
	var stack []*Element

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &MalformedResponseError{Reason: "invalid document", Err: err}
		}

		switch t := tok.(type) {
		case xml.StartElement:
			el := NewElement(t.Name.Local, nil)
			for _, a := range t.Attr {
				el.Attrs[a.Name.Local] = a.Value
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, &MalformedResponseError{Reason: "multiple top-level elements"}
				}
				root = el
			} else {
				stack[len(stack)-1].Append(el)
			}
			stack = append(stack, el)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		}
	}

	if root == nil {
		return nil, &MalformedResponseError{Reason: "empty document"}
	}
	return root, nil
}
