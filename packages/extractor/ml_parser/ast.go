package ml_parser

import "ngi18n-go/packages/extractor/util"

// Node represents a node in the HTML AST. The node set is closed:
// Element, Text and Comment are the only kinds that appear as children;
// Attribute hangs off an Element.
type Node interface {
	SourceSpan() *util.ParseSourceSpan
	Visit(visitor Visitor, context interface{}) interface{}
}

// Text represents a text node
type Text struct {
	Value      string
	sourceSpan *util.ParseSourceSpan
}

// NewText creates a new Text node
func NewText(value string, sourceSpan *util.ParseSourceSpan) *Text {
	return &Text{
		Value:      value,
		sourceSpan: sourceSpan,
	}
}

// SourceSpan returns the source span
func (t *Text) SourceSpan() *util.ParseSourceSpan {
	return t.sourceSpan
}

// Visit implements the Node interface
func (t *Text) Visit(visitor Visitor, context interface{}) interface{} {
	return visitor.VisitText(t, context)
}

// Attribute represents an attribute on an element
type Attribute struct {
	Name       string
	Value      string
	sourceSpan *util.ParseSourceSpan
	ValueSpan  *util.ParseSourceSpan
}

// NewAttribute creates a new Attribute node
func NewAttribute(name, value string, sourceSpan, valueSpan *util.ParseSourceSpan) *Attribute {
	return &Attribute{
		Name:       name,
		Value:      value,
		sourceSpan: sourceSpan,
		ValueSpan:  valueSpan,
	}
}

// SourceSpan returns the source span
func (a *Attribute) SourceSpan() *util.ParseSourceSpan {
	return a.sourceSpan
}

// Visit implements the Node interface
func (a *Attribute) Visit(visitor Visitor, context interface{}) interface{} {
	return visitor.VisitAttribute(a, context)
}

// Element represents an element node
type Element struct {
	Name            string
	Attrs           []*Attribute
	Children        []Node
	IsSelfClosing   bool
	sourceSpan      *util.ParseSourceSpan
	StartSourceSpan *util.ParseSourceSpan
	EndSourceSpan   *util.ParseSourceSpan
}

// NewElement creates a new Element node
func NewElement(name string, attrs []*Attribute, children []Node, isSelfClosing bool, sourceSpan, startSourceSpan, endSourceSpan *util.ParseSourceSpan) *Element {
	return &Element{
		Name:            name,
		Attrs:           attrs,
		Children:        children,
		IsSelfClosing:   isSelfClosing,
		sourceSpan:      sourceSpan,
		StartSourceSpan: startSourceSpan,
		EndSourceSpan:   endSourceSpan,
	}
}

// SourceSpan returns the source span
func (e *Element) SourceSpan() *util.ParseSourceSpan {
	return e.sourceSpan
}

// Visit implements the Node interface
func (e *Element) Visit(visitor Visitor, context interface{}) interface{} {
	return visitor.VisitElement(e, context)
}

// Attr returns the attribute with the given name, or nil
func (e *Element) Attr(name string) *Attribute {
	for _, attr := range e.Attrs {
		if attr.Name == name {
			return attr
		}
	}
	return nil
}

// Comment represents a comment node
type Comment struct {
	Value      string
	sourceSpan *util.ParseSourceSpan
}

// NewComment creates a new Comment node
func NewComment(value string, sourceSpan *util.ParseSourceSpan) *Comment {
	return &Comment{
		Value:      value,
		sourceSpan: sourceSpan,
	}
}

// SourceSpan returns the source span
func (c *Comment) SourceSpan() *util.ParseSourceSpan {
	return c.sourceSpan
}

// Visit implements the Node interface
func (c *Comment) Visit(visitor Visitor, context interface{}) interface{} {
	return visitor.VisitComment(c, context)
}

// Visitor interface for visiting AST nodes
type Visitor interface {
	VisitElement(element *Element, context interface{}) interface{}
	VisitAttribute(attribute *Attribute, context interface{}) interface{}
	VisitText(text *Text, context interface{}) interface{}
	VisitComment(comment *Comment, context interface{}) interface{}
}

// VisitAll visits all nodes with a visitor and collects non-nil results
func VisitAll(visitor Visitor, nodes []Node, context interface{}) []interface{} {
	var result []interface{}
	for _, node := range nodes {
		if nodeResult := node.Visit(visitor, context); nodeResult != nil {
			result = append(result, nodeResult)
		}
	}
	return result
}
