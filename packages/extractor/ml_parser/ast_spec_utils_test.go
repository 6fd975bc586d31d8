package ml_parser_test

import (
	"fmt"

	"ngi18n-go/packages/extractor/ml_parser"
	"ngi18n-go/packages/extractor/util"
)

func HumanizeDom(parseResult *ml_parser.ParseTreeResult) []interface{} {
	if len(parseResult.Errors) > 0 {
		errorString := ""
		for _, err := range parseResult.Errors {
			errorString += err.String() + "\n"
		}
		panic(fmt.Errorf("Unexpected parse errors:\n%s", errorString))
	}

	return HumanizeNodes(parseResult.RootNodes)
}

func HumanizeNodes(nodes []ml_parser.Node) []interface{} {
	humanizer := NewHumanizer()
	ml_parser.VisitAll(humanizer, nodes, nil)
	return humanizer.Result
}

func HumanizeLineColumn(location *util.ParseLocation) string {
	return fmt.Sprintf("%d:%d", location.Line, location.Col)
}

func humanizeErrors(errors []*util.ParseError) []interface{} {
	result := []interface{}{}
	for _, e := range errors {
		result = append(result, []interface{}{
			e.Msg,
			HumanizeLineColumn(e.Span.Start),
		})
	}
	return result
}

type Humanizer struct {
	Result  []interface{}
	elDepth int
}

func NewHumanizer() *Humanizer {
	return &Humanizer{
		Result: []interface{}{},
	}
}

func (h *Humanizer) VisitElement(element *ml_parser.Element, context interface{}) interface{} {
	res := []interface{}{"Element", element.Name, h.elDepth}
	if element.IsSelfClosing {
		res = append(res, "#selfClosing")
	}
	h.Result = append(h.Result, res)
	h.elDepth++
	ml_parser.VisitAll(h, convertAttributesToNodes(element.Attrs), nil)
	ml_parser.VisitAll(h, element.Children, nil)
	h.elDepth--
	return nil
}

func (h *Humanizer) VisitAttribute(attribute *ml_parser.Attribute, context interface{}) interface{} {
	h.Result = append(h.Result, []interface{}{"Attribute", attribute.Name, attribute.Value})
	return nil
}

func (h *Humanizer) VisitText(text *ml_parser.Text, context interface{}) interface{} {
	h.Result = append(h.Result, []interface{}{"Text", text.Value, h.elDepth})
	return nil
}

func (h *Humanizer) VisitComment(comment *ml_parser.Comment, context interface{}) interface{} {
	h.Result = append(h.Result, []interface{}{"Comment", comment.Value, h.elDepth})
	return nil
}

func convertAttributesToNodes(attrs []*ml_parser.Attribute) []ml_parser.Node {
	nodes := make([]ml_parser.Node, len(attrs))
	for i, attr := range attrs {
		nodes[i] = attr
	}
	return nodes
}
