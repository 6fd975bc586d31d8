package i18n

import (
	"fmt"
	"strings"

	"ngi18n-go/packages/extractor/expression_parser"
	"ngi18n-go/packages/extractor/ml_parser"
	"ngi18n-go/packages/extractor/util"
)

// StringifyNodes converts nodes into a flat placeholder-annotated string.
// Elements become `<ph name="eN">...</ph>`, text nodes containing
// interpolation become `<ph name="tN">...</ph>` (N shared with the element
// counter), expressions become self-closing `<ph name="K"/>` with their own
// counter. All counters are scoped to this call. Recoverable interpolation
// problems are appended to errors.
func StringifyNodes(
	nodes []ml_parser.Node,
	expressionParser *expression_parser.Parser,
	interpolationConfig *ml_parser.InterpolationConfig,
	errors *[]*util.ParseError,
) (string, map[string]*PlaceholderRef) {
	visitor := newStringifyVisitor(expressionParser, interpolationConfig, errors)
	parts := ml_parser.VisitAll(visitor, nodes, nil)
	return joinStrings(parts), visitor.placeholders
}

// StringifyAttributeValue treats an attribute value as a single text region:
// only expression placeholders are possible, literal text is HTML-escaped.
func StringifyAttributeValue(
	attr *ml_parser.Attribute,
	expressionParser *expression_parser.Parser,
	interpolationConfig *ml_parser.InterpolationConfig,
	errors *[]*util.ParseError,
) (string, map[string]*PlaceholderRef) {
	visitor := newStringifyVisitor(expressionParser, interpolationConfig, errors)
	span := attr.ValueSpan
	if span == nil {
		span = attr.SourceSpan()
	}
	content, _ := visitor.replaceInterpolations(attr.Value, span)
	return content, visitor.placeholders
}

type stringifyVisitor struct {
	expressionParser    *expression_parser.Parser
	interpolationConfig *ml_parser.InterpolationConfig
	errors              *[]*util.ParseError
	placeholders        map[string]*PlaceholderRef
	index               int
	exprIndex           int
}

func newStringifyVisitor(expressionParser *expression_parser.Parser, interpolationConfig *ml_parser.InterpolationConfig, errors *[]*util.ParseError) *stringifyVisitor {
	if interpolationConfig == nil {
		interpolationConfig = ml_parser.DefaultInterpolationConfig
	}
	return &stringifyVisitor{
		expressionParser:    expressionParser,
		interpolationConfig: interpolationConfig,
		errors:              errors,
		placeholders:        make(map[string]*PlaceholderRef),
	}
}

func (v *stringifyVisitor) VisitElement(el *ml_parser.Element, context interface{}) interface{} {
	name := fmt.Sprintf("e%d", v.index)
	v.index++
	v.placeholders[name] = &PlaceholderRef{Element: el}
	children := joinStrings(ml_parser.VisitAll(v, el.Children, context))
	return fmt.Sprintf(`<ph name="%s">%s</ph>`, name, children)
}

func (v *stringifyVisitor) VisitText(text *ml_parser.Text, context interface{}) interface{} {
	// Text nodes consume a slot of the element counter whether or not they
	// end up wrapped, so numbering stays stable in traversal order.
	index := v.index
	v.index++
	content, hasExpressions := v.replaceInterpolations(text.Value, text.SourceSpan())
	if hasExpressions {
		name := fmt.Sprintf("t%d", index)
		v.placeholders[name] = &PlaceholderRef{Text: text}
		return fmt.Sprintf(`<ph name="%s">%s</ph>`, name, content)
	}
	return content
}

func (v *stringifyVisitor) VisitComment(comment *ml_parser.Comment, context interface{}) interface{} {
	return ""
}

func (v *stringifyVisitor) VisitAttribute(attr *ml_parser.Attribute, context interface{}) interface{} {
	return nil
}

// replaceInterpolations substitutes every interpolated expression in value
// with a self-closing expression placeholder and escapes the literal pieces.
func (v *stringifyVisitor) replaceInterpolations(value string, span *util.ParseSourceSpan) (string, bool) {
	split := v.expressionParser.SplitInterpolation(value, span, v.interpolationConfig, v.errors)
	if len(split.Expressions) == 0 {
		return escapeXml(value), false
	}
	var sb strings.Builder
	for i, piece := range split.Strings {
		sb.WriteString(escapeXml(piece.Text))
		if i < len(split.Expressions) {
			name := fmt.Sprintf("%d", v.exprIndex)
			v.exprIndex++
			v.placeholders[name] = &PlaceholderRef{Expression: split.Expressions[i].Text}
			sb.WriteString(fmt.Sprintf(`<ph name="%s"/>`, name))
		}
	}
	return sb.String(), true
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

func escapeXml(text string) string {
	return xmlEscaper.Replace(text)
}

func joinStrings(parts []interface{}) string {
	var sb strings.Builder
	for _, part := range parts {
		if str, ok := part.(string); ok {
			sb.WriteString(str)
		}
	}
	return sb.String()
}
