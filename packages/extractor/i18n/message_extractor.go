package i18n

import (
	"fmt"
	"strings"

	"ngi18n-go/packages/extractor/expression_parser"
	"ngi18n-go/packages/extractor/ml_parser"
	"ngi18n-go/packages/extractor/util"
)

// MessageExtractor walks a parsed template and collects every translatable
// message together with the recoverable errors found along the way. The
// extractor itself only holds configuration: Extract is reentrant and
// concurrent calls on different templates are safe.
type MessageExtractor struct {
	htmlParser          *ml_parser.HtmlParser
	expressionParser    *expression_parser.Parser
	implicitTags        []string
	implicitAttrs       map[string][]string
	interpolationConfig *ml_parser.InterpolationConfig
}

// NewMessageExtractor creates a new MessageExtractor. implicitTags lists tag
// names whose content is translatable without a marker; implicitAttrs maps a
// tag name to its translatable attribute names. A nil interpolationConfig
// selects the default `{{` / `}}` delimiters.
func NewMessageExtractor(
	htmlParser *ml_parser.HtmlParser,
	expressionParser *expression_parser.Parser,
	implicitTags []string,
	implicitAttrs map[string][]string,
	interpolationConfig *ml_parser.InterpolationConfig,
) *MessageExtractor {
	if interpolationConfig == nil {
		interpolationConfig = ml_parser.DefaultInterpolationConfig
	}
	return &MessageExtractor{
		htmlParser:          htmlParser,
		expressionParser:    expressionParser,
		implicitTags:        implicitTags,
		implicitAttrs:       implicitAttrs,
		interpolationConfig: interpolationConfig,
	}
}

// Extract parses the template and extracts all translatable messages. If the
// parser reports any error the extraction short-circuits and returns zero
// messages with exactly the parser errors; otherwise the result carries the
// messages in pre-order together with the recoverable i18n errors.
func (m *MessageExtractor) Extract(template, url string) *ExtractionResult {
	parseResult := m.htmlParser.Parse(template, url, nil)
	if len(parseResult.Errors) > 0 {
		return NewExtractionResult(nil, parseResult.Errors)
	}

	ex := &extraction{extractor: m}
	ex.recurse(parseResult.RootNodes)
	return NewExtractionResult(ex.messages, ex.errors)
}

// extraction holds the per-call accumulators of one Extract invocation
type extraction struct {
	extractor *MessageExtractor
	messages  []*Message
	errors    []*util.ParseError
}

func (e *extraction) recurse(nodes []ml_parser.Node) {
	parts := Partition(nodes, &e.errors, e.extractor.implicitTags)
	for _, part := range parts {
		e.extractMessagesFromPart(part)
	}
}

func (e *extraction) extractMessagesFromPart(part *Part) {
	if part.IsTranslatable {
		e.messages = append(e.messages, e.messageFromPart(part))
		// Attributes on the root element and on every nested element inside a
		// translated region are still individually extractable.
		e.extractAttributesFromNodes(part.Children)
	} else if part.RootElement != nil {
		e.recurse(part.RootElement.Children)
		e.extractMessagesFromAttributes(part.RootElement)
	}
}

func (e *extraction) messageFromPart(part *Part) *Message {
	nodes := part.Children
	if part.RootElement != nil {
		nodes = part.RootElement.Children
	}
	content, placeholders := StringifyNodes(nodes, e.extractor.expressionParser, e.extractor.interpolationConfig, &e.errors)
	meaning, description := SplitMeaningAndDesc(part.I18n)
	return NewMessage(content, placeholders, meaning, description, part.SourceSpan())
}

func (e *extraction) extractAttributesFromNodes(nodes []ml_parser.Node) {
	for _, node := range nodes {
		if el, ok := node.(*ml_parser.Element); ok {
			e.extractMessagesFromAttributes(el)
			e.extractAttributesFromNodes(el.Children)
		}
	}
}

func (e *extraction) extractMessagesFromAttributes(el *ml_parser.Element) {
	implicit := e.extractor.implicitAttrs[el.Name]

	// Attributes named `i18n-<name>` mark the `<name>` attribute of the same
	// element as translatable and carry its meaning|description pair.
	var explicitNames []string
	for _, attr := range el.Attrs {
		if !strings.HasPrefix(attr.Name, I18nAttrPrefix) {
			continue
		}
		explicitNames = append(explicitNames, attr.Name[len(I18nAttrPrefix):])
		msg, err := e.messageFromI18nAttribute(el, attr)
		if err != nil {
			e.errors = append(e.errors, err)
			continue
		}
		e.messages = append(e.messages, msg)
	}

	// Implicitly translatable attributes, unless already claimed explicitly
	for _, attr := range el.Attrs {
		if strings.HasPrefix(attr.Name, I18nAttrPrefix) ||
			containsTag(explicitNames, attr.Name) ||
			!containsTag(implicit, attr.Name) {
			continue
		}
		e.messages = append(e.messages, e.messageFromAttribute(attr, "", ""))
	}
}

func (e *extraction) messageFromI18nAttribute(el *ml_parser.Element, i18nAttr *ml_parser.Attribute) (*Message, *util.ParseError) {
	expectedName := i18nAttr.Name[len(I18nAttrPrefix):]
	attr := el.Attr(expectedName)
	if attr == nil {
		return nil, util.NewParseError(el.SourceSpan(), fmt.Sprintf("Missing attribute '%s'.", expectedName))
	}
	meaning, description := SplitMeaningAndDesc(i18nAttr.Value)
	return e.messageFromAttribute(attr, meaning, description), nil
}

func (e *extraction) messageFromAttribute(attr *ml_parser.Attribute, meaning, description string) *Message {
	content, placeholders := StringifyAttributeValue(attr, e.extractor.expressionParser, e.extractor.interpolationConfig, &e.errors)
	return NewMessage(content, placeholders, meaning, description, attr.SourceSpan())
}
