package ml_parser

import (
	"fmt"

	"ngi18n-go/packages/extractor/util"
)

// TreeError represents a tree building error
type TreeError struct {
	*util.ParseError
	ElementName string
}

// NewTreeError creates a new TreeError
func NewTreeError(elementName string, span *util.ParseSourceSpan, msg string) *TreeError {
	return &TreeError{
		ParseError:  util.NewParseError(span, msg),
		ElementName: elementName,
	}
}

// ParseTreeResult represents the result of parsing a template
type ParseTreeResult struct {
	RootNodes []Node
	Errors    []*util.ParseError
}

// NewParseTreeResult creates a new ParseTreeResult
func NewParseTreeResult(rootNodes []Node, errors []*util.ParseError) *ParseTreeResult {
	return &ParseTreeResult{
		RootNodes: rootNodes,
		Errors:    errors,
	}
}

// Parser parses HTML source into an AST
type Parser struct {
	GetTagDefinition func(tagName string) *TagDefinition
}

// NewParser creates a new Parser
func NewParser(getTagDefinition func(tagName string) *TagDefinition) *Parser {
	return &Parser{
		GetTagDefinition: getTagDefinition,
	}
}

// Parse parses source code into a ParseTreeResult
func (p *Parser) Parse(source, url string, options *TokenizeOptions) *ParseTreeResult {
	tokenizeResult := Tokenize(source, url, options)
	treeBuilder := newTreeBuilder(tokenizeResult.Tokens, p.GetTagDefinition)
	treeBuilder.build()

	allErrors := tokenizeResult.Errors
	for _, err := range treeBuilder.errors {
		allErrors = append(allErrors, err.ParseError)
	}
	return NewParseTreeResult(treeBuilder.rootNodes, allErrors)
}

type treeBuilder struct {
	index            int
	peek             *Token
	elementStack     []*Element
	rootNodes        []Node
	errors           []*TreeError
	tokens           []*Token
	getTagDefinition func(tagName string) *TagDefinition
}

func newTreeBuilder(tokens []*Token, getTagDefinition func(tagName string) *TagDefinition) *treeBuilder {
	tb := &treeBuilder{
		index:            -1,
		tokens:           tokens,
		getTagDefinition: getTagDefinition,
	}
	tb.advance()
	return tb
}

func (tb *treeBuilder) build() {
	for tb.peek != nil && tb.peek.Type != TokenTypeEOF {
		switch tb.peek.Type {
		case TokenTypeTAG_OPEN_START, TokenTypeINCOMPLETE_TAG_OPEN:
			tb.consumeStartTag(tb.advance())
		case TokenTypeTAG_CLOSE:
			tb.consumeEndTag(tb.advance())
		case TokenTypeCDATA_START:
			tb.closeVoidElement()
			tb.consumeCdata(tb.advance())
		case TokenTypeCOMMENT_START:
			tb.closeVoidElement()
			tb.consumeComment(tb.advance())
		case TokenTypeTEXT, TokenTypeRAW_TEXT, TokenTypeESCAPABLE_RAW_TEXT:
			tb.closeVoidElement()
			tb.consumeText(tb.advance())
		case TokenTypeDOC_TYPE:
			tb.consumeDocType(tb.advance())
		default:
			// Skip tokens that do not start a node
			tb.advance()
		}
	}
}

func (tb *treeBuilder) advance() *Token {
	prev := tb.peek
	if tb.index < len(tb.tokens)-1 {
		// Note: there is always an EOF token at the end
		tb.index++
	}
	if tb.index >= 0 && tb.index < len(tb.tokens) {
		tb.peek = tb.tokens[tb.index]
	} else {
		tb.peek = nil
	}
	return prev
}

func (tb *treeBuilder) advanceIf(tokenType TokenType) *Token {
	if tb.peek != nil && tb.peek.Type == tokenType {
		return tb.advance()
	}
	return nil
}

func (tb *treeBuilder) consumeCdata(_ *Token) {
	if tb.peek.Type == TokenTypeRAW_TEXT {
		tb.consumeText(tb.advance())
	}
	tb.advanceIf(TokenTypeCDATA_END)
}

func (tb *treeBuilder) consumeComment(token *Token) {
	text := tb.advanceIf(TokenTypeRAW_TEXT)
	endToken := tb.advanceIf(TokenTypeCOMMENT_END)
	value := ""
	if text != nil {
		value = text.Parts[0]
	}
	endSpan := token.SourceSpan
	if endToken != nil {
		endSpan = endToken.SourceSpan
	}
	span := util.NewParseSourceSpan(token.SourceSpan.Start, endSpan.End, token.SourceSpan.FullStart, nil)
	tb.addToParent(NewComment(value, span))
}

func (tb *treeBuilder) consumeDocType(token *Token) {
	tb.addToParent(NewComment(token.Parts[0], token.SourceSpan))
}

func (tb *treeBuilder) consumeText(token *Token) {
	text := token.Parts[0]
	if len(text) > 0 && text[0] == '\n' {
		parent := tb.getParentElement()
		if parent != nil && len(parent.Children) == 0 &&
			tb.getTagDefinition(parent.Name).IgnoreFirstLf {
			text = text[1:]
		}
	}
	if len(text) > 0 {
		tb.addToParent(NewText(text, token.SourceSpan))
	}
}

func (tb *treeBuilder) closeVoidElement() {
	el := tb.getParentElement()
	if el != nil && tb.getTagDefinition(el.Name).IsVoid {
		tb.elementStack = tb.elementStack[:len(tb.elementStack)-1]
	}
}

func (tb *treeBuilder) consumeStartTag(startTagToken *Token) {
	tagName := startTagToken.Parts[0]
	var attrs []*Attribute
	for tb.peek.Type == TokenTypeATTR_NAME {
		attrs = append(attrs, tb.consumeAttr(tb.advance()))
	}
	tagDef := tb.getTagDefinition(tagName)
	selfClosing := false
	if tb.peek.Type == TokenTypeTAG_OPEN_END_VOID {
		tb.advance()
		selfClosing = true
		if !tagDef.CanSelfClose && !tagDef.IsVoid {
			tb.errors = append(tb.errors, NewTreeError(
				tagName,
				startTagToken.SourceSpan,
				fmt.Sprintf("Only void, custom and foreign elements can be self closed \"%s\"", tagName),
			))
		}
	} else if tb.peek.Type == TokenTypeTAG_OPEN_END {
		tb.advance()
	}

	end := tb.peek.SourceSpan.FullStart
	span := util.NewParseSourceSpan(startTagToken.SourceSpan.Start, end, startTagToken.SourceSpan.FullStart, nil)
	startSpan := util.NewParseSourceSpan(startTagToken.SourceSpan.Start, end, startTagToken.SourceSpan.FullStart, nil)
	el := NewElement(tagName, attrs, nil, selfClosing, span, startSpan, nil)

	parentEl := tb.getParentElement()
	tb.pushElement(el, parentEl != nil && tb.getTagDefinition(parentEl.Name).IsClosedByChild(el.Name))

	if selfClosing {
		// Self-closed elements have their endSourceSpan set to the full span,
		// as the start tag also represents the end tag.
		tb.popElement(tagName, span)
	} else if startTagToken.Type == TokenTypeINCOMPLETE_TAG_OPEN {
		// An incomplete tag is never pushed, so pop it right back off.
		tb.popElement(tagName, nil)
		tb.errors = append(tb.errors, NewTreeError(
			tagName,
			startTagToken.SourceSpan,
			fmt.Sprintf("Opening tag \"%s\" not terminated.", tagName),
		))
	}
}

func (tb *treeBuilder) pushElement(el *Element, isClosedByChild bool) {
	if isClosedByChild {
		tb.elementStack = tb.elementStack[:len(tb.elementStack)-1]
	}
	tb.addToParent(el)
	tb.elementStack = append(tb.elementStack, el)
}

func (tb *treeBuilder) consumeEndTag(endTagToken *Token) {
	tagName := endTagToken.Parts[0]

	if tb.getTagDefinition(tagName).IsVoid {
		tb.errors = append(tb.errors, NewTreeError(
			tagName,
			endTagToken.SourceSpan,
			fmt.Sprintf("Void elements do not have end tags \"%s\"", tagName),
		))
	} else if !tb.popElement(tagName, endTagToken.SourceSpan) {
		errMsg := fmt.Sprintf("Unexpected closing tag \"%s\". It may happen when the tag has already been closed by another tag. For more info see https://www.w3.org/TR/html5/syntax.html#closing-elements-that-have-implied-end-tags", tagName)
		tb.errors = append(tb.errors, NewTreeError(tagName, endTagToken.SourceSpan, errMsg))
	}
}

// popElement closes the named element. Elements between the top of the stack
// and the match are closed implicitly and get no end source span.
func (tb *treeBuilder) popElement(expectedName string, endSourceSpan *util.ParseSourceSpan) bool {
	unexpectedCloseTagDetected := false
	for stackIndex := len(tb.elementStack) - 1; stackIndex >= 0; stackIndex-- {
		el := tb.elementStack[stackIndex]
		if el.Name == expectedName {
			el.EndSourceSpan = endSourceSpan
			if endSourceSpan != nil {
				el.sourceSpan = util.NewParseSourceSpan(el.sourceSpan.Start, endSourceSpan.End, el.sourceSpan.FullStart, el.sourceSpan.Details)
			}
			tb.elementStack = tb.elementStack[:stackIndex]
			return !unexpectedCloseTagDetected
		}
		if !tb.getTagDefinition(el.Name).ClosedByParent {
			unexpectedCloseTagDetected = true
		}
	}
	return false
}

func (tb *treeBuilder) consumeAttr(attrName *Token) *Attribute {
	name := attrName.Parts[0]
	attrEnd := attrName.SourceSpan.End

	tb.advanceIf(TokenTypeATTR_QUOTE)

	value := ""
	var valueSpan *util.ParseSourceSpan
	if tb.peek.Type == TokenTypeATTR_VALUE {
		valueToken := tb.advance()
		value = valueToken.Parts[0]
		valueSpan = valueToken.SourceSpan
		attrEnd = valueToken.SourceSpan.End
	}

	if quoteToken := tb.advanceIf(TokenTypeATTR_QUOTE); quoteToken != nil {
		attrEnd = quoteToken.SourceSpan.End
	}

	span := util.NewParseSourceSpan(attrName.SourceSpan.Start, attrEnd, attrName.SourceSpan.FullStart, nil)
	return NewAttribute(name, value, span, valueSpan)
}

func (tb *treeBuilder) getParentElement() *Element {
	if len(tb.elementStack) > 0 {
		return tb.elementStack[len(tb.elementStack)-1]
	}
	return nil
}

func (tb *treeBuilder) addToParent(node Node) {
	parent := tb.getParentElement()
	if parent != nil {
		parent.Children = append(parent.Children, node)
	} else {
		tb.rootNodes = append(tb.rootNodes, node)
	}
}
