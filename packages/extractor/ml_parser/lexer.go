package ml_parser

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"ngi18n-go/packages/extractor/util"
)

// TokenizeOptions configures the tokenizer
type TokenizeOptions struct {
	// PreserveLineEndings keeps `\r\n` sequences instead of normalizing them to `\n`
	PreserveLineEndings bool
}

// CursorError is raised when the cursor encounters an unexpected character
type CursorError struct {
	Msg    string
	Cursor *CharacterCursor
}

// Tokenize converts the template string into a list of tokens
func Tokenize(source, url string, options *TokenizeOptions) *TokenizeResult {
	if options == nil {
		options = &TokenizeOptions{}
	}
	tokenizer := newTokenizer(util.NewParseSourceFile(source, url), options)
	tokenizer.tokenize()
	return NewTokenizeResult(tokenizer.tokens, tokenizer.errors)
}

// CharacterCursor walks the source string tracking offset, line and column
type CharacterCursor struct {
	file  *util.ParseSourceFile
	input string
	end   int
	state cursorState
}

// peek holds the full rune at offset; width is its encoded length in bytes,
// so offsets stay byte positions into the original input.
type cursorState struct {
	peek   int
	width  int
	offset int
	line   int
	column int
}

func newCharacterCursor(file *util.ParseSourceFile) *CharacterCursor {
	cursor := &CharacterCursor{
		file:  file,
		input: file.Content,
		end:   len(file.Content),
		state: cursorState{peek: -1, offset: 0, line: 0, column: 0},
	}
	cursor.updatePeek()
	return cursor
}

// Clone returns an independent copy of the cursor
func (c *CharacterCursor) Clone() *CharacterCursor {
	clone := *c
	return &clone
}

// Peek returns the character code at the current position
func (c *CharacterCursor) Peek() int {
	return c.state.peek
}

// Advance moves the cursor forward one character
func (c *CharacterCursor) Advance() {
	if c.state.offset >= c.end {
		panic(&CursorError{Msg: "Unexpected character \"EOF\"", Cursor: c.Clone()})
	}
	if c.state.peek == util.CharLF {
		c.state.line++
		c.state.column = 0
	} else {
		c.state.column++
	}
	c.state.offset += c.state.width
	c.updatePeek()
}

func (c *CharacterCursor) updatePeek() {
	if c.state.offset >= c.end {
		c.state.peek = util.CharEOF
		c.state.width = 0
	} else {
		r, width := utf8.DecodeRuneInString(c.input[c.state.offset:])
		c.state.peek = int(r)
		c.state.width = width
	}
}

// Diff returns the number of characters between this cursor and another
func (c *CharacterCursor) Diff(other *CharacterCursor) int {
	return c.state.offset - other.state.offset
}

// CharsLeft returns the number of characters remaining
func (c *CharacterCursor) CharsLeft() int {
	return c.end - c.state.offset
}

// GetChars returns the characters between the start cursor and this one
func (c *CharacterCursor) GetChars(start *CharacterCursor) string {
	return c.input[start.state.offset:c.state.offset]
}

func (c *CharacterCursor) location() *util.ParseLocation {
	return util.NewParseLocation(c.file, c.state.offset, c.state.line, c.state.column)
}

// GetSpan returns a source span from the start cursor to this one
func (c *CharacterCursor) GetSpan(start *CharacterCursor) *util.ParseSourceSpan {
	if start == nil {
		start = c
	}
	return util.NewParseSourceSpan(start.location(), c.location(), nil, nil)
}

// Tokenizer produces tokens from an HTML template
type Tokenizer struct {
	cursor              *CharacterCursor
	tokens              []*Token
	errors              []*util.ParseError
	currentTokenStart   *CharacterCursor
	currentTokenType    TokenType
	preserveLineEndings bool
}

func newTokenizer(file *util.ParseSourceFile, options *TokenizeOptions) *Tokenizer {
	return &Tokenizer{
		cursor:              newCharacterCursor(file),
		currentTokenType:    -1,
		preserveLineEndings: options.PreserveLineEndings,
	}
}

func (t *Tokenizer) tokenize() {
	for t.cursor.Peek() != util.CharEOF {
		start := t.cursor.Clone()
		func() {
			defer func() {
				if e := recover(); e != nil {
					t.handleError(e)
				}
			}()
			if t.attemptCharCode(util.CharLT) {
				if t.attemptCharCode(util.CharBANG) {
					if t.attemptCharCode(util.CharLBRACKET) {
						t.consumeCdata(start)
					} else if t.attemptCharCode(util.CharMINUS) {
						t.consumeComment(start)
					} else {
						t.consumeDocType(start)
					}
				} else if t.attemptCharCode(util.CharSLASH) {
					t.consumeTagClose(start)
				} else {
					t.consumeTagOpen(start)
				}
			} else {
				t.consumeText()
			}
		}()
	}
	t.beginToken(TokenTypeEOF, nil)
	t.endToken([]string{})
}

func (t *Tokenizer) beginToken(tokenType TokenType, start *CharacterCursor) {
	if start == nil {
		start = t.cursor.Clone()
	}
	t.currentTokenStart = start
	t.currentTokenType = tokenType
}

func (t *Tokenizer) endToken(parts []string) *Token {
	if t.currentTokenStart == nil || t.currentTokenType < 0 {
		panic(fmt.Sprintf("Programming error - attempted to end a token which has no token type %v", t.currentTokenType))
	}
	token := NewToken(t.currentTokenType, parts, t.cursor.GetSpan(t.currentTokenStart))
	t.tokens = append(t.tokens, token)
	t.currentTokenStart = nil
	t.currentTokenType = -1
	return token
}

func (t *Tokenizer) createError(msg string, span *util.ParseSourceSpan) *util.ParseError {
	t.currentTokenStart = nil
	t.currentTokenType = -1
	return util.NewParseError(span, msg)
}

func (t *Tokenizer) handleError(e interface{}) {
	switch err := e.(type) {
	case *CursorError:
		t.errors = append(t.errors, t.createError(err.Msg, t.cursor.GetSpan(err.Cursor)))
	case *util.ParseError:
		t.errors = append(t.errors, err)
		t.currentTokenStart = nil
		t.currentTokenType = -1
	default:
		panic(e)
	}
}

func (t *Tokenizer) attemptCharCode(charCode int) bool {
	if t.cursor.Peek() == charCode {
		t.cursor.Advance()
		return true
	}
	return false
}

func (t *Tokenizer) attemptCharCodeCaseInsensitive(charCode int) bool {
	if compareCharCodeCaseInsensitive(t.cursor.Peek(), charCode) {
		t.cursor.Advance()
		return true
	}
	return false
}

func (t *Tokenizer) requireCharCode(charCode int) {
	location := t.cursor.Clone()
	if !t.attemptCharCode(charCode) {
		panic(&CursorError{
			Msg:    unexpectedCharacterErrorMsg(t.cursor.Peek()),
			Cursor: location,
		})
	}
}

func (t *Tokenizer) attemptStr(chars string) bool {
	if t.cursor.CharsLeft() < len(chars) {
		return false
	}
	initialPosition := t.cursor.Clone()
	for i := 0; i < len(chars); i++ {
		if !t.attemptCharCode(int(chars[i])) {
			t.cursor = initialPosition
			return false
		}
	}
	return true
}

func (t *Tokenizer) attemptStrCaseInsensitive(chars string) bool {
	for i := 0; i < len(chars); i++ {
		if !t.attemptCharCodeCaseInsensitive(int(chars[i])) {
			return false
		}
	}
	return true
}

func (t *Tokenizer) requireStr(chars string) {
	location := t.cursor.Clone()
	if !t.attemptStr(chars) {
		panic(&CursorError{
			Msg:    unexpectedCharacterErrorMsg(t.cursor.Peek()),
			Cursor: location,
		})
	}
}

func (t *Tokenizer) attemptCharCodeUntilFn(predicate func(code int) bool) {
	for !predicate(t.cursor.Peek()) {
		t.cursor.Advance()
	}
}

func (t *Tokenizer) requireCharCodeUntilFn(predicate func(code int) bool, length int) {
	start := t.cursor.Clone()
	t.attemptCharCodeUntilFn(predicate)
	if t.cursor.Diff(start) < length {
		panic(&CursorError{
			Msg:    unexpectedCharacterErrorMsg(t.cursor.Peek()),
			Cursor: start,
		})
	}
}

func (t *Tokenizer) attemptUntilChar(char int) {
	for t.cursor.Peek() != char {
		t.cursor.Advance()
	}
}

func (t *Tokenizer) readChar() string {
	// Read via the cursor so escape handling stays in one place
	char := string(rune(t.cursor.Peek()))
	t.cursor.Advance()
	return char
}

func (t *Tokenizer) consumeEntity() string {
	start := t.cursor.Clone()
	t.cursor.Advance() // consume '&'
	if t.attemptCharCode(util.CharHASH) {
		isHex := t.attemptCharCode(util.CharLowerX) || t.attemptCharCode(util.CharX)
		codeStart := t.cursor.Clone()
		t.attemptCharCodeUntilFn(isDigitEntityEnd)
		if t.cursor.Peek() != util.CharSEMICOLON {
			panic(&CursorError{
				Msg:    unexpectedCharacterErrorMsg(t.cursor.Peek()),
				Cursor: t.cursor.Clone(),
			})
		}
		strNum := t.cursor.GetChars(codeStart)
		t.cursor.Advance() // consume ';'
		base := 10
		if isHex {
			base = 16
		}
		charCode, err := strconv.ParseInt(strNum, base, 32)
		if err != nil {
			panic(t.createError(unknownEntityErrorMsg(t.cursor.GetChars(start)), t.cursor.GetSpan(start)))
		}
		return string(rune(charCode))
	}
	nameStart := t.cursor.Clone()
	t.attemptCharCodeUntilFn(isNamedEntityEnd)
	if t.cursor.Peek() != util.CharSEMICOLON {
		// Not a valid entity reference, treat the '&' as text
		t.cursor = nameStart
		return "&"
	}
	name := t.cursor.GetChars(nameStart)
	t.cursor.Advance() // consume ';'
	char, exists := namedEntities[name]
	if !exists {
		panic(t.createError(unknownEntityErrorMsg("&"+name+";"), t.cursor.GetSpan(start)))
	}
	return char
}

func (t *Tokenizer) consumeRawText(decodeEntities bool, endMarkerPredicate func() bool) {
	tokenType := TokenTypeRAW_TEXT
	if decodeEntities {
		tokenType = TokenTypeESCAPABLE_RAW_TEXT
	}
	t.beginToken(tokenType, nil)
	var parts []string
	for {
		tagCloseStart := t.cursor.Clone()
		foundEndMarker := endMarkerPredicate()
		t.cursor = tagCloseStart
		if foundEndMarker {
			break
		}
		if t.cursor.Peek() == util.CharEOF {
			break
		}
		if decodeEntities && t.cursor.Peek() == util.CharAMPERSAND {
			parts = append(parts, t.consumeEntity())
		} else {
			parts = append(parts, t.readChar())
		}
	}
	t.endToken([]string{t.processCarriageReturns(strings.Join(parts, ""))})
}

// processCarriageReturns normalizes `\r\n` and `\r` to `\n` per the HTML spec
func (t *Tokenizer) processCarriageReturns(content string) string {
	if t.preserveLineEndings {
		return content
	}
	content = strings.ReplaceAll(content, "\r\n", "\n")
	return strings.ReplaceAll(content, "\r", "\n")
}

func (t *Tokenizer) consumeComment(start *CharacterCursor) {
	t.beginToken(TokenTypeCOMMENT_START, start)
	t.requireCharCode(util.CharMINUS)
	t.endToken([]string{})
	t.consumeRawText(false, func() bool { return t.attemptStr("-->") })
	t.beginToken(TokenTypeCOMMENT_END, nil)
	t.requireStr("-->")
	t.endToken([]string{})
}

func (t *Tokenizer) consumeCdata(start *CharacterCursor) {
	t.beginToken(TokenTypeCDATA_START, start)
	t.requireStr("CDATA[")
	t.endToken([]string{})
	t.consumeRawText(false, func() bool { return t.attemptStr("]]>") })
	t.beginToken(TokenTypeCDATA_END, nil)
	t.requireStr("]]>")
	t.endToken([]string{})
}

func (t *Tokenizer) consumeDocType(start *CharacterCursor) {
	t.beginToken(TokenTypeDOC_TYPE, start)
	contentStart := t.cursor.Clone()
	t.attemptUntilChar(util.CharGT)
	content := t.cursor.GetChars(contentStart)
	t.cursor.Advance()
	t.endToken([]string{content})
}

func (t *Tokenizer) consumeTagOpen(start *CharacterCursor) {
	var tagName string
	openTokenIndex := len(t.tokens)

	defer func() {
		if e := recover(); e != nil {
			if _, ok := e.(*CursorError); !ok {
				panic(e)
			}
			// The start tag could not be parsed. Back out the tokens already
			// emitted for it and report the whole run as text so that invalid
			// markup such as `<code` still round-trips.
			t.tokens = t.tokens[:openTokenIndex]
			t.cursor = start.Clone()
			t.cursor.Advance()
			t.beginToken(TokenTypeINCOMPLETE_TAG_OPEN, start)
			t.endToken([]string{tagName})
		}
	}()

	if !util.IsAsciiLetter(t.cursor.Peek()) {
		panic(&CursorError{
			Msg:    unexpectedCharacterErrorMsg(t.cursor.Peek()),
			Cursor: t.cursor.Clone(),
		})
	}

	tagName = t.consumeTagOpenStart(start)
	t.attemptCharCodeUntilFn(isNotWhitespace)
	for t.cursor.Peek() != util.CharSLASH && t.cursor.Peek() != util.CharGT &&
		t.cursor.Peek() != util.CharLT && t.cursor.Peek() != util.CharEOF {
		t.consumeAttributeName()
		t.attemptCharCodeUntilFn(isNotWhitespace)
		if t.attemptCharCode(util.CharEQ) {
			t.attemptCharCodeUntilFn(isNotWhitespace)
			t.consumeAttributeValue()
		}
		t.attemptCharCodeUntilFn(isNotWhitespace)
	}
	t.consumeTagOpenEnd()

	contentType := GetHtmlTagDefinition(tagName).ContentType
	if contentType == TagContentTypeRAW_TEXT {
		t.consumeRawTextWithTagClose(tagName, false)
	} else if contentType == TagContentTypeESCAPABLE_RAW_TEXT {
		t.consumeRawTextWithTagClose(tagName, true)
	}
}

func (t *Tokenizer) consumeRawTextWithTagClose(tagName string, decodeEntities bool) {
	t.consumeRawText(decodeEntities, func() bool {
		if !t.attemptCharCode(util.CharLT) {
			return false
		}
		if !t.attemptCharCode(util.CharSLASH) {
			return false
		}
		t.attemptCharCodeUntilFn(isNotWhitespace)
		if !t.attemptStrCaseInsensitive(tagName) {
			return false
		}
		t.attemptCharCodeUntilFn(isNotWhitespace)
		return t.attemptCharCode(util.CharGT)
	})
	t.beginToken(TokenTypeTAG_CLOSE, nil)
	t.requireCharCodeUntilFn(func(code int) bool { return code == util.CharGT }, 3)
	t.cursor.Advance() // consume '>'
	t.endToken([]string{tagName})
}

func (t *Tokenizer) consumeTagOpenStart(start *CharacterCursor) string {
	t.beginToken(TokenTypeTAG_OPEN_START, start)
	name := t.consumeName()
	t.endToken([]string{name})
	return name
}

func (t *Tokenizer) consumeAttributeName() {
	attrNameStart := t.cursor.Peek()
	if attrNameStart == util.CharSQ || attrNameStart == util.CharDQ {
		panic(&CursorError{
			Msg:    unexpectedCharacterErrorMsg(attrNameStart),
			Cursor: t.cursor.Clone(),
		})
	}
	t.beginToken(TokenTypeATTR_NAME, nil)
	name := t.consumeName()
	t.endToken([]string{name})
}

func (t *Tokenizer) consumeAttributeValue() {
	if t.cursor.Peek() == util.CharSQ || t.cursor.Peek() == util.CharDQ {
		quoteChar := t.cursor.Peek()
		t.consumeQuote(quoteChar)
		t.beginToken(TokenTypeATTR_VALUE, nil)
		var parts []string
		for t.cursor.Peek() != quoteChar {
			if t.cursor.Peek() == util.CharAMPERSAND {
				parts = append(parts, t.consumeEntity())
			} else {
				parts = append(parts, t.readChar())
			}
		}
		t.endToken([]string{t.processCarriageReturns(strings.Join(parts, ""))})
		t.consumeQuote(quoteChar)
	} else {
		t.beginToken(TokenTypeATTR_VALUE, nil)
		valueStart := t.cursor.Clone()
		t.requireCharCodeUntilFn(isNameEnd, 1)
		value := t.cursor.GetChars(valueStart)
		t.endToken([]string{t.processCarriageReturns(value)})
	}
}

func (t *Tokenizer) consumeQuote(quoteChar int) {
	t.beginToken(TokenTypeATTR_QUOTE, nil)
	t.requireCharCode(quoteChar)
	t.endToken([]string{string(rune(quoteChar))})
}

func (t *Tokenizer) consumeTagOpenEnd() {
	tokenType := TokenTypeTAG_OPEN_END
	if t.attemptCharCode(util.CharSLASH) {
		tokenType = TokenTypeTAG_OPEN_END_VOID
	}
	t.beginToken(tokenType, nil)
	t.requireCharCode(util.CharGT)
	t.endToken([]string{})
}

func (t *Tokenizer) consumeTagClose(start *CharacterCursor) {
	t.beginToken(TokenTypeTAG_CLOSE, start)
	t.attemptCharCodeUntilFn(isNotWhitespace)
	name := t.consumeName()
	t.attemptCharCodeUntilFn(isNotWhitespace)
	t.requireCharCode(util.CharGT)
	t.endToken([]string{name})
}

func (t *Tokenizer) consumeName() string {
	nameStart := t.cursor.Clone()
	t.requireCharCodeUntilFn(isNameEnd, 1)
	return t.cursor.GetChars(nameStart)
}

func (t *Tokenizer) consumeText() {
	t.beginToken(TokenTypeTEXT, nil)
	var parts []string
	for !t.isTextEnd() {
		if t.cursor.Peek() == util.CharAMPERSAND {
			parts = append(parts, t.consumeEntity())
		} else {
			parts = append(parts, t.readChar())
		}
	}
	t.endToken([]string{t.processCarriageReturns(strings.Join(parts, ""))})
}

func (t *Tokenizer) isTextEnd() bool {
	if t.cursor.Peek() == util.CharEOF {
		return true
	}
	if t.cursor.Peek() == util.CharLT {
		// `<` only terminates text when it actually starts markup
		clone := t.cursor.Clone()
		clone.Advance()
		next := clone.Peek()
		return util.IsAsciiLetter(next) || next == util.CharSLASH || next == util.CharBANG
	}
	return false
}

func isNotWhitespace(code int) bool {
	return !util.IsWhitespace(code) || code == util.CharEOF
}

func isNameEnd(code int) bool {
	return util.IsWhitespace(code) || code == util.CharGT || code == util.CharSLASH ||
		code == util.CharSQ || code == util.CharDQ || code == util.CharEQ ||
		code == util.CharEOF || code == util.CharLT
}

func isDigitEntityEnd(code int) bool {
	return code == util.CharSEMICOLON || code == util.CharEOF || !util.IsAsciiHexDigit(code)
}

func isNamedEntityEnd(code int) bool {
	return code == util.CharSEMICOLON || code == util.CharEOF || !util.IsAsciiLetter(code)
}

func compareCharCodeCaseInsensitive(code1, code2 int) bool {
	return toUpperCaseCharCode(code1) == toUpperCaseCharCode(code2)
}

func toUpperCaseCharCode(code int) int {
	if code >= util.CharLowerA && code <= util.CharLowerZ {
		return code - util.CharLowerA + util.CharA
	}
	return code
}

func unexpectedCharacterErrorMsg(charCode int) string {
	char := string(rune(charCode))
	if charCode == util.CharEOF {
		char = "EOF"
	}
	return fmt.Sprintf("Unexpected character \"%s\"", char)
}

func unknownEntityErrorMsg(entitySrc string) string {
	return fmt.Sprintf("Unknown entity \"%s\" - use the \"&#<decimal>;\" or  \"&#x<hex>;\" syntax", entitySrc)
}

var namedEntities = map[string]string{
	"amp":    "&",
	"lt":     "<",
	"gt":     ">",
	"quot":   "\"",
	"apos":   "'",
	"nbsp":   " ",
	"copy":   "©",
	"reg":    "®",
	"trade":  "™",
	"hellip": "…",
	"mdash":  "—",
	"ndash":  "–",
	"lsquo":  "‘",
	"rsquo":  "’",
	"ldquo":  "“",
	"rdquo":  "”",
	"times":  "×",
	"divide": "÷",
}
