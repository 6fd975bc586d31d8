package ml_parser

import "ngi18n-go/packages/extractor/util"

// TokenType represents the type of a lexer token
type TokenType int

const (
	TokenTypeTAG_OPEN_START TokenType = iota
	TokenTypeTAG_OPEN_END
	TokenTypeTAG_OPEN_END_VOID
	TokenTypeTAG_CLOSE
	TokenTypeINCOMPLETE_TAG_OPEN
	TokenTypeTEXT
	TokenTypeESCAPABLE_RAW_TEXT
	TokenTypeRAW_TEXT
	TokenTypeCOMMENT_START
	TokenTypeCOMMENT_END
	TokenTypeCDATA_START
	TokenTypeCDATA_END
	TokenTypeATTR_NAME
	TokenTypeATTR_QUOTE
	TokenTypeATTR_VALUE
	TokenTypeDOC_TYPE
	TokenTypeEOF
)

// Token represents a token in the HTML source.
//
// The meaning of Parts depends on the type:
//   - TAG_OPEN_START, TAG_CLOSE, ATTR_NAME: [name]
//   - TEXT, RAW_TEXT, ESCAPABLE_RAW_TEXT, ATTR_VALUE, DOC_TYPE: [content]
//   - COMMENT_START/END, CDATA_START/END, TAG_OPEN_END(_VOID), EOF: []
type Token struct {
	Type       TokenType
	Parts      []string
	SourceSpan *util.ParseSourceSpan
}

// NewToken creates a new Token
func NewToken(tokenType TokenType, parts []string, sourceSpan *util.ParseSourceSpan) *Token {
	return &Token{
		Type:       tokenType,
		Parts:      parts,
		SourceSpan: sourceSpan,
	}
}

// TokenizeResult represents the result of tokenization
type TokenizeResult struct {
	Tokens []*Token
	Errors []*util.ParseError
}

// NewTokenizeResult creates a new TokenizeResult
func NewTokenizeResult(tokens []*Token, errors []*util.ParseError) *TokenizeResult {
	return &TokenizeResult{
		Tokens: tokens,
		Errors: errors,
	}
}
