package expression_parser

import (
	"fmt"
	"strings"

	"ngi18n-go/packages/extractor/ml_parser"
	"ngi18n-go/packages/extractor/util"
)

// InterpolationPiece is a fragment of an interpolated string, either literal
// text or the expression between the delimiters.
type InterpolationPiece struct {
	Text  string
	Start int
	End   int
}

// SplitInterpolation is the result of splitting an interpolated string.
// Strings and Expressions alternate: strings[0] expressions[0] strings[1] ...
type SplitInterpolation struct {
	Strings     []InterpolationPiece
	Expressions []InterpolationPiece
	Offsets     []int
}

// NewSplitInterpolation creates a new SplitInterpolation
func NewSplitInterpolation(stringPieces, expressions []InterpolationPiece, offsets []int) *SplitInterpolation {
	return &SplitInterpolation{
		Strings:     stringPieces,
		Expressions: expressions,
		Offsets:     offsets,
	}
}

// Parser splits interpolated strings into their literal and expression parts
type Parser struct{}

// NewParser creates a new Parser
func NewParser() *Parser {
	return &Parser{}
}

func getParseError(msg, input, locationInfo string, span *util.ParseSourceSpan) *util.ParseError {
	return util.NewParseError(span, fmt.Sprintf("Parser Error: %s %s [%s]", msg, locationInfo, input))
}

// SplitInterpolation splits an interpolated string such as `a {{ b }} c` into
// its literal parts and expressions. Delimiters inside quoted strings are
// ignored. Recoverable problems are appended to errors.
func (p *Parser) SplitInterpolation(
	input string,
	span *util.ParseSourceSpan,
	interpolationConfig *ml_parser.InterpolationConfig,
	errors *[]*util.ParseError,
) *SplitInterpolation {
	if interpolationConfig == nil {
		interpolationConfig = ml_parser.DefaultInterpolationConfig
	}
	interpStart := interpolationConfig.Start
	interpEnd := interpolationConfig.End

	stringPieces := []InterpolationPiece{}
	expressions := []InterpolationPiece{}
	offsets := []int{}
	i := 0
	atInterpolation := false
	extendLastString := false

	for i < len(input) {
		if !atInterpolation {
			// parse until starting delimiter
			start := i
			idx := strings.Index(input[i:], interpStart)
			if idx == -1 {
				i = len(input)
			} else {
				i += idx
			}
			stringPieces = append(stringPieces, InterpolationPiece{Text: input[start:i], Start: start, End: i})
			atInterpolation = true
		} else {
			// parse from the starting to the ending delimiter while ignoring
			// content inside quotes
			fullStart := i
			exprStart := fullStart + len(interpStart)
			exprEnd := getInterpolationEndIndex(input, interpEnd, exprStart)
			if exprEnd == -1 {
				// Could not find the end of the interpolation; do not parse an
				// expression. Instead extend the content of the last raw string.
				*errors = append(*errors, getParseError(
					fmt.Sprintf("Unterminated interpolation, expected closing %q", interpEnd),
					input,
					fmt.Sprintf("at column %d in", i),
					span,
				))
				atInterpolation = false
				extendLastString = true
				break
			}
			fullEnd := exprEnd + len(interpEnd)

			text := input[exprStart:exprEnd]
			if strings.TrimSpace(text) == "" {
				*errors = append(*errors, getParseError(
					"Blank expressions are not allowed in interpolated strings",
					input,
					fmt.Sprintf("at column %d in", i),
					span,
				))
			}
			expressions = append(expressions, InterpolationPiece{Text: text, Start: fullStart, End: fullEnd})
			offsets = append(offsets, fullStart+len(interpStart))

			i = fullEnd
			atInterpolation = false
		}
	}
	if !atInterpolation {
		// We are in a text section: add the remaining content as a raw string
		if extendLastString {
			piece := &stringPieces[len(stringPieces)-1]
			piece.Text += input[piece.End:]
			piece.End = len(input)
		} else {
			stringPieces = append(stringPieces, InterpolationPiece{Text: input[i:], Start: i, End: len(input)})
		}
	}
	return NewSplitInterpolation(stringPieces, expressions, offsets)
}

// getInterpolationEndIndex finds the closing delimiter of the current
// expression, skipping over quoted content.
func getInterpolationEndIndex(input, expressionEnd string, start int) int {
	for _, charIndex := range unquotedCharIndexes(input, start) {
		if strings.HasPrefix(input[charIndex:], expressionEnd) {
			return charIndex
		}

		// Nothing else in the expression matters after we've
		// hit a comment so look directly for the end token.
		if strings.HasPrefix(input[charIndex:], "//") {
			idx := strings.Index(input[charIndex:], expressionEnd)
			if idx != -1 {
				return charIndex + idx
			}
			return -1
		}
	}
	return -1
}

// unquotedCharIndexes returns the indexes of all characters in input that are
// outside of quotes, starting at start. Only the outer-most quotes matter and
// escaped quotes do not terminate a quoted section.
func unquotedCharIndexes(input string, start int) []int {
	var indexes []int
	var currentQuote byte
	inQuote := false
	escapeCount := 0
	for i := start; i < len(input); i++ {
		char := input[i]
		if util.IsQuote(int(char)) && (!inQuote || currentQuote == char) && escapeCount%2 == 0 {
			if inQuote {
				inQuote = false
			} else {
				inQuote = true
				currentQuote = char
			}
		} else if !inQuote {
			indexes = append(indexes, i)
		}
		if char == '\\' {
			escapeCount++
		} else {
			escapeCount = 0
		}
	}
	return indexes
}
