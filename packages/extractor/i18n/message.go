package i18n

import (
	"strings"

	"ngi18n-go/packages/extractor/ml_parser"
	"ngi18n-go/packages/extractor/util"
)

// PlaceholderRef points a placeholder name back at the source it replaced:
// exactly one of Element, Text or Expression is set.
type PlaceholderRef struct {
	Element    *ml_parser.Element
	Text       *ml_parser.Text
	Expression string
}

// Message represents a single translatable unit extracted from a template.
// Two messages with the same content and meaning share the same ID and are
// the same translatable unit regardless of where they occur.
type Message struct {
	Content      string
	Placeholders map[string]*PlaceholderRef
	Meaning      string
	Description  string
	SourceSpan   *util.ParseSourceSpan
	ID           string
}

// NewMessage creates a new Message and computes its identity
func NewMessage(content string, placeholders map[string]*PlaceholderRef, meaning, description string, sourceSpan *util.ParseSourceSpan) *Message {
	return &Message{
		Content:      content,
		Placeholders: placeholders,
		Meaning:      meaning,
		Description:  description,
		SourceSpan:   sourceSpan,
		ID:           ComputeMsgID(content, meaning),
	}
}

// SplitMeaningAndDesc splits a `meaning|description` marker value. The pipe
// and either half are optional; a value without a pipe is all meaning.
func SplitMeaningAndDesc(i18n string) (meaning, description string) {
	if i18n == "" {
		return "", ""
	}
	pipe := strings.Index(i18n, "|")
	if pipe == -1 {
		return i18n, ""
	}
	return i18n[:pipe], i18n[pipe+1:]
}

// ExtractionResult represents the outcome of one extraction pass
type ExtractionResult struct {
	Messages []*Message
	Errors   []*util.ParseError
}

// NewExtractionResult creates a new ExtractionResult
func NewExtractionResult(messages []*Message, errors []*util.ParseError) *ExtractionResult {
	return &ExtractionResult{
		Messages: messages,
		Errors:   errors,
	}
}

// RemoveDuplicates keeps the first message seen for each distinct ID,
// preserving the relative order of first occurrences.
func RemoveDuplicates(messages []*Message) []*Message {
	seen := make(map[string]bool)
	var uniq []*Message
	for _, msg := range messages {
		if seen[msg.ID] {
			continue
		}
		seen[msg.ID] = true
		uniq = append(uniq, msg)
	}
	return uniq
}
