package ml_parser

// HtmlParser parses HTML templates using the HTML tag definitions
type HtmlParser struct {
	*Parser
}

// NewHtmlParser creates a new HtmlParser
func NewHtmlParser() *HtmlParser {
	return &HtmlParser{
		Parser: NewParser(GetHtmlTagDefinition),
	}
}
