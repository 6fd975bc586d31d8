package i18n

import (
	"strings"

	"ngi18n-go/packages/extractor/ml_parser"
	"ngi18n-go/packages/extractor/util"
)

const (
	// I18nAttr is the marker attribute making an element's content translatable
	I18nAttr = "i18n"
	// I18nAttrPrefix marks an attribute of the same element as translatable
	I18nAttrPrefix = "i18n-"
	// i18nCommentPrefix opens a translatable run of siblings; i18nCommentClose ends it
	i18nCommentPrefix = "i18n"
	i18nCommentClose  = "/i18n"
)

// Part is a contiguous run of sibling nodes produced by Partition. Children
// always holds the covered siblings; RootElement is set when the part is a
// single element (translatable or not), in which case Children is that element.
type Part struct {
	RootElement    *ml_parser.Element
	Children       []ml_parser.Node
	I18n           string
	IsTranslatable bool
}

// SourceSpan returns the span covered by this part
func (p *Part) SourceSpan() *util.ParseSourceSpan {
	if p.RootElement != nil {
		return p.RootElement.SourceSpan()
	}
	if len(p.Children) == 0 {
		return nil
	}
	first := p.Children[0].SourceSpan()
	last := p.Children[len(p.Children)-1].SourceSpan()
	return util.NewParseSourceSpan(first.Start, last.End, first.FullStart, nil)
}

// Partition splits siblings into parts. An element with the marker attribute,
// or whose tag is in implicitTags, forms a translatable single-element part.
// A run wrapped in `<!--i18n-->` / `<!--/i18n-->` comments forms a translatable
// part excluding the comments themselves. Everything else is its own
// non-translatable part. Structural marker errors are appended to errors and
// never abort the scan.
func Partition(nodes []ml_parser.Node, errors *[]*util.ParseError, implicitTags []string) []*Part {
	var parts []*Part

	for i := 0; i < len(nodes); i++ {
		node := nodes[i]
		switch n := node.(type) {
		case *ml_parser.Comment:
			if isOpeningComment(n) {
				i18n := markerMeaningAndDesc(n)
				var covered []ml_parser.Node
				closed := false
				for i++; i < len(nodes); i++ {
					if c, ok := nodes[i].(*ml_parser.Comment); ok && isClosingComment(c) {
						closed = true
						break
					}
					covered = append(covered, nodes[i])
				}
				if !closed {
					*errors = append(*errors, util.NewParseError(n.SourceSpan(), "Missing closing 'i18n' comment."))
				}
				parts = append(parts, &Part{Children: covered, I18n: i18n, IsTranslatable: true})
			} else if isClosingComment(n) {
				*errors = append(*errors, util.NewParseError(n.SourceSpan(), "Unexpected closing 'i18n' comment."))
				parts = append(parts, &Part{Children: []ml_parser.Node{node}})
			} else {
				parts = append(parts, &Part{Children: []ml_parser.Node{node}})
			}
		case *ml_parser.Element:
			i18nAttr := findI18nAttr(n)
			i18n := ""
			if i18nAttr != nil {
				i18n = i18nAttr.Value
			}
			parts = append(parts, &Part{
				RootElement:    n,
				Children:       []ml_parser.Node{node},
				I18n:           i18n,
				IsTranslatable: i18nAttr != nil || containsTag(implicitTags, n.Name),
			})
		default:
			parts = append(parts, &Part{Children: []ml_parser.Node{node}})
		}
	}

	return parts
}

func isOpeningComment(comment *ml_parser.Comment) bool {
	value := strings.TrimSpace(comment.Value)
	return strings.HasPrefix(value, i18nCommentPrefix) && !strings.HasPrefix(value, i18nCommentClose)
}

func isClosingComment(comment *ml_parser.Comment) bool {
	return strings.TrimSpace(comment.Value) == i18nCommentClose
}

// markerMeaningAndDesc strips the `i18n` prefix and optional colon from an
// opening marker comment, leaving the `meaning|description` pair.
func markerMeaningAndDesc(comment *ml_parser.Comment) string {
	value := strings.TrimSpace(comment.Value)
	value = strings.TrimPrefix(value, i18nCommentPrefix)
	value = strings.TrimPrefix(value, ":")
	return strings.TrimSpace(value)
}

func findI18nAttr(el *ml_parser.Element) *ml_parser.Attribute {
	for _, attr := range el.Attrs {
		if attr.Name == I18nAttr {
			return attr
		}
	}
	return nil
}

func containsTag(tags []string, name string) bool {
	for _, tag := range tags {
		if tag == name {
			return true
		}
	}
	return false
}
