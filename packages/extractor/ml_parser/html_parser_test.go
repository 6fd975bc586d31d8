package ml_parser_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"ngi18n-go/packages/extractor/ml_parser"
)

func TestHtmlParser_Parse(t *testing.T) {
	parser := ml_parser.NewHtmlParser()

	t.Run("text nodes", func(t *testing.T) {
		t.Run("should parse root level text nodes", func(t *testing.T) {
			expected := []interface{}{
				[]interface{}{"Text", "a", 0},
			}
			result := HumanizeDom(parser.Parse("a", "TestComp", nil))
			if diff := cmp.Diff(expected, result); diff != "" {
				t.Errorf("HumanizeDom() mismatch (-want +got):\n%s", diff)
			}
		})

		t.Run("should parse text nodes inside regular elements", func(t *testing.T) {
			expected := []interface{}{
				[]interface{}{"Element", "div", 0},
				[]interface{}{"Text", "a", 1},
			}
			result := HumanizeDom(parser.Parse("<div>a</div>", "TestComp", nil))
			if diff := cmp.Diff(expected, result); diff != "" {
				t.Errorf("HumanizeDom() mismatch (-want +got):\n%s", diff)
			}
		})

		t.Run("should parse CDATA", func(t *testing.T) {
			expected := []interface{}{
				[]interface{}{"Text", "text", 0},
			}
			result := HumanizeDom(parser.Parse("<![CDATA[text]]>", "TestComp", nil))
			if diff := cmp.Diff(expected, result); diff != "" {
				t.Errorf("HumanizeDom() mismatch (-want +got):\n%s", diff)
			}
		})
	})

	t.Run("elements", func(t *testing.T) {
		t.Run("should parse root level elements", func(t *testing.T) {
			expected := []interface{}{
				[]interface{}{"Element", "div", 0},
			}
			result := HumanizeDom(parser.Parse("<div></div>", "TestComp", nil))
			if diff := cmp.Diff(expected, result); diff != "" {
				t.Errorf("HumanizeDom() mismatch (-want +got):\n%s", diff)
			}
		})

		t.Run("should parse elements inside of regular elements", func(t *testing.T) {
			expected := []interface{}{
				[]interface{}{"Element", "div", 0},
				[]interface{}{"Element", "span", 1},
			}
			result := HumanizeDom(parser.Parse("<div><span></span></div>", "TestComp", nil))
			if diff := cmp.Diff(expected, result); diff != "" {
				t.Errorf("HumanizeDom() mismatch (-want +got):\n%s", diff)
			}
		})

		t.Run("should support void elements", func(t *testing.T) {
			expected := []interface{}{
				[]interface{}{"Element", "link", 0},
				[]interface{}{"Attribute", "rel", "author license"},
				[]interface{}{"Attribute", "href", "/about"},
			}
			result := HumanizeDom(parser.Parse(`<link rel="author license" href="/about">`, "TestComp", nil))
			if diff := cmp.Diff(expected, result); diff != "" {
				t.Errorf("HumanizeDom() mismatch (-want +got):\n%s", diff)
			}
		})

		t.Run("should not append children to void elements", func(t *testing.T) {
			expected := []interface{}{
				[]interface{}{"Element", "div", 0},
				[]interface{}{"Element", "br", 1},
				[]interface{}{"Element", "span", 1},
			}
			result := HumanizeDom(parser.Parse("<div><br><span></span></div>", "TestComp", nil))
			if diff := cmp.Diff(expected, result); diff != "" {
				t.Errorf("HumanizeDom() mismatch (-want +got):\n%s", diff)
			}
		})

		t.Run("should close void elements on text nodes", func(t *testing.T) {
			expected := []interface{}{
				[]interface{}{"Element", "p", 0},
				[]interface{}{"Text", "before", 1},
				[]interface{}{"Element", "br", 1},
				[]interface{}{"Text", "after", 1},
			}
			result := HumanizeDom(parser.Parse("<p>before<br>after</p>", "TestComp", nil))
			if diff := cmp.Diff(expected, result); diff != "" {
				t.Errorf("HumanizeDom() mismatch (-want +got):\n%s", diff)
			}
		})

		t.Run("should close p elements on subsequent p start tags", func(t *testing.T) {
			expected := []interface{}{
				[]interface{}{"Element", "p", 0},
				[]interface{}{"Text", "1", 1},
				[]interface{}{"Element", "p", 0},
				[]interface{}{"Text", "2", 1},
			}
			result := HumanizeDom(parser.Parse("<p>1<p>2", "TestComp", nil))
			if diff := cmp.Diff(expected, result); diff != "" {
				t.Errorf("HumanizeDom() mismatch (-want +got):\n%s", diff)
			}
		})

		t.Run("should close li elements and reopen under the same ul", func(t *testing.T) {
			expected := []interface{}{
				[]interface{}{"Element", "ul", 0},
				[]interface{}{"Element", "li", 1},
				[]interface{}{"Text", "a", 2},
				[]interface{}{"Element", "li", 1},
				[]interface{}{"Text", "b", 2},
			}
			result := HumanizeDom(parser.Parse("<ul><li>a<li>b</ul>", "TestComp", nil))
			if diff := cmp.Diff(expected, result); diff != "" {
				t.Errorf("HumanizeDom() mismatch (-want +got):\n%s", diff)
			}
		})

		t.Run("should parse self-closing custom elements", func(t *testing.T) {
			expected := []interface{}{
				[]interface{}{"Element", "my-cmp", 0, "#selfClosing"},
			}
			result := HumanizeDom(parser.Parse("<my-cmp/>", "TestComp", nil))
			if diff := cmp.Diff(expected, result); diff != "" {
				t.Errorf("HumanizeDom() mismatch (-want +got):\n%s", diff)
			}
		})

		t.Run("should ignore the first newline of pre elements", func(t *testing.T) {
			expected := []interface{}{
				[]interface{}{"Element", "pre", 0},
				[]interface{}{"Text", "abc", 1},
			}
			result := HumanizeDom(parser.Parse("<pre>\nabc</pre>", "TestComp", nil))
			if diff := cmp.Diff(expected, result); diff != "" {
				t.Errorf("HumanizeDom() mismatch (-want +got):\n%s", diff)
			}
		})

		t.Run("should parse script content as a single raw text node", func(t *testing.T) {
			expected := []interface{}{
				[]interface{}{"Element", "script", 0},
				[]interface{}{"Text", "a<b", 1},
			}
			result := HumanizeDom(parser.Parse("<script>a<b</script>", "TestComp", nil))
			if diff := cmp.Diff(expected, result); diff != "" {
				t.Errorf("HumanizeDom() mismatch (-want +got):\n%s", diff)
			}
		})
	})

	t.Run("attributes", func(t *testing.T) {
		t.Run("should parse attributes on regular elements", func(t *testing.T) {
			expected := []interface{}{
				[]interface{}{"Element", "div", 0},
				[]interface{}{"Attribute", "kEy", "v"},
				[]interface{}{"Attribute", "key2", "v2"},
			}
			result := HumanizeDom(parser.Parse(`<div kEy="v" key2=v2></div>`, "TestComp", nil))
			if diff := cmp.Diff(expected, result); diff != "" {
				t.Errorf("HumanizeDom() mismatch (-want +got):\n%s", diff)
			}
		})

		t.Run("should parse attributes without values", func(t *testing.T) {
			expected := []interface{}{
				[]interface{}{"Element", "div", 0},
				[]interface{}{"Attribute", "k", ""},
			}
			result := HumanizeDom(parser.Parse("<div k></div>", "TestComp", nil))
			if diff := cmp.Diff(expected, result); diff != "" {
				t.Errorf("HumanizeDom() mismatch (-want +got):\n%s", diff)
			}
		})
	})

	t.Run("comments", func(t *testing.T) {
		t.Run("should preserve comments", func(t *testing.T) {
			expected := []interface{}{
				[]interface{}{"Comment", "comment", 0},
				[]interface{}{"Element", "div", 0},
			}
			result := HumanizeDom(parser.Parse("<!--comment--><div></div>", "TestComp", nil))
			if diff := cmp.Diff(expected, result); diff != "" {
				t.Errorf("HumanizeDom() mismatch (-want +got):\n%s", diff)
			}
		})
	})

	t.Run("source spans", func(t *testing.T) {
		t.Run("should set the end source span on closed elements", func(t *testing.T) {
			result := parser.Parse("<div>a</div>", "TestComp", nil)
			if len(result.Errors) != 0 {
				t.Fatalf("unexpected errors: %v", result.Errors)
			}
			el := result.RootNodes[0].(*ml_parser.Element)
			if el.SourceSpan().String() != "<div>a</div>" {
				t.Errorf("unexpected source span %q", el.SourceSpan().String())
			}
			if el.EndSourceSpan == nil || el.EndSourceSpan.String() != "</div>" {
				t.Errorf("unexpected end source span")
			}
		})
	})

	t.Run("errors", func(t *testing.T) {
		t.Run("should report unexpected closing tags", func(t *testing.T) {
			result := parser.Parse("<div></p></div>", "TestComp", nil)
			expected := []interface{}{
				[]interface{}{`Unexpected closing tag "p". It may happen when the tag has already been closed by another tag. For more info see https://www.w3.org/TR/html5/syntax.html#closing-elements-that-have-implied-end-tags`, "0:5"},
			}
			if diff := cmp.Diff(expected, humanizeErrors(result.Errors)); diff != "" {
				t.Errorf("humanizeErrors() mismatch (-want +got):\n%s", diff)
			}
		})

		t.Run("should report closing tags for void elements", func(t *testing.T) {
			result := parser.Parse("<input></input>", "TestComp", nil)
			expected := []interface{}{
				[]interface{}{`Void elements do not have end tags "input"`, "0:7"},
			}
			if diff := cmp.Diff(expected, humanizeErrors(result.Errors)); diff != "" {
				t.Errorf("humanizeErrors() mismatch (-want +got):\n%s", diff)
			}
		})

		t.Run("should report self-closing non-void elements", func(t *testing.T) {
			result := parser.Parse("<p/>", "TestComp", nil)
			expected := []interface{}{
				[]interface{}{`Only void, custom and foreign elements can be self closed "p"`, "0:0"},
			}
			if diff := cmp.Diff(expected, humanizeErrors(result.Errors)); diff != "" {
				t.Errorf("humanizeErrors() mismatch (-want +got):\n%s", diff)
			}
		})
	})
}
