package i18n_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ngi18n-go/packages/extractor/i18n"
	"ngi18n-go/packages/extractor/ml_parser"
	"ngi18n-go/packages/extractor/util"
)

func parseNodes(t *testing.T, template string) []ml_parser.Node {
	t.Helper()
	result := ml_parser.NewHtmlParser().Parse(template, "TestComp", nil)
	require.Empty(t, result.Errors, "unexpected parse errors")
	return result.RootNodes
}

func TestPartition(t *testing.T) {
	t.Run("should put each plain node into its own part", func(t *testing.T) {
		nodes := parseNodes(t, "a<div></div><!--c-->")
		var errors []*util.ParseError
		parts := i18n.Partition(nodes, &errors, nil)

		require.Empty(t, errors)
		require.Len(t, parts, 3)
		for _, part := range parts {
			assert.False(t, part.IsTranslatable)
			assert.Len(t, part.Children, 1)
		}
		assert.Nil(t, parts[0].RootElement)
		assert.NotNil(t, parts[1].RootElement)
		assert.Nil(t, parts[2].RootElement)
	})

	t.Run("should mark elements with the i18n attribute translatable", func(t *testing.T) {
		nodes := parseNodes(t, `<div i18n="meaning|desc">text</div>`)
		var errors []*util.ParseError
		parts := i18n.Partition(nodes, &errors, nil)

		require.Empty(t, errors)
		require.Len(t, parts, 1)
		assert.True(t, parts[0].IsTranslatable)
		assert.Equal(t, "meaning|desc", parts[0].I18n)
		require.NotNil(t, parts[0].RootElement)
		assert.Equal(t, "div", parts[0].RootElement.Name)
	})

	t.Run("should mark implicit tags translatable", func(t *testing.T) {
		nodes := parseNodes(t, "<p>text</p><div>other</div>")
		var errors []*util.ParseError
		parts := i18n.Partition(nodes, &errors, []string{"p"})

		require.Empty(t, errors)
		require.Len(t, parts, 2)
		assert.True(t, parts[0].IsTranslatable)
		assert.Equal(t, "", parts[0].I18n)
		assert.False(t, parts[1].IsTranslatable)
	})

	t.Run("should group siblings between marker comments", func(t *testing.T) {
		nodes := parseNodes(t, "before<!--i18n: meaning|desc-->Hello <b>World</b><!--/i18n-->after")
		var errors []*util.ParseError
		parts := i18n.Partition(nodes, &errors, nil)

		require.Empty(t, errors)
		require.Len(t, parts, 3)

		assert.False(t, parts[0].IsTranslatable)

		assert.True(t, parts[1].IsTranslatable)
		assert.Equal(t, "meaning|desc", parts[1].I18n)
		assert.Nil(t, parts[1].RootElement)
		// the marker comments themselves are not part of the message
		require.Len(t, parts[1].Children, 2)
		_, isText := parts[1].Children[0].(*ml_parser.Text)
		assert.True(t, isText)
		el, isElement := parts[1].Children[1].(*ml_parser.Element)
		require.True(t, isElement)
		assert.Equal(t, "b", el.Name)

		assert.False(t, parts[2].IsTranslatable)
	})

	t.Run("should accept a marker comment without meaning or description", func(t *testing.T) {
		nodes := parseNodes(t, "<!--i18n-->text<!--/i18n-->")
		var errors []*util.ParseError
		parts := i18n.Partition(nodes, &errors, nil)

		require.Empty(t, errors)
		require.Len(t, parts, 1)
		assert.True(t, parts[0].IsTranslatable)
		assert.Equal(t, "", parts[0].I18n)
	})

	t.Run("should report an unterminated marker comment", func(t *testing.T) {
		nodes := parseNodes(t, "<!--i18n-->text")
		var errors []*util.ParseError
		parts := i18n.Partition(nodes, &errors, nil)

		require.Len(t, errors, 1)
		assert.Equal(t, "Missing closing 'i18n' comment.", errors[0].Msg)
		// the dangling part still covers the remaining siblings
		require.Len(t, parts, 1)
		assert.True(t, parts[0].IsTranslatable)
		assert.Len(t, parts[0].Children, 1)
	})

	t.Run("should report an unmatched closing marker comment", func(t *testing.T) {
		nodes := parseNodes(t, "text<!--/i18n-->")
		var errors []*util.ParseError
		parts := i18n.Partition(nodes, &errors, nil)

		require.Len(t, errors, 1)
		assert.Equal(t, "Unexpected closing 'i18n' comment.", errors[0].Msg)
		require.Len(t, parts, 2)
		assert.False(t, parts[1].IsTranslatable)
	})

	t.Run("should cover every sibling exactly once", func(t *testing.T) {
		templates := []string{
			"a<div i18n>b</div>c",
			"<p>a</p><p>b</p>",
			`x<span i18n="d">y</span><!--note-->z`,
		}
		for _, template := range templates {
			nodes := parseNodes(t, template)
			var errors []*util.ParseError
			parts := i18n.Partition(nodes, &errors, nil)

			covered := 0
			for _, part := range parts {
				covered += len(part.Children)
			}
			assert.Equal(t, len(nodes), covered, "template %q", template)
		}
	})
}

func TestSplitMeaningAndDesc(t *testing.T) {
	t.Run("should split on the first pipe", func(t *testing.T) {
		meaning, desc := i18n.SplitMeaningAndDesc("meaning|desc")
		assert.Equal(t, "meaning", meaning)
		assert.Equal(t, "desc", desc)

		meaning, desc = i18n.SplitMeaningAndDesc("m|a|b")
		assert.Equal(t, "m", meaning)
		assert.Equal(t, "a|b", desc)
	})

	t.Run("should treat a value without a pipe as all meaning", func(t *testing.T) {
		meaning, desc := i18n.SplitMeaningAndDesc("just meaning")
		assert.Equal(t, "just meaning", meaning)
		assert.Equal(t, "", desc)
	})

	t.Run("should handle the empty value", func(t *testing.T) {
		meaning, desc := i18n.SplitMeaningAndDesc("")
		assert.Equal(t, "", meaning)
		assert.Equal(t, "", desc)
	})
}

func TestRemoveDuplicates(t *testing.T) {
	t.Run("should keep the first occurrence of each id", func(t *testing.T) {
		first := i18n.NewMessage("Same", nil, "", "first", nil)
		second := i18n.NewMessage("Same", nil, "", "second", nil)
		other := i18n.NewMessage("Other", nil, "", "", nil)

		uniq := i18n.RemoveDuplicates([]*i18n.Message{first, second, other})
		require.Len(t, uniq, 2)
		assert.Same(t, first, uniq[0])
		assert.Same(t, other, uniq[1])
	})

	t.Run("should keep messages with the same content but different meaning", func(t *testing.T) {
		a := i18n.NewMessage("Same", nil, "meaning a", "", nil)
		b := i18n.NewMessage("Same", nil, "meaning b", "", nil)

		uniq := i18n.RemoveDuplicates([]*i18n.Message{a, b})
		assert.Len(t, uniq, 2)
	})
}
