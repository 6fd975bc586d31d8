package ml_parser

import "strings"

// TagContentType represents the content type of a tag
type TagContentType int

const (
	TagContentTypeRAW_TEXT TagContentType = iota
	TagContentTypeESCAPABLE_RAW_TEXT
	TagContentTypePARSABLE_DATA
)

// TagDefinition defines the parsing behavior of an HTML tag
type TagDefinition struct {
	closedByChildren map[string]bool
	ContentType      TagContentType
	ClosedByParent   bool
	IsVoid           bool
	IgnoreFirstLf    bool
	CanSelfClose     bool
}

// TagDefinitionOptions are options for creating a TagDefinition
type TagDefinitionOptions struct {
	ClosedByChildren []string
	ClosedByParent   bool
	ContentType      TagContentType
	IsVoid           bool
	IgnoreFirstLf    bool
	CanSelfClose     *bool
}

// NewTagDefinition creates a new TagDefinition
func NewTagDefinition(opts TagDefinitionOptions) *TagDefinition {
	closedByChildren := make(map[string]bool)
	for _, tagName := range opts.ClosedByChildren {
		closedByChildren[tagName] = true
	}

	canSelfClose := opts.IsVoid
	if opts.CanSelfClose != nil {
		canSelfClose = *opts.CanSelfClose
	}

	return &TagDefinition{
		closedByChildren: closedByChildren,
		ContentType:      opts.ContentType,
		ClosedByParent:   opts.ClosedByParent || opts.IsVoid,
		IsVoid:           opts.IsVoid,
		IgnoreFirstLf:    opts.IgnoreFirstLf,
		CanSelfClose:     canSelfClose,
	}
}

// IsClosedByChild returns whether a child tag implicitly closes this tag
func (t *TagDefinition) IsClosedByChild(name string) bool {
	return t.IsVoid || t.closedByChildren[strings.ToLower(name)]
}

// The tables are built once at package load so concurrent parses never
// observe a partially initialized map.
var (
	defaultTagDefinition = NewTagDefinition(TagDefinitionOptions{
		ContentType:  TagContentTypePARSABLE_DATA,
		CanSelfClose: boolPtr(true),
	})
	tagDefinitions = buildTagDefinitions()
)

// GetHtmlTagDefinition returns the tag definition for a tag name
func GetHtmlTagDefinition(tagName string) *TagDefinition {
	if def, exists := tagDefinitions[strings.ToLower(tagName)]; exists {
		return def
	}
	return defaultTagDefinition
}

func buildTagDefinitions() map[string]*TagDefinition {
	tagDefinitions := make(map[string]*TagDefinition)

	voidTags := []string{"base", "meta", "area", "embed", "link", "img", "input", "param", "hr", "br", "source", "track", "wbr", "col"}
	for _, tag := range voidTags {
		tagDefinitions[tag] = NewTagDefinition(TagDefinitionOptions{
			IsVoid:      true,
			ContentType: TagContentTypePARSABLE_DATA,
		})
	}

	tagDefinitions["p"] = NewTagDefinition(TagDefinitionOptions{
		ClosedByChildren: []string{
			"address", "article", "aside", "blockquote", "div", "dl", "fieldset",
			"footer", "form", "h1", "h2", "h3", "h4", "h5", "h6", "header",
			"hgroup", "hr", "main", "nav", "ol", "p", "pre", "section", "table", "ul",
		},
		ClosedByParent: true,
		ContentType:    TagContentTypePARSABLE_DATA,
	})

	tagDefinitions["thead"] = NewTagDefinition(TagDefinitionOptions{
		ClosedByChildren: []string{"tbody", "tfoot"},
		ContentType:      TagContentTypePARSABLE_DATA,
	})
	tagDefinitions["tbody"] = NewTagDefinition(TagDefinitionOptions{
		ClosedByChildren: []string{"tbody", "tfoot"},
		ClosedByParent:   true,
		ContentType:      TagContentTypePARSABLE_DATA,
	})
	tagDefinitions["tfoot"] = NewTagDefinition(TagDefinitionOptions{
		ClosedByChildren: []string{"tbody"},
		ClosedByParent:   true,
		ContentType:      TagContentTypePARSABLE_DATA,
	})
	tagDefinitions["tr"] = NewTagDefinition(TagDefinitionOptions{
		ClosedByChildren: []string{"tr"},
		ClosedByParent:   true,
		ContentType:      TagContentTypePARSABLE_DATA,
	})
	tagDefinitions["td"] = NewTagDefinition(TagDefinitionOptions{
		ClosedByChildren: []string{"td", "th"},
		ClosedByParent:   true,
		ContentType:      TagContentTypePARSABLE_DATA,
	})
	tagDefinitions["th"] = NewTagDefinition(TagDefinitionOptions{
		ClosedByChildren: []string{"td", "th"},
		ClosedByParent:   true,
		ContentType:      TagContentTypePARSABLE_DATA,
	})

	tagDefinitions["li"] = NewTagDefinition(TagDefinitionOptions{
		ClosedByChildren: []string{"li"},
		ClosedByParent:   true,
		ContentType:      TagContentTypePARSABLE_DATA,
	})
	tagDefinitions["dt"] = NewTagDefinition(TagDefinitionOptions{
		ClosedByChildren: []string{"dt", "dd"},
		ContentType:      TagContentTypePARSABLE_DATA,
	})
	tagDefinitions["dd"] = NewTagDefinition(TagDefinitionOptions{
		ClosedByChildren: []string{"dt", "dd"},
		ClosedByParent:   true,
		ContentType:      TagContentTypePARSABLE_DATA,
	})

	tagDefinitions["optgroup"] = NewTagDefinition(TagDefinitionOptions{
		ClosedByChildren: []string{"optgroup"},
		ClosedByParent:   true,
		ContentType:      TagContentTypePARSABLE_DATA,
	})
	tagDefinitions["option"] = NewTagDefinition(TagDefinitionOptions{
		ClosedByChildren: []string{"option", "optgroup"},
		ClosedByParent:   true,
		ContentType:      TagContentTypePARSABLE_DATA,
	})

	tagDefinitions["pre"] = NewTagDefinition(TagDefinitionOptions{
		IgnoreFirstLf: true,
		ContentType:   TagContentTypePARSABLE_DATA,
	})
	tagDefinitions["listing"] = NewTagDefinition(TagDefinitionOptions{
		IgnoreFirstLf: true,
		ContentType:   TagContentTypePARSABLE_DATA,
	})
	tagDefinitions["style"] = NewTagDefinition(TagDefinitionOptions{
		ContentType: TagContentTypeRAW_TEXT,
	})
	tagDefinitions["script"] = NewTagDefinition(TagDefinitionOptions{
		ContentType: TagContentTypeRAW_TEXT,
	})
	tagDefinitions["title"] = NewTagDefinition(TagDefinitionOptions{
		ContentType: TagContentTypeESCAPABLE_RAW_TEXT,
	})
	tagDefinitions["textarea"] = NewTagDefinition(TagDefinitionOptions{
		ContentType:   TagContentTypeESCAPABLE_RAW_TEXT,
		IgnoreFirstLf: true,
	})

	return tagDefinitions
}

func boolPtr(b bool) *bool {
	return &b
}
