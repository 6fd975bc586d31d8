package ml_parser

// InterpolationConfig defines the delimiters of interpolated expressions
type InterpolationConfig struct {
	Start string
	End   string
}

// DefaultInterpolationConfig is the `{{` / `}}` pair used by default
var DefaultInterpolationConfig = &InterpolationConfig{
	Start: "{{",
	End:   "}}",
}
