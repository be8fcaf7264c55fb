package assets

// Names of the built-in assets.
const (
	DefaultStyleName     = "default"
	DocumentTemplateName = "document"
)
