package assets

// DefaultStyleName is the name of the built-in CSS style.
const DefaultStyleName = "default"

// DefaultCoverName is the name of the built-in cover page template.
const DefaultCoverName = "cover"

// Loader defines the contract for loading CSS styles and HTML templates.
// Implementations may load from embedded assets, the filesystem, or both.
type Loader interface {
	// LoadStyle loads a CSS style by name (without the .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist and
	// ErrInvalidAssetName if the name contains invalid characters.
	LoadStyle(name string) (string, error)

	// LoadTemplate loads an HTML template by name (without the .html
	// extension). Returns ErrTemplateNotFound if the template doesn't
	// exist and ErrInvalidAssetName if the name contains invalid
	// characters.
	LoadTemplate(name string) (string, error)
}
