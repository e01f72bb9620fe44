package cache

// Keyer derives cache keys.
type Keyer interface {
	// DocumentKey identifies a document by its content hash.
	DocumentKey(docHash string) string

	// ArtifactKey identifies a rendered artifact of a document.
	ArtifactKey(docHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts are the render options that change artifact bytes.
type ArtifactKeyOpts struct {
	Format     string  `json:"format"`
	Style      string  `json:"style"`
	RootID     string  `json:"root_id,omitempty"`
	AutoLayout bool    `json:"auto_layout,omitempty"`
	Measure    bool    `json:"measure,omitempty"`
	Width      float64 `json:"width,omitempty"`
	Height     float64 `json:"height,omitempty"`
	Shadows    bool    `json:"shadows,omitempty"`
	Highlight  string  `json:"highlight,omitempty"`
	Selected   string  `json:"selected,omitempty"`
	Detailed   bool    `json:"detailed,omitempty"`
	HideLinks  bool    `json:"hide_links,omitempty"`
	ExpandAll  bool    `json:"expand_all,omitempty"`
	Scale      float64 `json:"scale,omitempty"`

	// Geometry is a hash of the layout, routing and viewport constants.
	Geometry string `json:"geometry,omitempty"`
}

// DefaultKeyer produces unscoped keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// DocumentKey returns "doc:<hash>".
func (DefaultKeyer) DocumentKey(docHash string) string { return "doc:" + docHash }

// ArtifactKey hashes the document hash together with the options.
func (DefaultKeyer) ArtifactKey(docHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", docHash, opts)
}
