package cache

// Keyer builds cache keys.
type Keyer interface {
	// ArtifactKey addresses one exported artifact of a document.
	ArtifactKey(docHash string, opts ArtifactKeyOpts) string
	// PagesKey addresses the page count of a document under the given
	// paging options.
	PagesKey(docHash string, opts PagesKeyOpts) string
}

// PagesKeyOpts are the options that change how a document is paged.
type PagesKeyOpts struct {
	Paper          string  `json:"paper"`
	PerPage        float64 `json:"per_page"`
	PaperDefault   string  `json:"paper_default,omitempty"`
	PerPageDefault float64 `json:"per_page_default,omitempty"`
	Header         *bool   `json:"header,omitempty"`
	Footer         *bool   `json:"footer,omitempty"`
}

// ArtifactKeyOpts are the options that change an exported artifact.
type ArtifactKeyOpts struct {
	PagesKeyOpts
	Format  string  `json:"format"`
	Page    int     `json:"page"`
	Zoom    float64 `json:"zoom"`
	Section string  `json:"section"`
	Borders *bool   `json:"borders,omitempty"`
}

// DefaultKeyer hashes its inputs into "kind:sha256" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) ArtifactKey(docHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", docHash, opts)
}

func (DefaultKeyer) PagesKey(docHash string, opts PagesKeyOpts) string {
	return hashKey("pages", docHash, opts)
}
