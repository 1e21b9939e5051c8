package document

// Document is the normalized shape of one parsed interface document.
type Document struct {
	// Title is the document's info.title; doubles as its provenance label.
	Title string `yaml:"title" json:"title"`
	// Version is the document's info.version.
	Version string `yaml:"version,omitempty" json:"version,omitempty"`
	// BaseURL is the first server URL declared by the document.
	BaseURL string `yaml:"baseURL,omitempty" json:"baseURL,omitempty"`
	// Operations holds every method+path entry extracted from the document.
	Operations []*Operation `yaml:"operations,omitempty" json:"operations,omitempty"`
	// Schemas holds the named schema definitions (components.schemas).
	Schemas []*SchemaDef `yaml:"schemas,omitempty" json:"schemas,omitempty"`

	// Raw is the decoded document tree the normalized view was extracted
	// from. The bundler resolves $ref fragments against it. Nil for
	// documents constructed programmatically.
	Raw map[string]any `yaml:"-" json:"-"`
}

// FindOperation returns the operation matching method and path, or nil.
// Method comparison is case-insensitive; path comparison is exact.
func (d *Document) FindOperation(method, path string) *Operation {
	key := operationKey(method, path)
	for _, op := range d.Operations {
		if op.Key() == key {
			return op
		}
	}
	return nil
}

// Set is the caller-owned list of loaded documents. Engine functions resolve
// EndpointRef values against it at call time; the engine never snapshots it.
type Set []*Document

// Titles returns the source titles of all documents in order.
func (s Set) Titles() []string {
	titles := make([]string, len(s))
	for i, d := range s {
		titles[i] = d.Title
	}
	return titles
}

// Info carries unified document metadata.
type Info struct {
	Title       string `yaml:"title" json:"title"`
	Version     string `yaml:"version" json:"version"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	// Extra captures extension fields (x-merged-from and friends).
	Extra map[string]any `yaml:",inline" json:"-"`
}

// Server describes one entry of the unified servers list.
type Server struct {
	URL         string `yaml:"url" json:"url"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// Components holds the reusable objects of a unified document.
type Components struct {
	Schemas         map[string]*Schema    `yaml:"schemas,omitempty" json:"schemas,omitempty"`
	Parameters      map[string]*Parameter `yaml:"parameters,omitempty" json:"parameters,omitempty"`
	Responses       map[string]*Response  `yaml:"responses,omitempty" json:"responses,omitempty"`
	SecuritySchemes map[string]any        `yaml:"securitySchemes,omitempty" json:"securitySchemes,omitempty"`
}

// Unified is the merge engine's output document shape. Downstream code
// emitters consume it directly; x-consolidation and x-co2-impact extension
// fields inside operations are pass-through metadata.
type Unified struct {
	OpenAPI    string                           `yaml:"openapi" json:"openapi"`
	Info       *Info                            `yaml:"info" json:"info"`
	Servers    []*Server                        `yaml:"servers,omitempty" json:"servers,omitempty"`
	Paths      map[string]map[string]*Operation `yaml:"paths" json:"paths"`
	Components *Components                      `yaml:"components,omitempty" json:"components,omitempty"`
}

// AddOperation splices op into the unified paths under its method and path.
// An existing entry for the same method+path is replaced.
func (u *Unified) AddOperation(op *Operation) {
	if u.Paths == nil {
		u.Paths = make(map[string]map[string]*Operation)
	}
	item, ok := u.Paths[op.Path]
	if !ok {
		item = make(map[string]*Operation)
		u.Paths[op.Path] = item
	}
	item[lowerMethod(op.Method)] = op
}
