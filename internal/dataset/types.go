package dataset

import "time"

// FileRecord holds everything the static-analysis collaborator knows about
// a single source file. Paths are relative, forward-slash normalized, and
// double as node ids in the graph layer.
type FileRecord struct {
	Path            string   `json:"path"`
	Name            string   `json:"name"`
	Lang            string   `json:"lang"`
	Exports         []Export `json:"exports,omitempty"`
	Imports         []Import `json:"imports,omitempty"`
	Symbols         []string `json:"symbols,omitempty"`
	Blocks          []Block  `json:"blocks,omitempty"`
	Summary         string   `json:"summary,omitempty"`
	DetailedSummary string   `json:"detailedSummary,omitempty"`
	UsedBy          []string `json:"usedBy,omitempty"`

	// Analyzing marks an in-flight deep-analysis request. It is transient
	// UI state and never round-trips through the collaborator.
	Analyzing bool `json:"-"`
}

// Export describes a single exported symbol.
type Export struct {
	Name string `json:"name"`
	Kind string `json:"kind"` // function, class, const, type, etc.
}

// Import describes a single import statement target.
type Import struct {
	Target string `json:"target"`
	Local  bool   `json:"local"` // true for project-relative imports
}

// Block is one structural unit of a file (function, class, section) as
// returned by deep analysis.
type Block struct {
	Name      string   `json:"name"`
	Kind      string   `json:"kind"`
	StartLine int      `json:"startLine,omitempty"`
	EndLine   int      `json:"endLine,omitempty"`
	Summary   string   `json:"summary,omitempty"`
	Calls     []string `json:"calls,omitempty"`
	CalledBy  []string `json:"calledBy,omitempty"`
}

// DirectoryRecord describes one directory. The root directory uses path ".".
type DirectoryRecord struct {
	Path    string   `json:"path"`
	Files   []string `json:"files,omitempty"`
	Dirs    []string `json:"dirs,omitempty"`
	Summary string   `json:"summary,omitempty"`
}

// Stats carries dataset-level metadata.
type Stats struct {
	TotalFiles  int       `json:"totalFiles"`
	TotalDirs   int       `json:"totalDirs"`
	GeneratedAt time.Time `json:"generatedAt,omitempty"`
}

// Dataset is the full analysis payload delivered by the collaborator,
// once at load and optionally re-delivered wholesale on refresh.
type Dataset struct {
	Stats Stats                       `json:"stats"`
	Files map[string]*FileRecord      `json:"files"`
	Dirs  map[string]*DirectoryRecord `json:"directories"`
}
