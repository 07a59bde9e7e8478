package engine

// ImportRequest represents a request to import sources into a fontgarden.
type ImportRequest struct {
	// Target is the fontgarden directory (created if missing)
	Target string

	// Sources are the UFO source paths to import
	Sources []string

	// TargetSets restricts the import to these sets (empty means all)
	TargetSets []string

	// DryRun performs planning only without making changes
	DryRun bool
}

// DiffRequest represents a request to preview an import.
type DiffRequest struct {
	// Target is the fontgarden directory
	Target string

	// Sources are the UFO source paths that would be imported
	Sources []string

	// TargetSets restricts the comparison to these sets (empty means all)
	TargetSets []string
}

// ExportRequest represents a request to export a fontgarden to UFO sources.
type ExportRequest struct {
	// Source is the fontgarden directory
	Source string

	// OutputDir receives the UFO sources (default: current directory)
	OutputDir string

	// Styles restricts the export to these styles (empty means all)
	Styles []string
}

// StatusRequest represents a request for fontgarden status.
type StatusRequest struct {
	// Path is the fontgarden directory
	Path string
}
