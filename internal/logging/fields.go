package logging

// Field name constants for structured logging.
const (
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"

	// Conversion fields.
	FieldFormat     = "format"
	FieldSource     = "source"
	FieldLanguage   = "language"
	FieldStartIndex = "start_index"
	FieldOperations = "operations"
	FieldLength     = "length"
	FieldFlavor     = "flavor"
	FieldJobs       = "jobs"
	FieldKind       = "kind"
	FieldLine       = "line"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesConverted  = "files_converted"
	FieldFilesFailed     = "files_failed"
	FieldFindingsTotal   = "findings_total"
	FieldDuration        = "duration"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
	FieldGo      = "go"
)
