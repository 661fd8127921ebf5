// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldWorkingDir = "working_dir"
	FieldCommand    = "command"
	FieldBackup     = "backup"

	// Parser fields.
	FieldParser   = "parser"
	FieldPriority = "priority"
	FieldPrevious = "previous"
	FieldStrict   = "strict"
	FieldBytes    = "bytes"
	FieldWarnings = "warnings"
	FieldErrors   = "errors"
	FieldChunks   = "chunks"
	FieldJobs     = "jobs"

	// Keyword fields.
	FieldKeyword  = "keyword"
	FieldNodeType = "node_type"
	FieldAliases  = "aliases"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
