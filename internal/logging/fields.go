package logging

// Field names for structured logging.
const (
	// Common fields.
	FieldError  = "error"
	FieldPath   = "path"
	FieldOutput = "output"
	FieldConfig = "config"

	// Input fields.
	FieldEncoding = "encoding"
	FieldMarkdown = "markdown"
	FieldBytes    = "bytes"

	// Layout fields.
	FieldLines        = "lines"
	FieldPages        = "pages"
	FieldLinesPerPage = "lines_per_page"
	FieldMaxLineWidth = "max_line_width"

	// Delivery fields.
	FieldSink      = "sink"
	FieldPage      = "page"
	FieldTotal     = "total"
	FieldDelivered = "delivered"
	FieldPageLimit = "page_limit"
	FieldDelay     = "delay"
	FieldPauses    = "pauses"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
