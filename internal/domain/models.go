package domain

// Query identifies the vehicle a description is requested for.
// Fields are free-form text; callers are responsible for URL-safe values.
type Query struct {
	Year  string `json:"year"`
	Make  string `json:"make"`
	Model string `json:"model"`
}

// ProductRecord is one product listing pulled from the catalog page.
// Any field may be empty if the corresponding element was not found.
type ProductRecord struct {
	Title    string `json:"title"`
	Price    string `json:"price"`
	ImageURL string `json:"imageUrl"`
}

// PageMetadata holds auxiliary fields extracted from the rendered page.
// HTMLLength is the size of the full rendered markup, kept as a
// diagnostic signal only.
type PageMetadata struct {
	Title       string `json:"title"`
	Breadcrumbs string `json:"breadcrumbs"`
	Description string `json:"description"`
	HTMLLength  int    `json:"htmlLength"`
}

// ExtractionOutcome is the hinge of the fallback logic: either the page
// rendered and was extracted (Products/Metadata populated, Failed false),
// or rendering failed (Failed true, Cause set). Exactly one shape holds.
type ExtractionOutcome struct {
	Failed   bool
	Cause    string
	Products []ProductRecord
	Metadata PageMetadata
}

// SuccessOutcome builds the success variant.
func SuccessOutcome(products []ProductRecord, meta PageMetadata) ExtractionOutcome {
	return ExtractionOutcome{Products: products, Metadata: meta}
}

// FailureOutcome builds the failure variant from the underlying error text.
func FailureOutcome(cause string) ExtractionOutcome {
	return ExtractionOutcome{Failed: true, Cause: cause}
}

// DescriptionRequest is the sole input to description synthesis.
type DescriptionRequest struct {
	Query   Query
	Outcome ExtractionOutcome
}

// PipelineResult is the terminal artifact of one pipeline invocation.
// It is never partially populated: either the success shape (Products and
// Metadata present, Degraded false) or the fallback shape (Products empty,
// Metadata nil, Degraded true, DegradedReason set).
type PipelineResult struct {
	Description    string
	Products       []ProductRecord
	Metadata       *PageMetadata
	SourceURL      string
	Degraded       bool
	DegradedReason string
}
