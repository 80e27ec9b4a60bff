package logging

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldRunID is the standardized structured logging key for harvest run identifiers.
	FieldRunID = "run_id"
	// FieldPage is the standardized structured logging key for listing page numbers.
	FieldPage = "page"
	// FieldWorker is the standardized structured logging key for enrichment worker indices.
	FieldWorker = "worker"
	// FieldTitle is the standardized structured logging key for item titles.
	FieldTitle = "title"
	// FieldSourceURL is the standardized structured logging key for source item URLs.
	FieldSourceURL = "source_url"
	// FieldEventType is the standardized structured logging key for machine-filterable event names.
	FieldEventType = "event_type"
	// FieldErrorHint is the standardized structured logging key for operator-facing remediation hints.
	FieldErrorHint = "error_hint"
	// FieldImpact is the standardized structured logging key describing the consequence of a degraded operation.
	FieldImpact = "impact"
)
