package extract

import (
	"log/slog"

	"ratingsync/internal/logging"
	"ratingsync/internal/render"
)

// Details is the enrichment subset pulled from one detail page.
type Details struct {
	ExternalID    string
	ExternalURL   string
	OriginalTitle string
	Genre         string
	Director      string
	Cast          string
	Description   string
}

// Complete reports whether the identifying fields are both present; secondary
// fields never trigger a parent-page retry on their own.
func (d Details) Complete() bool {
	return d.ExternalID != "" && d.OriginalTitle != ""
}

// Merge fills empty fields of d from other without overwriting existing values.
func (d Details) Merge(other Details) Details {
	if d.ExternalID == "" {
		d.ExternalID = other.ExternalID
		d.ExternalURL = other.ExternalURL
	}
	if d.OriginalTitle == "" {
		d.OriginalTitle = other.OriginalTitle
	}
	if d.Genre == "" {
		d.Genre = other.Genre
	}
	if d.Director == "" {
		d.Director = other.Director
	}
	if d.Cast == "" {
		d.Cast = other.Cast
	}
	if d.Description == "" {
		d.Description = other.Description
	}
	return d
}

// Extractor bundles the per-field cascades applied to every detail page.
type Extractor struct {
	id            Cascade
	originalTitle Cascade
	genre         Cascade
	director      Cascade
	cast          Cascade
	description   Cascade
	logger        *slog.Logger
}

// New builds an Extractor with the standard cascades.
func New(logger *slog.Logger) *Extractor {
	return &Extractor{
		id:            IMDBIDCascade(),
		originalTitle: OriginalTitleCascade(),
		genre:         GenreCascade(),
		director:      DirectorCascade(),
		cast:          CastCascade(),
		description:   DescriptionCascade(),
		logger:        logging.NewComponentLogger(logger, "extract"),
	}
}

// Details runs every cascade against the page.
func (e *Extractor) Details(page *render.Page) Details {
	var out Details
	var tactic string

	if out.ExternalID, tactic = e.id.Extract(page); out.ExternalID != "" {
		out.ExternalURL = ExternalURLFor(out.ExternalID)
		e.logger.Debug("external id extracted",
			logging.String("tactic", tactic),
			logging.String("external_id", out.ExternalID))
	}
	out.OriginalTitle, _ = e.originalTitle.Extract(page)
	out.Genre, _ = e.genre.Extract(page)
	out.Director, _ = e.director.Extract(page)
	out.Cast, _ = e.cast.Extract(page)
	out.Description, _ = e.description.Extract(page)
	return out
}
