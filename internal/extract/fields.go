package extract

import (
	"ratingsync/internal/render"
	"ratingsync/internal/textutil"
)

// GenreCascade extracts the genre line.
func GenreCascade() Cascade {
	return Cascade{
		Field: "genre",
		Tactics: []Tactic{
			{Name: "genres-block", Attempt: selectorText(`.genres`)},
			{Name: "legacy-genre", Attempt: selectorText(`p.genre`)},
			{
				Name: "structured-data",
				Attempt: func(page *render.Page) string {
					return jsonLDString(page, "genre")
				},
			},
		},
	}
}

// DirectorCascade extracts the director name(s).
func DirectorCascade() Cascade {
	return Cascade{
		Field: "director",
		Tactics: []Tactic{
			{Name: "creators-director", Attempt: joinedSelectorText(`.creators h4:contains("Režie") ~ span a, div:has(> h4:contains("Režie")) a`, 3)},
			{Name: "legacy-director", Attempt: joinedSelectorText(`.directors a`, 3)},
			{
				Name: "structured-data",
				Attempt: func(page *render.Page) string {
					return jsonLDString(page, "director")
				},
			},
		},
	}
}

// CastCascade extracts the top-billed cast.
func CastCascade() Cascade {
	return Cascade{
		Field: "cast",
		Tactics: []Tactic{
			{Name: "creators-cast", Attempt: joinedSelectorText(`div:has(> h4:contains("Hrají")) a`, 5)},
			{Name: "legacy-cast", Attempt: joinedSelectorText(`.actors a`, 5)},
			{
				Name: "structured-data",
				Attempt: func(page *render.Page) string {
					return jsonLDString(page, "actor", "actors")
				},
			},
		},
	}
}

// DescriptionCascade extracts the plot blurb, already cleaned and truncated
// to the dataset budget.
func DescriptionCascade() Cascade {
	clean := func(raw string) string {
		return textutil.CleanDescription(raw)
	}
	return Cascade{
		Field: "description",
		Tactics: []Tactic{
			{
				Name: "plot-preview",
				Attempt: func(page *render.Page) string {
					return clean(page.Find(`.plot-preview p, .plot-full p`).First().Text())
				},
			},
			{
				Name: "legacy-plot",
				Attempt: func(page *render.Page) string {
					return clean(page.Find(`#plots .content p, p.plot`).First().Text())
				},
			},
			{
				Name: "structured-data",
				Attempt: func(page *render.Page) string {
					return clean(jsonLDString(page, "description"))
				},
			},
			{
				Name: "meta-description",
				Attempt: func(page *render.Page) string {
					return clean(attrOf(page, `meta[name="description"]`, "content"))
				},
			},
		},
	}
}

func attrOf(page *render.Page, selector, attr string) string {
	value, _ := page.Find(selector).First().Attr(attr)
	return value
}
