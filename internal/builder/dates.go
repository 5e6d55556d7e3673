package builder

import (
	"strings"

	"github.com/adityarajsrv/CareerQuill/internal/model"
)

const present = "Present"

type dates struct {
	start, end, text string
}

// side is "Month Year" when both parts are set, otherwise empty.
func side(month, year string) string {
	month, year = strings.TrimSpace(month), strings.TrimSpace(year)
	if month == "" || year == "" {
		return ""
	}
	return month + " " + year
}

// resolve formats a period. End fields are ignored for current entries.
func resolve(p model.Period) dates {
	d := dates{start: side(p.StartMonth, p.StartYear)}
	if p.Current {
		d.text = joinNonEmpty(" - ", d.start, present)
		return d
	}
	d.end = side(p.EndMonth, p.EndYear)
	d.text = joinNonEmpty(" - ", d.start, d.end)
	return d
}

// FormatRange renders a period the way documents show it.
func FormatRange(p model.Period) string {
	return resolve(p).text
}
