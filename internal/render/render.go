package render

import (
	"fmt"
	"math"

	"github.com/csheth/docquery/internal/api"
)

// excerptLimit is the display cap for citation excerpts, in runes. The
// underlying citation value is never modified.
const excerptLimit = 200

// CitationView is one citation shaped for display. Citations keep the order
// the server returned them in; the renderer never re-sorts by confidence.
type CitationView struct {
	SourceDocumentName string
	PageLabel          string
	Excerpt            string
	ImageURL           string
	ConfidencePercent  int
}

// DisplayModel is the fully shaped, render-ready form of a query result.
type DisplayModel struct {
	Segments       []Segment
	Citations      []CitationView
	ProcessingTime string
}

// HasCitations reports whether a citations section should be shown at all.
// An empty list omits the section rather than rendering a placeholder.
func (d DisplayModel) HasCitations() bool {
	return len(d.Citations) > 0
}

// Render shapes a successful query result into a display model. It is pure:
// the result is only read, never mutated.
func Render(result api.QueryResult) DisplayModel {
	model := DisplayModel{
		Segments:       SplitSegments(result.Answer),
		ProcessingTime: fmt.Sprintf("%.2fs", result.ProcessingTime),
	}
	for _, c := range result.Citations {
		model.Citations = append(model.Citations, citationView(c))
	}
	return model
}

func citationView(c api.Citation) CitationView {
	view := CitationView{
		SourceDocumentName: c.DocumentName,
		Excerpt:            truncateExcerpt(c.Text),
		ImageURL:           c.ImageURL,
		ConfidencePercent:  int(math.Round(c.Confidence * 100)),
	}
	if c.PageNumber != nil {
		view.PageLabel = fmt.Sprintf("p. %d", *c.PageNumber)
	}
	return view
}

// truncateExcerpt caps the excerpt at excerptLimit runes, marking the cut
// with an ellipsis. Exactly excerptLimit runes pass through unmodified.
func truncateExcerpt(text string) string {
	runes := []rune(text)
	if len(runes) <= excerptLimit {
		return text
	}
	return string(runes[:excerptLimit]) + "…"
}
