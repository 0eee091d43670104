package report

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// WriteMarkdown writes the report as GitHub-flavoured Markdown.
func WriteMarkdown(w io.Writer, r *Report) error {
	var b strings.Builder

	title := r.Title
	if title == "" {
		title = "Itinerary comparison"
	}
	fmt.Fprintf(&b, "# %s\n\n", title)

	if rec := r.Recommendation; rec != nil {
		name := rec.Recommended
		if e, ok := r.Entry(rec.Recommended); ok {
			name = e.Name
		}
		fmt.Fprintf(&b, "**Recommended:** %s (%d/100)\n\n", escapeCell(name), rec.Total)
		fmt.Fprintf(&b, "%s\n\n", rec.Reason)
	}

	if len(r.Entries) == 0 {
		b.WriteString("_No itineraries to compare._\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	b.WriteString("| Rank | Itinerary | Cost | Nights | Cost efficiency | Activity diversity | Time optimization | Inclusiveness | Total |\n")
	b.WriteString("|---:|---|---:|---:|---:|---:|---:|---:|---:|\n")
	for _, e := range rankedEntries(r) {
		bd := e.Score.Breakdown
		fmt.Fprintf(&b, "| %d | %s | %s | %d | %d | %d | %d | %d | **%d** |\n",
			e.Rank, escapeCell(e.Name), FormatMoney(e.TotalCost, e.Currency), e.Nights,
			bd.CostEfficiency, bd.ActivityDiversity, bd.TimeOptimization, bd.Inclusiveness, e.Score.Total)
	}
	b.WriteString("\n")

	for _, e := range rankedEntries(r) {
		rat := e.Score.Rationale
		if len(rat.Strengths)+len(rat.Improvements)+len(rat.Unique) == 0 {
			continue
		}
		fmt.Fprintf(&b, "## %s\n\n", e.Name)
		writeList(&b, "Strengths", rat.Strengths)
		writeList(&b, "Improvements", rat.Improvements)
		writeList(&b, "Highlights", rat.Unique)
	}

	fmt.Fprintf(&b, "_Weights: cost %.2f, activities %.2f, pacing %.2f, inclusions %.2f_\n",
		r.Weights.CostEfficiency, r.Weights.ActivityDiversity, r.Weights.TimeOptimization, r.Weights.Inclusiveness)

	_, err := io.WriteString(w, b.String())
	return err
}

func writeList(b *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "**%s**\n\n", heading)
	for _, it := range items {
		fmt.Fprintf(b, "- %s\n", it)
	}
	b.WriteString("\n")
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

var markdown = goldmark.New(goldmark.WithExtensions(extension.Table))

// WriteHTML writes a standalone HTML page rendered from the Markdown report.
func WriteHTML(w io.Writer, r *Report) error {
	var md bytes.Buffer
	if err := WriteMarkdown(&md, r); err != nil {
		return err
	}

	var body bytes.Buffer
	if err := markdown.Convert(md.Bytes(), &body); err != nil {
		return fmt.Errorf("rendering markdown: %w", err)
	}

	title := r.Title
	if title == "" {
		title = "Itinerary comparison"
	}
	_, err := fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { font-family: system-ui, sans-serif; max-width: 60rem; margin: 2rem auto; padding: 0 1rem; }
table { border-collapse: collapse; }
th, td { border: 1px solid #ccc; padding: 0.3rem 0.6rem; }
</style>
</head>
<body>
%s</body>
</html>
`, html.EscapeString(title), body.String())
	return err
}
