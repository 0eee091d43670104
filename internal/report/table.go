package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spboyer/tripcompare/internal/models"
)

const (
	ruleWidth   = 70
	labelWidth  = 22
	columnWidth = 18
)

// metric is one comparable row of the side-by-side table.
type metric struct {
	label string
	value func(Entry) int
}

var subScoreMetrics = []metric{
	{"Cost efficiency", func(e Entry) int { return e.Score.Breakdown.CostEfficiency }},
	{"Activity diversity", func(e Entry) int { return e.Score.Breakdown.ActivityDiversity }},
	{"Time optimization", func(e Entry) int { return e.Score.Breakdown.TimeOptimization }},
	{"Inclusiveness", func(e Entry) int { return e.Score.Breakdown.Inclusiveness }},
	{"Total", func(e Entry) int { return e.Score.Total }},
}

// padRight pads s with spaces so its terminal display width reaches width.
func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}

// fit truncates s to width display cells.
func fit(s string, width int) string {
	return runewidth.Truncate(s, width, "…")
}

// WriteTable writes the ranked cohort with breakdowns and rationale.
func WriteTable(w io.Writer, r *Report) error {
	bw := &errWriter{w: w}

	bw.println(strings.Repeat("=", ruleWidth))
	bw.println(" ITINERARY SCORES")
	bw.println(strings.Repeat("=", ruleWidth))
	bw.println()

	for _, e := range rankedEntries(r) {
		b := e.Score.Breakdown
		bw.printf(" #%d  %s  %d/100\n", e.Rank, fit(e.Name, 48), e.Score.Total)
		bw.printf("     %s · %dN/%dD", FormatMoney(e.TotalCost, e.Currency), e.Nights, e.Days)
		if e.CostPerNight > 0 {
			bw.printf(" · %s/night", FormatMoney(e.CostPerNight, e.Currency))
		}
		bw.println()
		bw.printf("     cost %d · activities %d · pacing %d · inclusions %d\n",
			b.CostEfficiency, b.ActivityDiversity, b.TimeOptimization, b.Inclusiveness)
		writeRationaleLines(bw, e.Score.Rationale)
		bw.println()
	}

	writeRecommendation(bw, r)
	return bw.err
}

// WriteComparison writes a side-by-side matrix of sub-scores. The best value
// in each row is marked with "*".
func WriteComparison(w io.Writer, r *Report) error {
	bw := &errWriter{w: w}

	bw.println(strings.Repeat("=", ruleWidth))
	bw.println(" COMPARISON REPORT")
	bw.println(strings.Repeat("=", ruleWidth))
	bw.println()

	for i, e := range r.Entries {
		src := ""
		if e.Source != "" {
			src = "  (" + e.Source + ")"
		}
		bw.printf("  [%d] %s%s\n", i+1, e.Name, src)
	}
	bw.println()

	bw.printf("  %s", padRight("Metric", labelWidth))
	for i := range r.Entries {
		bw.printf("%s", padRight(fmt.Sprintf("[%d]", i+1), columnWidth))
	}
	bw.println()
	bw.println("  " + strings.Repeat("-", labelWidth+columnWidth*len(r.Entries)))

	bw.printf("  %s", padRight("Total cost", labelWidth))
	for _, e := range r.Entries {
		bw.printf("%s", padRight(FormatMoney(e.TotalCost, e.Currency), columnWidth))
	}
	bw.println()
	bw.printf("  %s", padRight("Cost per night", labelWidth))
	for _, e := range r.Entries {
		cell := "n/a"
		if e.CostPerNight > 0 {
			cell = FormatMoney(e.CostPerNight, e.Currency)
		}
		bw.printf("%s", padRight(cell, columnWidth))
	}
	bw.println()

	for _, m := range subScoreMetrics {
		best := -1
		for _, e := range r.Entries {
			best = max(best, m.value(e))
		}
		bw.printf("  %s", padRight(m.label, labelWidth))
		for _, e := range r.Entries {
			v := m.value(e)
			cell := fmt.Sprintf("%d", v)
			if v == best && len(r.Entries) > 1 {
				cell += " *"
			}
			bw.printf("%s", padRight(cell, columnWidth))
		}
		bw.println()
	}
	bw.println()

	writeRecommendation(bw, r)
	return bw.err
}

func writeRationaleLines(bw *errWriter, rat models.Rationale) {
	for _, s := range rat.Strengths {
		bw.printf("     + %s\n", s)
	}
	for _, s := range rat.Improvements {
		bw.printf("     - %s\n", s)
	}
	for _, s := range rat.Unique {
		bw.printf("     ★ %s\n", s)
	}
}

func writeRecommendation(bw *errWriter, r *Report) {
	rec := r.Recommendation
	if rec == nil {
		bw.println(" No itineraries to compare.")
		return
	}
	name := rec.Recommended
	if e, ok := r.Entry(rec.Recommended); ok {
		name = e.Name
	}
	bw.println(strings.Repeat("-", ruleWidth))
	bw.printf(" RECOMMENDED: %s (%d/100)\n", name, rec.Total)
	bw.printf(" %s\n", rec.Reason)
	if rec.MarginPct > 0 {
		bw.printf(" Margin over runner-up: %.1f%%\n", rec.MarginPct)
	}
}

// rankedEntries returns entries ordered by rank, falling back to cohort
// order when there is no ranking.
func rankedEntries(r *Report) []Entry {
	if r.Recommendation == nil {
		return r.Entries
	}
	out := make([]Entry, 0, len(r.Entries))
	used := make([]bool, len(r.Entries))
	for _, re := range r.Recommendation.Entries {
		for i, e := range r.Entries {
			if !used[i] && e.ID == re.ID {
				used[i] = true
				e.Rank = re.Rank
				out = append(out, e)
				break
			}
		}
	}
	return out
}

// errWriter remembers the first write error so callers check once.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func (ew *errWriter) println(args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintln(ew.w, args...)
}
