package analyzer

import (
	"github.com/mcncl/jsonkit/internal/models"
)

// Analyzer walks a document and counts what it contains.
type Analyzer struct {
	stats models.Statistics
}

// NewAnalyzer creates a new Analyzer instance.
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Analyze visits every value reachable from root and returns the totals.
// The root sits at depth 0 and the children of an array or object sit one
// level deeper than their container.
func (a *Analyzer) Analyze(root models.Value) models.Statistics {
	a.stats = models.Statistics{}
	a.visit(root, 0)
	return a.stats
}

// Analyze is a convenience wrapper around a fresh Analyzer.
func Analyze(root models.Value) models.Statistics {
	return NewAnalyzer().Analyze(root)
}

func (a *Analyzer) visit(v models.Value, depth int) {
	if depth > a.stats.MaxDepth {
		a.stats.MaxDepth = depth
	}

	switch v.Kind() {
	case models.NullKind:
		a.stats.Nulls++
	case models.BoolKind:
		a.stats.Booleans++
	case models.NumberKind:
		a.stats.Numbers++
	case models.StringKind:
		a.stats.Strings++
	case models.ArrayKind:
		a.stats.Arrays++
		for _, item := range v.Items() {
			a.visit(item, depth+1)
		}
	case models.ObjectKind:
		a.stats.Objects++
		a.stats.Keys += v.Len()
		for _, m := range v.Members() {
			a.visit(m.Value, depth+1)
		}
	}
}
