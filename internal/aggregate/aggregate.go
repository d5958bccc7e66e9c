package aggregate

import (
	"sort"

	"news-sentiment-go/internal/types"
)

// GroupMeans is the wide-table row: mean of each score for one group. Source
// is empty for content-type-level groups.
type GroupMeans struct {
	Type     string
	Source   string
	Count    int
	Positive float64
	Negative float64
	Neutral  float64
	Mixed    float64
}

// Polarization is mean positive minus mean negative for the group.
func (g GroupMeans) Polarization() float64 {
	return g.Positive - g.Negative
}

// Summary holds both grouping levels, each sorted for deterministic output.
type Summary struct {
	ByType   []GroupMeans
	BySource []GroupMeans
}

// Summarize computes per-group mean scores over the full record set. Groups
// of one record are handled the same as larger groups, and the result does
// not depend on record order.
func Summarize(records []types.SentimentRecord) Summary {
	type key struct{ typ, source string }
	sums := map[key]*GroupMeans{}

	accumulate := func(k key, r types.SentimentRecord) {
		g, ok := sums[k]
		if !ok {
			g = &GroupMeans{Type: k.typ, Source: k.source}
			sums[k] = g
		}
		g.Count++
		g.Positive += r.Positive
		g.Negative += r.Negative
		g.Neutral += r.Neutral
		g.Mixed += r.Mixed
	}

	for _, r := range records {
		accumulate(key{typ: r.Type}, r)
		accumulate(key{typ: r.Type, source: r.Source}, r)
	}

	var byType, bySource []GroupMeans
	for k, g := range sums {
		n := float64(g.Count)
		g.Positive /= n
		g.Negative /= n
		g.Neutral /= n
		g.Mixed /= n
		if k.source == "" {
			byType = append(byType, *g)
		} else {
			bySource = append(bySource, *g)
		}
	}

	sort.Slice(byType, func(i, j int) bool { return byType[i].Type < byType[j].Type })
	sort.Slice(bySource, func(i, j int) bool {
		if bySource[i].Type != bySource[j].Type {
			return bySource[i].Type < bySource[j].Type
		}
		return bySource[i].Source < bySource[j].Source
	})
	return Summary{ByType: byType, BySource: bySource}
}
