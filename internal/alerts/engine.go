package alerts

import "sort"

// Snapshot is the latest fetched signal view: signal key -> interval ->
// candle row -> cell value.
type Snapshot map[string]map[string]map[string]interface{}

// Cell returns the value at one (signal, interval, row) triple.
func (s Snapshot) Cell(signal, interval, row string) (interface{}, bool) {
	intervals, ok := s[signal]
	if !ok {
		return nil, false
	}
	rows, ok := intervals[interval]
	if !ok {
		return nil, false
	}
	v, ok := rows[row]
	return v, ok
}

// MatchCell collects the rules bound to a cell's triple and reports whether
// any of them fires against the value.
func MatchCell(rules []Rule, signal, interval, row string, value interface{}) []Rule {
	var matched []Rule
	for _, rule := range rules {
		if rule.SignalKey != signal || rule.Interval != interval || rule.Row != row {
			continue
		}
		if Evaluate(rule, value) {
			matched = append(matched, rule)
		}
	}
	return matched
}

// EffectiveColor resolves the highlight color for a fired rule: rule
// override, then owning-group color, then the master color. First non-empty
// wins; the master color itself defaults to orange.
func EffectiveColor(rule Rule, groups []Group, masterColor string) string {
	if rule.Color != "" {
		return rule.Color
	}
	for _, g := range groups {
		if g.ID == rule.GroupID && g.Color != "" {
			return g.Color
		}
	}
	if masterColor != "" {
		return masterColor
	}
	return DefaultMasterColor
}

// MatchCounts tallies firing rules per signal key across the whole snapshot.
func MatchCounts(rules []Rule, snap Snapshot) map[string]int {
	counts := make(map[string]int)
	for _, rule := range rules {
		value, ok := snap.Cell(rule.SignalKey, rule.Interval, rule.Row)
		if !ok {
			continue
		}
		if Evaluate(rule, value) {
			counts[rule.SignalKey]++
		}
	}
	return counts
}

// RankSignals orders the catalog by alert-match count descending so actively
// alerting signals surface first. Ties keep the catalog's original order,
// which makes the ordering reproducible across renders.
func RankSignals(rules []Rule, snap Snapshot, catalog []string) []string {
	counts := MatchCounts(rules, snap)

	ranked := make([]string, len(catalog))
	copy(ranked, catalog)
	sort.SliceStable(ranked, func(i, j int) bool {
		return counts[ranked[i]] > counts[ranked[j]]
	})
	return ranked
}
