package alerts

import "github.com/google/uuid"

// GenerateGroup creates a group plus the full cross product of its member
// rules: |signals| x |intervals| x |rows| rules, all carrying the new
// group's id and condition template.
func GenerateGroup(name, color string, params GroupParams) (Group, []Rule) {
	group := Group{
		ID:     uuid.NewString(),
		Name:   name,
		Color:  color,
		Params: params,
	}
	return group, generateRules(group)
}

// RegenerateGroup applies edited parameters to an existing group and
// replaces its member rules wholesale. Editing is a full regeneration, never
// an incremental merge, so the member set always mirrors the parameters.
func RegenerateGroup(group Group, params GroupParams, all []Rule) (Group, []Rule) {
	group.Params = params

	kept := make([]Rule, 0, len(all))
	for _, r := range all {
		if r.GroupID != group.ID {
			kept = append(kept, r)
		}
	}
	return group, append(kept, generateRules(group)...)
}

// RemoveGroup deletes a group's member rules along with it.
func RemoveGroup(groupID string, all []Rule) []Rule {
	kept := make([]Rule, 0, len(all))
	for _, r := range all {
		if r.GroupID != groupID {
			kept = append(kept, r)
		}
	}
	return kept
}

func generateRules(group Group) []Rule {
	c := group.Params.Condition
	rules := make([]Rule, 0, len(group.Params.Signals)*len(group.Params.Intervals)*len(group.Params.Rows))
	for _, signal := range group.Params.Signals {
		for _, interval := range group.Params.Intervals {
			for _, row := range group.Params.Rows {
				rules = append(rules, Rule{
					ID:          uuid.NewString(),
					SignalKey:   signal,
					Interval:    interval,
					Row:         row,
					Type:        c.Type,
					Operator:    c.Operator,
					Threshold:   c.Threshold,
					BoolValue:   c.BoolValue,
					StringValue: c.StringValue,
					EnumValue:   c.EnumValue,
					GroupID:     group.ID,
				})
			}
		}
	}
	return rules
}
