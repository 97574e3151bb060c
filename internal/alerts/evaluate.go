package alerts

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Evaluate reports whether a cell value satisfies the rule's condition. It
// is a pure function over the latest fetched snapshot; unparseable input
// simply does not match.
func Evaluate(rule Rule, value interface{}) bool {
	switch rule.Type {
	case TypeNumber:
		return evaluateNumber(rule, value)
	case TypeBoolean:
		return evaluateBoolean(rule, value)
	case TypeString:
		return evaluateString(rule, value)
	case TypeSignal, TypeDirection, TypeBias, TypeCandleColor, TypeTrendState:
		return normalize(value) == strings.ToLower(strings.TrimSpace(rule.EnumValue))
	}
	return false
}

func evaluateNumber(rule Rule, value interface{}) bool {
	f, ok := toFloat(value)
	if !ok || !isFinite(f) {
		return false
	}
	switch rule.Operator {
	case ">":
		return f > rule.Threshold
	case ">=":
		return f >= rule.Threshold
	case "<":
		return f < rule.Threshold
	case "<=":
		return f <= rule.Threshold
	case "==":
		return f == rule.Threshold
	case "!=":
		return f != rule.Threshold
	}
	return false
}

func evaluateBoolean(rule Rule, value interface{}) bool {
	target := true
	if rule.BoolValue != nil {
		target = *rule.BoolValue
	}
	return truthy(value) == target
}

func evaluateString(rule Rule, value interface{}) bool {
	cell := normalize(value)
	want := strings.ToLower(strings.TrimSpace(rule.StringValue))
	switch rule.Operator {
	case "equals", "":
		return cell == want
	case "not-equals":
		return cell != want
	case "contains":
		return strings.Contains(cell, want)
	case "not-contains":
		return !strings.Contains(cell, want)
	case "starts-with":
		return strings.HasPrefix(cell, want)
	case "ends-with":
		return strings.HasSuffix(cell, want)
	}
	return false
}

// truthy coerces a cell to boolean: true, "true", 1 and "1" are true,
// everything else is false.
func truthy(value interface{}) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		s := strings.ToLower(strings.TrimSpace(v))
		return s == "true" || s == "1"
	case int:
		return v == 1
	case int64:
		return v == 1
	case float64:
		return v == 1
	case json.Number:
		return v.String() == "1"
	}
	return false
}

func toFloat(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	}
	return 0, false
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func normalize(value interface{}) string {
	switch v := value.(type) {
	case string:
		return strings.ToLower(strings.TrimSpace(v))
	case json.Number:
		return v.String()
	case bool:
		if v {
			return "true"
		}
		return "false"
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case nil:
		return ""
	}
	return ""
}
