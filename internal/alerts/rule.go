package alerts

// RuleType selects the matching semantics for a rule's condition.
type RuleType string

const (
	TypeNumber  RuleType = "number"
	TypeBoolean RuleType = "boolean"
	TypeString  RuleType = "string"

	// Fixed three-value enumerations produced by the signal pipeline.
	TypeSignal      RuleType = "signal"      // buy / sell / none
	TypeDirection   RuleType = "direction"   // increasing / decreasing / none
	TypeBias        RuleType = "bias"        // bull / bear / none
	TypeCandleColor RuleType = "candleColor" // red / green / none
	TypeTrendState  RuleType = "trendState"  // uptrend / downtrend / ranging
)

// EnumTypes lists the fixed enumeration families.
var EnumTypes = []RuleType{TypeSignal, TypeDirection, TypeBias, TypeCandleColor, TypeTrendState}

// Candle-row positions a rule can target. The set is fixed at three.
const (
	RowCurrent = "current"
	RowPrev1   = "prev1"
	RowPrev2   = "prev2"
)

// CandleRows is the fixed candle-position enumeration in display order.
var CandleRows = []string{RowCurrent, RowPrev1, RowPrev2}

// DefaultMasterColor highlights alerting cells when neither the rule nor its
// group sets a color.
const DefaultMasterColor = "orange"

// Rule matches one typed condition against one (signal, interval, candle
// row) cell of the live view.
type Rule struct {
	ID        string   `json:"id"`
	SignalKey string   `json:"signalKey"`
	Interval  string   `json:"interval"`
	Row       string   `json:"row"`
	Type      RuleType `json:"type"`

	// Condition payload; which fields apply depends on Type.
	Operator    string  `json:"operator,omitempty"`    // number: > >= < <= == != ; string: equals, not-equals, contains, not-contains, starts-with, ends-with
	Threshold   float64 `json:"threshold,omitempty"`   // number
	BoolValue   *bool   `json:"boolValue,omitempty"`   // boolean; nil means true
	StringValue string  `json:"stringValue,omitempty"` // string
	EnumValue   string  `json:"enumValue,omitempty"`   // enumeration families

	Color   string `json:"color,omitempty"` // per-rule highlight override
	GroupID string `json:"groupId,omitempty"`
}

// Condition is the reusable template a group stamps onto every generated
// rule.
type Condition struct {
	Type        RuleType `json:"type"`
	Operator    string   `json:"operator,omitempty"`
	Threshold   float64  `json:"threshold,omitempty"`
	BoolValue   *bool    `json:"boolValue,omitempty"`
	StringValue string   `json:"stringValue,omitempty"`
	EnumValue   string   `json:"enumValue,omitempty"`
}

// GroupParams are the bulk-creation inputs that generated a group's member
// rules. They are kept on the group so an edit can regenerate the full set.
type GroupParams struct {
	Signals   []string  `json:"signals"`
	Intervals []string  `json:"intervals"`
	Rows      []string  `json:"rows"`
	Condition Condition `json:"condition"`
}

// Group owns the rules generated from one bulk creation.
type Group struct {
	ID     string      `json:"id"`
	Name   string      `json:"name"`
	Color  string      `json:"color,omitempty"`
	Params GroupParams `json:"params"`
}
