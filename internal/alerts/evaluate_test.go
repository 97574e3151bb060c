package alerts

import "testing"

func TestEvaluateNumber(t *testing.T) {
	rule := Rule{Type: TypeNumber, Operator: ">=", Threshold: 5}

	cases := []struct {
		name  string
		value interface{}
		want  bool
	}{
		{"string equal", "5", true},
		{"string below", "4.999", false},
		{"string above", "7.2", true},
		{"float", 5.0, true},
		{"int", 4, false},
		{"not a number", "not-a-number", false},
		{"empty", "", false},
		{"nil", nil, false},
		{"whitespace padded", " 6 ", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Evaluate(rule, tc.value); got != tc.want {
				t.Fatalf("Evaluate(%v) = %v, want %v", tc.value, got, tc.want)
			}
		})
	}
}

func TestEvaluateNumberOperators(t *testing.T) {
	cases := []struct {
		op    string
		value string
		want  bool
	}{
		{">", "5", false},
		{">", "5.001", true},
		{"<", "5", false},
		{"<", "4", true},
		{"<=", "5", true},
		{"==", "5", true},
		{"==", "5.5", false},
		{"!=", "5.5", true},
		{"!=", "5", false},
		{"bogus", "5", false},
	}
	for _, tc := range cases {
		rule := Rule{Type: TypeNumber, Operator: tc.op, Threshold: 5}
		if got := Evaluate(rule, tc.value); got != tc.want {
			t.Errorf("op %q value %q = %v, want %v", tc.op, tc.value, got, tc.want)
		}
	}
}

func TestEvaluateBoolean(t *testing.T) {
	rule := Rule{Type: TypeBoolean} // nil BoolValue defaults to true

	for _, v := range []interface{}{true, "true", "TRUE", 1, "1", 1.0} {
		if !Evaluate(rule, v) {
			t.Errorf("expected %v (%T) to match target true", v, v)
		}
	}
	for _, v := range []interface{}{false, "false", 0, "0", "yes", nil, 2} {
		if Evaluate(rule, v) {
			t.Errorf("expected %v (%T) not to match target true", v, v)
		}
	}

	f := false
	rule.BoolValue = &f
	if !Evaluate(rule, "false") {
		t.Error("expected \"false\" to match target false")
	}
	if Evaluate(rule, "true") {
		t.Error("expected \"true\" not to match target false")
	}
}

func TestEvaluateString(t *testing.T) {
	cases := []struct {
		op    string
		rule  string
		value interface{}
		want  bool
	}{
		{"equals", "Bull", " bull ", true},
		{"equals", "bull", "bear", false},
		{"not-equals", "bull", "bear", true},
		{"contains", "cross", "Golden Cross Up", true},
		{"contains", "cross", "flat", false},
		{"not-contains", "cross", "flat", true},
		{"starts-with", "golden", "Golden Cross", true},
		{"starts-with", "cross", "Golden Cross", false},
		{"ends-with", "up", "Golden Cross UP", true},
		{"ends-with", "up", "down", false},
	}
	for _, tc := range cases {
		rule := Rule{Type: TypeString, Operator: tc.op, StringValue: tc.rule}
		if got := Evaluate(rule, tc.value); got != tc.want {
			t.Errorf("op %q rule %q value %v = %v, want %v", tc.op, tc.rule, tc.value, got, tc.want)
		}
	}
}

func TestEvaluateEnums(t *testing.T) {
	cases := []struct {
		typ   RuleType
		rule  string
		value interface{}
		want  bool
	}{
		{TypeSignal, "buy", "BUY", true},
		{TypeSignal, "buy", "sell", false},
		{TypeSignal, "none", " None ", true},
		{TypeDirection, "increasing", "Increasing", true},
		{TypeBias, "bear", "bear", true},
		{TypeCandleColor, "green", "GREEN", true},
		{TypeCandleColor, "green", "greenish", false}, // no partial matching
		{TypeTrendState, "ranging", "ranging", true},
	}
	for _, tc := range cases {
		rule := Rule{Type: tc.typ, EnumValue: tc.rule}
		if got := Evaluate(rule, tc.value); got != tc.want {
			t.Errorf("%s rule %q value %v = %v, want %v", tc.typ, tc.rule, tc.value, got, tc.want)
		}
	}
}

func TestEvaluateUnknownTypeNeverMatches(t *testing.T) {
	if Evaluate(Rule{Type: "mystery"}, "anything") {
		t.Fatal("unknown rule type must not match")
	}
}
