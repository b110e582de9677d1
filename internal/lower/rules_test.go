package lower_test

import (
	"testing"

	"github.com/reoring/skemagen/internal/lower"
)

const ruledYAML = `
name: ruled
classes:
  Employee:
    slots: [age, role, status, score]
    rules:
      - description: Adults must be active
        preconditions:
          slot_conditions:
            age:
              minimum_value: 18
        postconditions:
          slot_conditions:
            status:
              equals_string: active
      - description: Admins score high
        preconditions:
          slot_conditions:
            role:
              equals_string: admin
        postconditions:
          any_of:
            - slot_conditions:
                score:
                  minimum_value: 90
            - slot_conditions:
                score:
                  equals_number: 100
        bidirectional: true
      - description: Retired rule
        deactivated: true
        postconditions:
          slot_conditions:
            score:
              maximum_value: 0
slots:
  age: {range: integer}
  role: {range: string, required: true}
  status: {range: StatusEnum}
  score: {range: integer}
enums:
  StatusEnum:
    permissible_values:
      active: {}
      inactive: {}
`

func classRules(t *testing.T, src, class string) []lower.LoweredRule {
	t.Helper()
	v := newView(t, src)
	r := lower.NewResolver(v)
	if _, err := r.ClassFields(class); err != nil {
		t.Fatalf("ClassFields failed: %v", err)
	}
	cls, _ := v.Class(class)
	rules, err := lower.NewExtractor(r).ClassRules(cls)
	if err != nil {
		t.Fatalf("ClassRules failed: %v", err)
	}
	return rules
}

func TestClassRules_SkipsDeactivated(t *testing.T) {
	rules := classRules(t, ruledYAML, "Employee")
	if len(rules) != 2 {
		t.Fatalf("got %d rules, want 2 (deactivated excluded)", len(rules))
	}
	for _, r := range rules {
		if r.Description == "Retired rule" {
			t.Fatalf("deactivated rule leaked through")
		}
	}
}

func TestClassRules_LeafConditions(t *testing.T) {
	rules := classRules(t, ruledYAML, "Employee")
	r := rules[0]
	if len(r.Preconditions) != 1 {
		t.Fatalf("preconditions = %+v", r.Preconditions)
	}
	pre := r.Preconditions[0]
	if pre.Field != "age" || pre.Op != ">=" || pre.Value != "18" || !pre.Optional {
		t.Fatalf("precondition = %+v", pre)
	}
	if len(r.Postconditions) != 1 {
		t.Fatalf("postconditions = %+v", r.Postconditions)
	}
}

func TestClassRules_EnumAwareEquality(t *testing.T) {
	rules := classRules(t, ruledYAML, "Employee")
	post := rules[0].Postconditions[0]
	if post.Value != "StatusEnum.Active" {
		t.Fatalf("enum equality value = %q, want StatusEnum.Active", post.Value)
	}
	// String equality on a plain field stays a quoted literal.
	pre := rules[1].Preconditions[0]
	if pre.Value != `"admin"` || pre.Optional {
		t.Fatalf("string equality = %+v", pre)
	}
}

func TestClassRules_FlattensCombinators(t *testing.T) {
	rules := classRules(t, ruledYAML, "Employee")
	r := rules[1]
	if !r.Bidirectional {
		t.Fatalf("rule should be bidirectional")
	}
	if len(r.Postconditions) != 2 {
		t.Fatalf("flattened postconditions = %+v", r.Postconditions)
	}
	if r.Postconditions[0].Op != ">=" || r.Postconditions[0].Value != "90" {
		t.Fatalf("first leaf = %+v", r.Postconditions[0])
	}
	if r.Postconditions[1].Op != "==" || r.Postconditions[1].Value != "100" {
		t.Fatalf("second leaf = %+v", r.Postconditions[1])
	}
}

func TestClassRules_MultivaluedFlag(t *testing.T) {
	rules := classRules(t, `
name: tagged
classes:
  Account:
    slots: [tags]
    rules:
      - description: Vip check
        preconditions:
          slot_conditions:
            tags:
              equals_string: vip
slots:
  tags: {range: string, multivalued: true}
`, "Account")
	pre := rules[0].Preconditions[0]
	if !pre.Multivalued || pre.Optional {
		t.Fatalf("condition wrapping = %+v, want multivalued and not optional", pre)
	}
}

func TestClassRules_UnknownSlotInCondition(t *testing.T) {
	v := newView(t, `
name: broken
classes:
  Thing:
    slots: [a]
    rules:
      - description: dangling
        postconditions:
          slot_conditions:
            ghost:
              equals_string: x
slots:
  a: {range: string}
`)
	r := lower.NewResolver(v)
	if _, err := r.ClassFields("Thing"); err != nil {
		t.Fatalf("ClassFields failed: %v", err)
	}
	cls, _ := v.Class("Thing")
	if _, err := lower.NewExtractor(r).ClassRules(cls); err == nil {
		t.Fatalf("expected unknown slot error")
	}
}
