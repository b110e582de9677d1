package lower_test

import (
	"reflect"
	"testing"

	"github.com/reoring/skemagen/internal/lower"
	"github.com/reoring/skemagen/schema"
)

func newView(t *testing.T, src string) *schema.View {
	t.Helper()
	doc, err := schema.Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return schema.NewView(doc)
}

func classFields(t *testing.T, v *schema.View, class string) map[string]*lower.EffectiveField {
	t.Helper()
	r := lower.NewResolver(v)
	fields, err := r.ClassFields(class)
	if err != nil {
		t.Fatalf("ClassFields(%s) failed: %v", class, err)
	}
	out := map[string]*lower.EffectiveField{}
	for _, f := range fields {
		out[f.SlotName] = f
	}
	return out
}

const widgetYAML = `
name: widgets
classes:
  Widget:
    slots: [id, name, score, tags, status, created]
    slot_usage:
      score:
        minimum_value: 0
        maximum_value: 100
      name:
        required: false
      tags:
        maximum_cardinality: 5
slots:
  id: {range: string, identifier: true, required: true}
  name: {range: string, required: true}
  score: {range: integer}
  tags: {range: string, multivalued: true}
  status: {range: StatusEnum}
  created: {range: datetime}
enums:
  StatusEnum:
    permissible_values:
      active: {}
      inactive: {}
`

func TestClassFields_TypeWrapping(t *testing.T) {
	fields := classFields(t, newView(t, widgetYAML), "Widget")
	cases := []struct {
		slot, typ, def string
	}{
		{"id", "String", ""},
		{"score", "Option[Int]", "None"},
		{"tags", "List[String]", "List.empty"},
		{"status", "Option[StatusEnum]", "None"},
		{"created", "Option[java.time.Instant]", "None"},
	}
	for _, c := range cases {
		f := fields[c.slot]
		if f == nil {
			t.Fatalf("field %s missing", c.slot)
		}
		if f.Type != c.typ || f.Default != c.def {
			t.Errorf("field %s = (%s, %q), want (%s, %q)", c.slot, f.Type, f.Default, c.typ, c.def)
		}
	}
}

func TestClassFields_OverrideIsSparse(t *testing.T) {
	fields := classFields(t, newView(t, widgetYAML), "Widget")
	score := fields["score"]
	if score.MinimumValue == nil || *score.MinimumValue != 0 {
		t.Fatalf("score minimum override lost: %+v", score)
	}
	if score.MaximumValue == nil || *score.MaximumValue != 100 {
		t.Fatalf("score maximum override lost: %+v", score)
	}
	// Overrides the class never mentions must not disturb base attributes.
	if score.Required || !score.Optional {
		t.Fatalf("score required flag clobbered: %+v", score)
	}
	tags := fields["tags"]
	if !tags.Multivalued || tags.MaximumCardinality == nil || *tags.MaximumCardinality != 5 {
		t.Fatalf("tags = %+v", tags)
	}
}

func TestClassFields_AllUnsetOverrideIsIdentity(t *testing.T) {
	v := newView(t, `
name: identity
classes:
  Plain:
    slots: [score, tags]
  Shadowed:
    slots: [score, tags]
    slot_usage:
      score: {}
      tags: {}
slots:
  score:
    range: integer
    required: true
    minimum_value: 0
    maximum_value: 100
  tags:
    range: string
    multivalued: true
    maximum_cardinality: 5
`)
	plain := classFields(t, v, "Plain")
	shadowed := classFields(t, v, "Shadowed")
	for _, slot := range []string{"score", "tags"} {
		if !reflect.DeepEqual(plain[slot], shadowed[slot]) {
			t.Errorf("override with all fields unset changed %s:\nbase:     %+v\noverride: %+v",
				slot, plain[slot], shadowed[slot])
		}
	}
}

func TestClassFields_RequiredFalseOverrideWins(t *testing.T) {
	fields := classFields(t, newView(t, widgetYAML), "Widget")
	name := fields["name"]
	if name.Required {
		t.Fatalf("required: false in slot_usage must demote the base required flag")
	}
	if name.Type != "Option[String]" || name.Default != "None" {
		t.Fatalf("demoted field type = (%s, %q)", name.Type, name.Default)
	}
}

func TestClassFields_EnumAwareness(t *testing.T) {
	fields := classFields(t, newView(t, widgetYAML), "Widget")
	if !fields["status"].IsEnum || fields["status"].BaseType != "StatusEnum" {
		t.Fatalf("status = %+v", fields["status"])
	}
	if fields["name"].IsEnum {
		t.Fatalf("name should not be enum-ranged")
	}
}

func TestClassFields_CamelCaseNames(t *testing.T) {
	v := newView(t, `
name: cased
classes:
  Address:
    slots: [zip_code]
slots:
  zip_code: {range: string}
`)
	fields := classFields(t, v, "Address")
	if fields["zip_code"].Name != "zipCode" {
		t.Fatalf("field name = %q, want zipCode", fields["zip_code"].Name)
	}
}

func TestClassFields_UnknownSlot(t *testing.T) {
	v := newView(t, `
name: broken
classes:
  Thing:
    slots: [ghost]
slots: {}
`)
	r := lower.NewResolver(v)
	_, err := r.ClassFields("Thing")
	if err == nil {
		t.Fatalf("expected unknown slot error")
	}
}

func TestClassFields_ValuePresenceNormalization(t *testing.T) {
	v := newView(t, `
name: presence
classes:
  Record:
    slots: [a, b, c]
    slot_usage:
      a:
        value_presence: PRESENT
      b:
        value_presence:
          text: vp:Absent
      c:
        value_presence: whatever
slots:
  a: {range: string}
  b: {range: string}
  c: {range: string}
`)
	fields := classFields(t, v, "Record")
	if fields["a"].ValuePresence != "PRESENT" {
		t.Fatalf("a presence = %q", fields["a"].ValuePresence)
	}
	if fields["b"].ValuePresence != "ABSENT" {
		t.Fatalf("b presence = %q", fields["b"].ValuePresence)
	}
	if fields["c"].ValuePresence != "WHATEVER" {
		t.Fatalf("c presence = %q", fields["c"].ValuePresence)
	}
}

func TestEffectiveField_Constrained(t *testing.T) {
	fields := classFields(t, newView(t, widgetYAML), "Widget")
	if !fields["score"].Constrained() {
		t.Fatalf("score carries bounds, should be constrained")
	}
	if fields["id"].Constrained() {
		t.Fatalf("id carries no constraints")
	}
}
