package lower_test

import (
	"testing"

	"github.com/reoring/skemagen/internal/lower"
	"github.com/reoring/skemagen/schema"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		cls  schema.Class
		ann  *schema.ScalaAnnotation
		want lower.Role
	}{
		{"plain class", schema.Class{}, nil, lower.Role{}},
		{"abstract", schema.Class{Abstract: true}, nil, lower.Role{Interface: true}},
		{"mixin", schema.Class{Mixin: true}, nil, lower.Role{Interface: true}},
		{"annotated interface", schema.Class{}, &schema.ScalaAnnotation{IsInterface: true}, lower.Role{Interface: true}},
		{"union", schema.Class{UnionOf: []string{"A", "B"}}, nil, lower.Role{Interface: true, Sealed: true}},
		{"disjoint abstract", schema.Class{Abstract: true, ChildrenAreMutuallyDisjoint: true}, nil, lower.Role{Interface: true, Sealed: true}},
		// disjointness on a concrete class does not seal anything
		{"disjoint concrete", schema.Class{ChildrenAreMutuallyDisjoint: true}, nil, lower.Role{}},
	}
	for _, c := range cases {
		if got := lower.Classify(&c.cls, c.ann); got != c.want {
			t.Errorf("%s: Classify = %+v, want %+v", c.name, got, c.want)
		}
	}
}
