package lower

import (
	"fmt"

	"github.com/reoring/skemagen/internal/naming"
	"github.com/reoring/skemagen/schema"
)

// Supertypes computes a class's ordered supertype list: the is_a parent
// first, then declared mixins in order, then every union class whose
// union_of names this class (a whole-schema reverse lookup), deduplicated
// by name keeping the first occurrence. The first entry renders as the
// primary extends relation, all later ones as secondary relations.
func Supertypes(view *schema.View, cls *schema.Class) ([]string, error) {
	var raw []string
	if cls.IsA != "" {
		if _, ok := view.Class(cls.IsA); !ok {
			return nil, fmt.Errorf("class %q: is_a references %w %q", cls.Name, ErrUnknownClass, cls.IsA)
		}
		raw = append(raw, naming.Pascal(cls.IsA))
	}
	for _, mixin := range cls.Mixins {
		if _, ok := view.Class(mixin); !ok {
			return nil, fmt.Errorf("class %q: mixin references %w %q", cls.Name, ErrUnknownClass, mixin)
		}
		raw = append(raw, naming.Pascal(mixin))
	}
	for _, union := range view.UnionParents(cls.Name) {
		raw = append(raw, naming.Pascal(union))
	}

	seen := map[string]bool{}
	out := make([]string, 0, len(raw))
	for _, name := range raw {
		if seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out, nil
}
