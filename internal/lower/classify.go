package lower

import "github.com/reoring/skemagen/schema"

// Role is the lowering classification of a schema class: interface-like
// (trait) or record-like (case class), and for interfaces whether the
// hierarchy is sealed.
type Role struct {
	Interface bool
	Sealed    bool
}

// Classify decides a class's role. A class lowers to an interface iff it is
// a mixin, abstract, annotated as an interface, or a union; an interface is
// sealed iff the class declares mutually disjoint children or a union. The
// mapping is pure and total.
func Classify(cls *schema.Class, ann *schema.ScalaAnnotation) Role {
	iface := cls.Mixin || cls.Abstract || len(cls.UnionOf) > 0 ||
		(ann != nil && ann.IsInterface)
	sealed := cls.ChildrenAreMutuallyDisjoint || len(cls.UnionOf) > 0
	return Role{Interface: iface, Sealed: iface && sealed}
}
