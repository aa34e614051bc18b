package domain

// AttrName identifies an accessibility attribute on a UI element.
type AttrName string

// Attribute names queried on accessibility elements.
const (
	AttrRole        AttrName = "role"
	AttrTitle       AttrName = "title"
	AttrDescription AttrName = "description"
	AttrVal         AttrName = "value"
	AttrPosition    AttrName = "position"
)

// AttrKind discriminates the payload carried by an AttrValue.
type AttrKind int

// Attribute value kinds.
const (
	// AttrKindString carries a textual attribute (role, title, description, value).
	AttrKindString AttrKind = iota
	// AttrKindPoint carries a screen position.
	AttrKindPoint
)

// Point is a screen coordinate in the host's coordinate space.
type Point struct {
	X float64
	Y float64
}

// AttrValue is a tagged union over the attribute kinds a backend exposes.
// Callers switch on Kind rather than type-asserting backend-specific values.
type AttrValue struct {
	// Kind selects which payload field is meaningful.
	Kind AttrKind

	// Str is the payload for AttrKindString.
	Str string

	// Point is the payload for AttrKindPoint.
	Point Point
}

// StringAttr builds a textual attribute value.
func StringAttr(s string) AttrValue {
	return AttrValue{Kind: AttrKindString, Str: s}
}

// PointAttr builds a positional attribute value.
func PointAttr(x, y float64) AttrValue {
	return AttrValue{Kind: AttrKindPoint, Point: Point{X: x, Y: y}}
}

// AttrReader reads attributes from a live UI element.
// Attributes are read lazily per call: the host's UI state can change
// between queries, so values are never cached by callers.
// An absent attribute reports ok=false; absence is not an error.
type AttrReader interface {
	Attr(name AttrName) (AttrValue, bool)
}

// Predicate is a pure function over an element's attributes.
// Predicates must tolerate elements lacking the tested attribute,
// treating absence as a non-match.
type Predicate func(AttrReader) bool

// TitleIs matches elements whose title attribute equals title.
func TitleIs(title string) Predicate {
	return attrEquals(AttrTitle, title)
}

// DescriptionIs matches elements whose description attribute equals desc.
func DescriptionIs(desc string) Predicate {
	return attrEquals(AttrDescription, desc)
}

// RoleIs matches elements whose role attribute equals role.
func RoleIs(role string) Predicate {
	return attrEquals(AttrRole, role)
}

// ValueIs matches elements whose value attribute equals value.
func ValueIs(value string) Predicate {
	return attrEquals(AttrVal, value)
}

// All matches elements satisfying every given predicate.
func All(preds ...Predicate) Predicate {
	return func(r AttrReader) bool {
		for _, p := range preds {
			if !p(r) {
				return false
			}
		}
		return true
	}
}

func attrEquals(name AttrName, want string) Predicate {
	return func(r AttrReader) bool {
		v, ok := r.Attr(name)
		if !ok || v.Kind != AttrKindString {
			return false
		}
		return v.Str == want
	}
}

// Modifier is a keyboard modifier held during a key chord.
type Modifier string

// Keyboard modifiers.
const (
	ModCommand Modifier = "command"
	ModShift   Modifier = "shift"
	ModOption  Modifier = "option"
	ModControl Modifier = "control"
)
