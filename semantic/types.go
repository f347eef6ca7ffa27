package semantic

// Type is one of the primitive types of the language. Invalid marks an
// expression whose type could not be determined because of an earlier
// error; it is compatible with everything so that the error is reported
// only once.
type Type int

const (
	Invalid Type = iota
	Int
	Float
	Double
	Char
	Bool
	Void
)

var typeNames = [...]string{
	Invalid: "invalid",
	Int:     "int",
	Float:   "float",
	Double:  "double",
	Char:    "char",
	Bool:    "bool",
	Void:    "void",
}

func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return "invalid"
	}
	return typeNames[t]
}

// TypeOf returns the type with the given source name, or Invalid.
func TypeOf(name string) Type {
	for t, n := range typeNames {
		if n == name && Type(t) != Invalid {
			return Type(t)
		}
	}
	return Invalid
}

// IsNumeric reports whether arithmetic is defined on t. Characters take
// part in arithmetic as integers.
func (t Type) IsNumeric() bool {
	switch t {
	case Int, Float, Double, Char:
		return true
	}
	return false
}

// assignable lists, for each destination type, the source types that may
// be stored in it.
var assignable = map[Type][]Type{
	Int:    {Int, Char},
	Float:  {Int, Float},
	Double: {Int, Float, Double},
	Char:   {Char},
	Bool:   {Bool},
}

// AssignableTo reports whether a value of type src may be stored in a
// variable of type dst. Invalid on either side is always accepted.
func AssignableTo(dst, src Type) bool {
	if dst == Invalid || src == Invalid {
		return true
	}
	for _, t := range assignable[dst] {
		if t == src {
			return true
		}
	}
	return false
}

// Promote returns the result type of an arithmetic operation on x and y,
// which must both be numeric: double wins over float, float over int, and
// char is widened to int.
func Promote(x, y Type) Type {
	switch {
	case x == Double || y == Double:
		return Double
	case x == Float || y == Float:
		return Float
	default:
		return Int
	}
}
