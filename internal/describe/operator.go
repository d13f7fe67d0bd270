package describe

// Associativity indicates how same-precedence operators group.
type Associativity int

const (
	// AssocLeft groups a # b # c as (a # b) # c.
	AssocLeft Associativity = iota

	// AssocRight groups a # b # c as a # (b # c).
	AssocRight
)

// OperatorInfo is the printing metadata of one operator function.
type OperatorInfo struct {
	// Precedence level; higher binds tighter.
	Precedence int

	Associativity Associativity

	// Prefix is emitted before the first operand.
	Prefix string

	// Infix is emitted between the first and second operand.
	Infix string

	// Infix2 is emitted between the second and third operand.
	Infix2 string
}

type operatorKey struct {
	Name  string
	Arity int
}

// operatorInfo keys printing metadata by function name and operand count, so
// unary and binary minus coexist.
var operatorInfo = map[operatorKey]OperatorInfo{
	{"operator?:", 3}: {Precedence: 1, Associativity: AssocRight, Infix: " ? ", Infix2: " : "},
	{"operator||", 2}: {Precedence: 2, Associativity: AssocLeft, Infix: " || "},
	{"operator^^", 2}: {Precedence: 3, Associativity: AssocLeft, Infix: " ^^ "},
	{"operator&&", 2}: {Precedence: 4, Associativity: AssocLeft, Infix: " && "},
	{"operator|", 2}:  {Precedence: 5, Associativity: AssocLeft, Infix: " | "},
	{"operator^", 2}:  {Precedence: 6, Associativity: AssocLeft, Infix: " ^ "},
	{"operator&", 2}:  {Precedence: 7, Associativity: AssocLeft, Infix: " & "},
	{"operator==", 2}: {Precedence: 8, Associativity: AssocLeft, Infix: " == "},
	{"operator!=", 2}: {Precedence: 8, Associativity: AssocLeft, Infix: " != "},
	{"operator<", 2}:  {Precedence: 9, Associativity: AssocLeft, Infix: " < "},
	{"operator>", 2}:  {Precedence: 9, Associativity: AssocLeft, Infix: " > "},
	{"operator<=", 2}: {Precedence: 9, Associativity: AssocLeft, Infix: " <= "},
	{"operator>=", 2}: {Precedence: 9, Associativity: AssocLeft, Infix: " >= "},
	{"operator<<", 2}: {Precedence: 10, Associativity: AssocLeft, Infix: " << "},
	{"operator>>", 2}: {Precedence: 10, Associativity: AssocLeft, Infix: " >> "},
	{"operator+", 2}:  {Precedence: 11, Associativity: AssocLeft, Infix: " + "},
	{"operator-", 2}:  {Precedence: 11, Associativity: AssocLeft, Infix: " - "},
	{"operator*", 2}:  {Precedence: 12, Associativity: AssocLeft, Infix: " * "},
	{"operator/", 2}:  {Precedence: 12, Associativity: AssocLeft, Infix: " / "},
	{"operator%", 2}:  {Precedence: 12, Associativity: AssocLeft, Infix: " % "},
	{"operator-", 1}:  {Precedence: 13, Associativity: AssocRight, Prefix: "-"},
	{"operator~", 1}:  {Precedence: 13, Associativity: AssocRight, Prefix: "~"},
	{"operator!", 1}:  {Precedence: 13, Associativity: AssocRight, Prefix: "!"},
}

// LookupOperator returns the printing metadata for a function name and
// arity, if the function is an operator.
func LookupOperator(name string, arity int) (OperatorInfo, bool) {
	info, ok := operatorInfo[operatorKey{Name: name, Arity: arity}]
	return info, ok
}
