package analyzer

import "fmt"

// Kind classifies a schema compile failure
type Kind int

const (
	WidthOverflow Kind = iota + 1
	WidthMismatch
	DuplicateFieldName
	DuplicateEnumValue
	DuplicateEnumSymbol
	EnumValueOutOfRange
	UnresolvedVariant
	InvalidWidth
	UnknownReference
	DuplicateVariant
	VariantNotFixed
	NameCollision
	InvalidName
)

var kindNames = map[Kind]string{
	WidthOverflow:       "width overflow",
	WidthMismatch:       "width mismatch",
	DuplicateFieldName:  "duplicate field name",
	DuplicateEnumValue:  "duplicate enum value",
	DuplicateEnumSymbol: "duplicate enum symbol",
	EnumValueOutOfRange: "enum value out of range",
	UnresolvedVariant:   "unresolved variant",
	InvalidWidth:        "invalid width",
	UnknownReference:    "unknown reference",
	DuplicateVariant:    "duplicate variant",
	VariantNotFixed:     "variant not fixed-size",
	NameCollision:       "name collision",
	InvalidName:         "invalid name",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Code returns the stable numeric error code, E4001 onward
func (k Kind) Code() int {
	return 4000 + int(k)
}

// Error is a compile failure located at a unit (container, structure or
// group) and optionally one of its fields
type Error struct {
	Kind    Kind
	Unit    string
	Field   string
	Message string
}

func (e *Error) Error() string {
	loc := e.Unit
	if e.Field != "" {
		loc += "." + e.Field
	}
	return fmt.Sprintf("E%d: %s: %s: %s", e.Kind.Code(), loc, e.Kind, e.Message)
}

// Is matches any *Error of the same Kind, so the sentinels below work with
// errors.Is
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Sentinels for errors.Is
var (
	ErrWidthOverflow       = &Error{Kind: WidthOverflow}
	ErrWidthMismatch       = &Error{Kind: WidthMismatch}
	ErrDuplicateFieldName  = &Error{Kind: DuplicateFieldName}
	ErrDuplicateEnumValue  = &Error{Kind: DuplicateEnumValue}
	ErrDuplicateEnumSymbol = &Error{Kind: DuplicateEnumSymbol}
	ErrEnumValueOutOfRange = &Error{Kind: EnumValueOutOfRange}
	ErrUnresolvedVariant   = &Error{Kind: UnresolvedVariant}
	ErrInvalidWidth        = &Error{Kind: InvalidWidth}
	ErrUnknownReference    = &Error{Kind: UnknownReference}
	ErrDuplicateVariant    = &Error{Kind: DuplicateVariant}
	ErrVariantNotFixed     = &Error{Kind: VariantNotFixed}
	ErrNameCollision       = &Error{Kind: NameCollision}
	ErrInvalidName         = &Error{Kind: InvalidName}
)

func errorf(kind Kind, unit, field, format string, args ...any) *Error {
	return &Error{Kind: kind, Unit: unit, Field: field, Message: fmt.Sprintf(format, args...)}
}
