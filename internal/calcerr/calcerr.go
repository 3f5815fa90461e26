// Package calcerr defines the tagged error values shared by every
// calculator component and the stable descriptions shown to users.
package calcerr

import (
	"errors"
	"fmt"
)

// Class groups related failure kinds.
type Class string

const (
	ClassParse      Class = "ParseError"
	ClassEvaluation Class = "EvaluationError"
	ClassCalculus   Class = "CalculusError"
	ClassMatrix     Class = "MatrixError"
	ClassConversion Class = "ConversionError"
	ClassInput      Class = "InputError"
)

// Kind is the specific tag inside a Class. ParseError has a single kind.
type Kind string

const (
	KindSyntax            Kind = "Syntax"
	KindDomainError       Kind = "DomainError"
	KindDivisionByZero    Kind = "DivisionByZero"
	KindUnknownSymbol     Kind = "UnknownSymbol"
	KindMalformedEquation Kind = "MalformedEquation"
	KindIncompleteBounds  Kind = "IncompleteBounds"
	KindDimensionMismatch Kind = "DimensionMismatch"
	KindNotSquare         Kind = "NotSquare"
	KindSingular          Kind = "Singular"
	KindUnknownUnit       Kind = "UnknownUnit"
	KindEmpty             Kind = "Empty"
	KindInvalidNumber     Kind = "InvalidNumber"
)

// Sentinels for errors.Is checks. Any *Error with the same kind matches.
var (
	ErrParse             = &Error{Class: ClassParse, Kind: KindSyntax}
	ErrDomain            = &Error{Class: ClassEvaluation, Kind: KindDomainError}
	ErrDivisionByZero    = &Error{Class: ClassEvaluation, Kind: KindDivisionByZero}
	ErrUnknownSymbol     = &Error{Class: ClassEvaluation, Kind: KindUnknownSymbol}
	ErrMalformedEquation = &Error{Class: ClassCalculus, Kind: KindMalformedEquation}
	ErrIncompleteBounds  = &Error{Class: ClassCalculus, Kind: KindIncompleteBounds}
	ErrDimensionMismatch = &Error{Class: ClassMatrix, Kind: KindDimensionMismatch}
	ErrNotSquare         = &Error{Class: ClassMatrix, Kind: KindNotSquare}
	ErrSingular          = &Error{Class: ClassMatrix, Kind: KindSingular}
	ErrUnknownUnit       = &Error{Class: ClassConversion, Kind: KindUnknownUnit}
	ErrEmpty             = &Error{Class: ClassInput, Kind: KindEmpty}
	ErrInvalidNumber     = &Error{Class: ClassInput, Kind: KindInvalidNumber}
)

var descriptions = map[Kind]string{
	KindSyntax:            "invalid expression syntax",
	KindDomainError:       "math domain error",
	KindDivisionByZero:    "division by zero",
	KindUnknownSymbol:     "unknown name in expression",
	KindMalformedEquation: "equation must contain '='",
	KindIncompleteBounds:  "both integration limits are required for a definite integral",
	KindDimensionMismatch: "matrix dimensions do not match",
	KindNotSquare:         "matrix must be square",
	KindSingular:          "matrix is singular and cannot be inverted",
	KindUnknownUnit:       "invalid unit for selected category",
	KindEmpty:             "no input provided",
	KindInvalidNumber:     "invalid number",
}

// Error is a tagged calculator failure. Detail carries context for logs;
// the user-facing text comes from Describe.
type Error struct {
	Class  Class
	Kind   Kind
	Detail string
	Err    error
}

func (e *Error) Error() string {
	msg := "calc: " + string(e.Class)
	if e.Kind != KindSyntax {
		msg += "{" + string(e.Kind) + "}"
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error carrying the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Class == t.Class && e.Kind == t.Kind
}

// Description returns the stable user-facing text for this kind.
func (e *Error) Description() string {
	if d, ok := descriptions[e.Kind]; ok {
		return d
	}
	return "calculation failed"
}

// New builds a tagged error from a sentinel with printf-style detail.
func New(sentinel *Error, format string, args ...any) *Error {
	return &Error{Class: sentinel.Class, Kind: sentinel.Kind, Detail: fmt.Sprintf(format, args...)}
}

// Wrap tags cause with the kind of sentinel.
func Wrap(sentinel *Error, cause error, detail string) *Error {
	return &Error{Class: sentinel.Class, Kind: sentinel.Kind, Detail: detail, Err: cause}
}

// As extracts the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var ce *Error
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// Describe maps any error to the text shown in place of a result.
func Describe(err error) string {
	if err == nil {
		return ""
	}
	if ce, ok := As(err); ok {
		return ce.Description()
	}
	return "calculation failed"
}
