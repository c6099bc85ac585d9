package diag

import "fmt"

// Code identifies a diagnostic by category and ordinal, following the
// ranged-constant scheme of a production front-end: the leading digit
// picks the error kind (syntax, redefinition, type, unimplemented,
// resource); a kind is a numeric range of Code values, not a Go type.
type Code uint16

const (
	CodeUnknown Code = 0

	// Syntax: grammar-level errors (1000-1999).
	SynUnexpectedToken Code = 1001
	SynExpectedToken    Code = 1002
	SynUnclosedDelim    Code = 1003
	SynBadRegisterTag   Code = 1004
	SynMaxErrors        Code = 1005

	// Redefinition: name conflicts in scope or function table (2000-2999).
	RedefVariable           Code = 2001
	RedefType               Code = 2002
	RedefFunction           Code = 2003
	RedefFunctionReturnType Code = 2004
	RedefVarFuncCollision   Code = 2005

	// Type: mismatched initializer, invalid cast, non-scalar condition,
	// const lvalue, majority conflicts, illegal modifiers (3000-3999).
	TypeMismatchedInitializer Code = 3001
	TypeInvalidCast           Code = 3002
	TypeNonScalarCondition    Code = 3003
	TypeConstLValue           Code = 3004
	TypeMajorityConflict      Code = 3005
	TypeIllegalModifier       Code = 3006
	TypeInvalidSwizzle        Code = 3007
	TypeUnknownField          Code = 3008
	TypeUnknownName           Code = 3009
	TypeIndexNonArray         Code = 3010
	TypeIndexNonScalar        Code = 3011
	TypeBadArrayLength        Code = 3012
	TypeBadConstructor        Code = 3013
	TypeIncompatibleReturn    Code = 3014
	TypeVoidSemantic          Code = 3015
	TypeDuplicateInputMod     Code = 3016
	TypeMissingInitializer    Code = 3017
	TypeStorageOnLocal        Code = 3018
	TypeSemanticOnLocal       Code = 3019
	TypeReturnValueVoid       Code = 3020
	TypeReturnMissingValue    Code = 3021

	// Unimplemented: features consumed but not lowered (4000-4999).
	UnimplStructInitMismatch Code = 4001
	UnimplArrayInit          Code = 4002
	UnimplNestedInit         Code = 4003
	UnimplOperator           Code = 4004
	UnimplBroadcast          Code = 4005

	// Resource: out-of-memory, fatal, and entry-point resolution (5000-5999).
	ResourceExhausted     Code = 5001
	ResEntryPointMissing  Code = 5002
	ResEntryPointNotFound Code = 5003
	ResEntryPointNoBody   Code = 5004

	// Register-reservation diagnostics (6000-6999), warnings-as-unsupported.
	RegUnknownTag    Code = 6001
	RegTargetIgnored Code = 6002
	RegOnFunction    Code = 6003
)

// ID renders a stable string identifier such as "TYPE3007", used by golden
// diagnostic output and tooling that greps for a specific diagnostic.
func (c Code) ID() string {
	switch n := int(c); {
	case n >= 1000 && n < 2000:
		return fmt.Sprintf("SYN%04d", n)
	case n >= 2000 && n < 3000:
		return fmt.Sprintf("REDEF%04d", n)
	case n >= 3000 && n < 4000:
		return fmt.Sprintf("TYPE%04d", n)
	case n >= 4000 && n < 5000:
		return fmt.Sprintf("UNIMPL%04d", n)
	case n >= 5000 && n < 6000:
		return fmt.Sprintf("RES%04d", n)
	case n >= 6000 && n < 7000:
		return fmt.Sprintf("REG%04d", n)
	default:
		return "E0000"
	}
}
