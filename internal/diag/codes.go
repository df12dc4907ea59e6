package diag

import "fmt"

// Code identifies a diagnostic kind. Ranges group codes by compiler phase:
// here, by which part of the node translator raised them.
type Code uint16

const (
	UnknownCode Code = 0

	// Ordinal walker (1000s): declaration-tree shape and ordinal sequencing.
	OrdSkipped          Code = 1001 // ordinals must be sequential
	OrdDuplicate         Code = 1002 // duplicate ordinal
	OrdUnionRetroactive  Code = 1003 // union's ordinal claimed more than once
	OrdUnionTooFewMembers Code = 1004
	OrdGroupEmpty        Code = 1005
	OrdUnionInsideUnion  Code = 1006
	OrdKindNotAllowed    Code = 1007 // declaration kind not permitted in this parent

	// Duplicate detectors (2000s): name/ordinal collisions across a scope.
	DupName     Code = 2001
	DupOrdinal  Code = 2002
	DupEnumerant Code = 2003

	// Value / constant / annotation compilation (3000s).
	ValTypeRefNotType           Code = 3001
	ValAnnotationRefNotAnnotation Code = 3002
	ValIntegerTooLargeToNegate  Code = 3003
	ValStructLiteralFieldNotFound Code = 3004
	ValConstantCitedUnqualified Code = 3005
	ValTypeMismatch             Code = 3006
	ValAnnotationTargetNotAllowed Code = 3007

	// I/O (4000s): declaration-reader failures surfaced by the driver.
	IODeclReadError Code = 4001
)

var codeTitle = map[Code]string{
	UnknownCode:                   "unknown error",
	OrdSkipped:                    "ordinals must be sequential",
	OrdDuplicate:                  "duplicate ordinal",
	OrdUnionRetroactive:           "union's discriminant claimed more than once",
	OrdUnionTooFewMembers:         "union must have at least two members",
	OrdGroupEmpty:                 "group must have at least one member",
	OrdUnionInsideUnion:           "unions cannot contain unions",
	OrdKindNotAllowed:             "declaration kind not permitted here",
	DupName:                       "duplicate name in scope",
	DupOrdinal:                    "duplicate ordinal in scope",
	DupEnumerant:                  "duplicate enumerant",
	ValTypeRefNotType:             "reference does not name a type",
	ValAnnotationRefNotAnnotation: "reference does not name an annotation",
	ValIntegerTooLargeToNegate:    "integer too large to negate",
	ValStructLiteralFieldNotFound: "struct literal field does not exist",
	ValConstantCitedUnqualified:   "constant cited unqualified",
	ValTypeMismatch:               "type mismatch in value literal",
	ValAnnotationTargetNotAllowed: "annotation not allowed on this declaration kind",
	IODeclReadError:               "failed to read declaration",
}

// Title returns a short human-readable description of the code.
func (c Code) Title() string {
	if t, ok := codeTitle[c]; ok {
		return t
	}
	return codeTitle[UnknownCode]
}

func (c Code) String() string {
	return fmt.Sprintf("E%04d: %s", uint16(c), c.Title())
}
