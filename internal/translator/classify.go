package translator

import "github.com/simonzhangsm/capnproto/internal/decl"

// lgSize is the data-section classification of a field's type. -1 means
// "void, allocate nothing"; -2 means "pointer-typed, goes in the pointer
// section".
const (
	lgSizeVoid    = -1
	lgSizePointer = -2
)

// classify maps a field's resolved type to the size class its value
// occupies:
//
//	void     -1
//	bool      0  (1 bit)
//	byte      3  (8 bits)
//	halfword  4  (16 bits)
//	word32    5  (32 bits)
//	word64    6  (64 bits)
//	pointer  -2
func classify(t decl.Type) int {
	if t.IsPointer {
		return lgSizePointer
	}
	switch t.Scalar {
	case decl.ScalarVoid:
		return lgSizeVoid
	case decl.ScalarBool:
		return 0
	case decl.ScalarInt8, decl.ScalarUint8:
		return 3
	case decl.ScalarInt16, decl.ScalarUint16, decl.ScalarEnum:
		return 4
	case decl.ScalarInt32, decl.ScalarUint32, decl.ScalarFloat32:
		return 5
	case decl.ScalarInt64, decl.ScalarUint64, decl.ScalarFloat64:
		return 6
	default:
		// decl.ScalarNone or anything unrecognised: treat as a zero-size
		// void rather than panic, degrading instead of throwing for
		// anything the type compiler left unresolved.
		return lgSizeVoid
	}
}
