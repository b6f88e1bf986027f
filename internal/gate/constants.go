package gate

import "math"

// The predefined primitives are built once at package init and never handed
// out directly; the accessors below return copies.
var (
	pauliX    = mustConst(KindPauliX, 2, 0, 1, 1, 0)
	pauliY    = mustConst(KindPauliY, 2, 0, -1i, 1i, 0)
	pauliZ    = mustConst(KindPauliZ, 2, 1, 0, 0, -1)
	hadamard2 = mustConst(KindHadamard, 2, invSqrt2, invSqrt2, invSqrt2, -invSqrt2)
	identity2 = mustConst(KindIdentity, 2, 1, 0, 0, 1)

	// |10> <-> |11>
	cnot4 = mustConst(KindCNOT, 4,
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 0, 1,
		0, 0, 1, 0,
	)

	// |01> <-> |10>
	swap4 = mustConst(KindSwap, 4,
		1, 0, 0, 0,
		0, 0, 1, 0,
		0, 1, 0, 0,
		0, 0, 0, 1,
	)
)

const invSqrt2 = 1 / math.Sqrt2

func mustConst(kind Kind, size int, elems ...Complex) *Matrix {
	m, err := NewMatrix(kind, size, elems)
	if err != nil {
		panic(err)
	}
	return m
}

func PauliX() *Matrix    { return pauliX.Clone() }
func PauliY() *Matrix    { return pauliY.Clone() }
func PauliZ() *Matrix    { return pauliZ.Clone() }
func Hadamard2() *Matrix { return hadamard2.Clone() }
func Identity2() *Matrix { return identity2.Clone() }
func CNOT4() *Matrix     { return cnot4.Clone() }
func Swap4() *Matrix     { return swap4.Clone() }
