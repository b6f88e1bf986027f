package circuit

import (
	"context"
	"errors"
	"math"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"qtermsim/internal/gate"
	"qtermsim/internal/qerr"
	"qtermsim/internal/statevector"
)

const tol = 1e-10

func mustState(label string) *statevector.Statevector {
	s, err := statevector.FromBitString(label)
	if err != nil {
		panic(err)
	}
	return s
}

func TestCircuitConstruction(t *testing.T) {
	Convey("Given a new 3-qubit circuit", t, func() {
		c, err := New(3)
		So(err, ShouldBeNil)
		So(c.Qubits(), ShouldEqual, 3)
		So(c.Len(), ShouldEqual, 0)

		Convey("Appending gates records them in order", func() {
			So(c.AddHadamard(0, 1), ShouldBeNil)
			So(c.AddCNOT(0, 2), ShouldBeNil)
			So(c.AddSwap(1, 2), ShouldBeNil)
			So(c.AddPauli(1, gate.AxisY), ShouldBeNil)
			So(c.AddPhase(2, math.Pi/4), ShouldBeNil)

			ops := c.Ops()
			So(ops, ShouldHaveLength, 5)
			So(ops[0].Kind, ShouldEqual, gate.KindHadamard)
			So(ops[0].Targets, ShouldResemble, []int{0, 1})
			So(ops[1].Kind, ShouldEqual, gate.KindCNOT)
			So(ops[1].Targets, ShouldResemble, []int{0, 2})
			So(ops[2].Kind, ShouldEqual, gate.KindSwap)
			So(ops[3].Kind, ShouldEqual, gate.KindPauliY)
			So(ops[4].Kind, ShouldEqual, gate.KindPhase)
			So(ops[4].Angle, ShouldAlmostEqual, math.Pi/4, tol)
		})

		Convey("Every recorded gate spans the full system", func() {
			So(c.AddHadamard(2), ShouldBeNil)
			op, err := c.GateAt(0)
			So(err, ShouldBeNil)
			So(op.Gate.Rows(), ShouldEqual, 8)
			So(op.Gate.Cols(), ShouldEqual, 8)

			_, err = c.GateAt(1)
			So(errors.Is(err, qerr.ErrIndex), ShouldBeTrue)
		})

		Convey("Invalid targets are rejected without touching the log", func() {
			So(errors.Is(c.AddHadamard(3), qerr.ErrInvalidTarget), ShouldBeTrue)
			So(errors.Is(c.AddCNOT(1, 1), qerr.ErrInvalidTarget), ShouldBeTrue)
			So(errors.Is(c.AddSwap(0, -1), qerr.ErrInvalidTarget), ShouldBeTrue)
			So(c.Len(), ShouldEqual, 0)
		})

		Convey("Metadata is a copy", func() {
			So(c.AddHadamard(0), ShouldBeNil)
			ops := c.Ops()
			ops[0].Targets[0] = 2
			So(c.Ops()[0].Targets, ShouldResemble, []int{0})
		})
	})

	Convey("Circuit width is bounded", t, func() {
		_, err := New(0)
		So(errors.Is(err, qerr.ErrInvalidArgument), ShouldBeTrue)
		_, err = New(gate.MaxQubits + 1)
		So(errors.Is(err, qerr.ErrResourceExhausted), ShouldBeTrue)
	})
}

func TestAddCustom(t *testing.T) {
	Convey("Given a 2-qubit circuit", t, func() {
		c, err := New(2)
		So(err, ShouldBeNil)

		Convey("A full-size operator is accepted and keeps its kind", func() {
			m, err := gate.Hadamard(2, 0)
			So(err, ShouldBeNil)
			So(c.AddCustom([]int{0}, m), ShouldBeNil)
			ops := c.Ops()
			So(ops[0].Kind, ShouldEqual, gate.KindHadamard)
			So(ops[0].Custom, ShouldBeTrue)
		})

		Convey("A local operator is rejected", func() {
			err := c.AddCustom([]int{0}, gate.Hadamard2())
			So(errors.Is(err, qerr.ErrDimension), ShouldBeTrue)
			So(c.Len(), ShouldEqual, 0)
		})
	})
}

func TestEvolve(t *testing.T) {
	Convey("Given an empty circuit", t, func() {
		c, err := New(2)
		So(err, ShouldBeNil)

		Convey("Evolving returns the initial state unchanged", func() {
			in, err := statevector.FromAmplitudes([]complex128{0.5, 0.5i, -0.5, 0.5})
			So(err, ShouldBeNil)
			out, err := Evolve(in, c)
			So(err, ShouldBeNil)
			So(out.ApproxEqual(in, tol), ShouldBeTrue)
		})
	})

	Convey("Given H on qubit 0 followed by CNOT(0, 1)", t, func() {
		c, err := New(2)
		So(err, ShouldBeNil)
		So(c.AddHadamard(0), ShouldBeNil)
		So(c.AddCNOT(0, 1), ShouldBeNil)

		Convey("|00> evolves to the Bell state (|00>+|11>)/√2", func() {
			in := mustState("00")
			out, err := Evolve(in, c)
			So(err, ShouldBeNil)
			bell, err := statevector.Bell("00")
			So(err, ShouldBeNil)
			So(out.ApproxEqual(bell, tol), ShouldBeTrue)

			Convey("and the input is not modified", func() {
				So(in.ApproxEqual(mustState("00"), 0), ShouldBeTrue)
			})
		})

		Convey("Tracing reports every step in order without changing the result", func() {
			var seen []Step
			traced, err := Evolve(mustState("00"), c, WithTrace(func(s Step) { seen = append(seen, s) }))
			So(err, ShouldBeNil)
			plain, err := Evolve(mustState("00"), c)
			So(err, ShouldBeNil)
			So(traced.ApproxEqual(plain, 0), ShouldBeTrue)

			So(seen, ShouldHaveLength, 2)
			So(seen[0].Index, ShouldEqual, 0)
			So(seen[0].Op.Kind, ShouldEqual, gate.KindHadamard)
			So(seen[1].Op.Kind, ShouldEqual, gate.KindCNOT)
			So(seen[1].State.ApproxEqual(plain, 0), ShouldBeTrue)

			amps := seen[0].State.Amplitudes()
			So(real(amps[0]), ShouldAlmostEqual, 1/math.Sqrt2, tol)
			So(real(amps[2]), ShouldAlmostEqual, 1/math.Sqrt2, tol)
		})

		Convey("EvolveTrace collects the same steps", func() {
			final, steps, err := EvolveTrace(mustState("10"), c)
			So(err, ShouldBeNil)
			So(steps, ShouldHaveLength, 2)
			So(steps[1].State.ApproxEqual(final, 0), ShouldBeTrue)
		})

		Convey("A state of the wrong width fails with a dimension error", func() {
			out, err := Evolve(mustState("000"), c)
			So(out, ShouldBeNil)
			So(errors.Is(err, qerr.ErrDimension), ShouldBeTrue)
		})
	})

	Convey("Given single gates on basis states", t, func() {
		Convey("CNOT(0,1) maps |10> to |11> and |00> to |00>", func() {
			c, _ := New(2)
			So(c.AddCNOT(0, 1), ShouldBeNil)
			out, err := Evolve(mustState("10"), c)
			So(err, ShouldBeNil)
			So(out.ApproxEqual(mustState("11"), tol), ShouldBeTrue)
			out, err = Evolve(mustState("00"), c)
			So(err, ShouldBeNil)
			So(out.ApproxEqual(mustState("00"), tol), ShouldBeTrue)
		})

		Convey("SWAP(0,1) maps |10> to |01>", func() {
			c, _ := New(2)
			So(c.AddSwap(0, 1), ShouldBeNil)
			out, err := Evolve(mustState("10"), c)
			So(err, ShouldBeNil)
			So(out.ApproxEqual(mustState("01"), tol), ShouldBeTrue)
		})

		Convey("H on a 1-qubit |0> gives [1/√2, 1/√2]", func() {
			c, _ := New(1)
			So(c.AddHadamard(0), ShouldBeNil)
			out, err := Evolve(mustState("0"), c)
			So(err, ShouldBeNil)
			amps := out.Amplitudes()
			So(real(amps[0]), ShouldAlmostEqual, 1/math.Sqrt2, tol)
			So(real(amps[1]), ShouldAlmostEqual, 1/math.Sqrt2, tol)
		})

		Convey("H, CNOT, CNOT prepares GHZ", func() {
			c, _ := New(3)
			So(c.AddHadamard(0), ShouldBeNil)
			So(c.AddCNOT(0, 1), ShouldBeNil)
			So(c.AddCNOT(1, 2), ShouldBeNil)
			out, err := Evolve(mustState("000"), c)
			So(err, ShouldBeNil)
			ghz, err := statevector.GHZ()
			So(err, ShouldBeNil)
			So(out.ApproxEqual(ghz, tol), ShouldBeTrue)
		})
	})
}

func TestEvolveBatch(t *testing.T) {
	Convey("Given a Bell-preparing circuit and every basis state", t, func() {
		c, _ := New(2)
		So(c.AddHadamard(0), ShouldBeNil)
		So(c.AddCNOT(0, 1), ShouldBeNil)

		labels, err := statevector.BasisLabels(2)
		So(err, ShouldBeNil)
		states := make([]*statevector.Statevector, len(labels))
		for i, l := range labels {
			states[i] = mustState(l)
		}

		Convey("Batch results match sequential evolution in order", func() {
			results, err := EvolveBatch(context.Background(), states, c, 2)
			So(err, ShouldBeNil)
			So(results, ShouldHaveLength, 4)
			for i, s := range states {
				want, err := Evolve(s, c)
				So(err, ShouldBeNil)
				So(results[i].ApproxEqual(want, tol), ShouldBeTrue)
			}
		})

		Convey("One bad state fails the whole batch", func() {
			bad := append(states, mustState("000"))
			results, err := EvolveBatch(context.Background(), bad, c, 0)
			So(results, ShouldBeNil)
			So(errors.Is(err, qerr.ErrDimension), ShouldBeTrue)
		})

		Convey("A cancelled context stops the batch", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			_, err := EvolveBatch(ctx, states, c, 1)
			So(errors.Is(err, context.Canceled), ShouldBeTrue)
		})
	})
}
