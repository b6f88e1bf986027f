package circuit

import (
	"context"
	"fmt"
	"slices"

	"golang.org/x/sync/errgroup"

	"qtermsim/internal/qerr"
	"qtermsim/internal/statevector"
)

// Step is one observed stage of an evolution: the operation just applied and
// the state it produced.
type Step struct {
	Index int
	Op    OpInfo
	State *statevector.Statevector
}

type evolveOptions struct {
	ctx   context.Context
	trace func(Step)
}

// Option configures Evolve.
type Option func(*evolveOptions)

// WithTrace calls fn after every operation, in execution order. fn receives
// its own copy of the state.
func WithTrace(fn func(Step)) Option {
	return func(o *evolveOptions) { o.trace = fn }
}

// WithContext aborts the evolution between operations once ctx is done.
func WithContext(ctx context.Context) Option {
	return func(o *evolveOptions) { o.ctx = ctx }
}

// Evolve folds initial through every operation of c left to right and
// returns the final state. initial and c are not modified.
func Evolve(initial *statevector.Statevector, c *Circuit, opts ...Option) (*statevector.Statevector, error) {
	o := evolveOptions{ctx: context.Background()}
	for _, opt := range opts {
		opt(&o)
	}
	if initial.Qubits() != c.numQubits {
		return nil, fmt.Errorf("%w: %d-qubit state on a %d-qubit circuit", qerr.ErrDimension, initial.Qubits(), c.numQubits)
	}

	state := initial.Clone()
	for i, op := range c.ops {
		if err := o.ctx.Err(); err != nil {
			return nil, err
		}
		next, err := op.Gate.MulVec(state)
		if err != nil {
			return nil, fmt.Errorf("operation %d (%s): %w", i, op.Gate.Kind(), err)
		}
		state = next
		if o.trace != nil {
			o.trace(Step{
				Index: i,
				Op:    OpInfo{Kind: op.Gate.Kind(), Targets: slices.Clone(op.Targets), Angle: op.Angle, Custom: op.custom},
				State: state.Clone(),
			})
		}
	}
	return state, nil
}

// EvolveTrace is Evolve with every intermediate state collected.
func EvolveTrace(initial *statevector.Statevector, c *Circuit) (*statevector.Statevector, []Step, error) {
	steps := make([]Step, 0, c.Len())
	final, err := Evolve(initial, c, WithTrace(func(s Step) { steps = append(steps, s) }))
	if err != nil {
		return nil, nil, err
	}
	return final, steps, nil
}

// EvolveBatch evolves every state through c independently, running at most
// workers evolutions at once (workers < 1 means one per state). Results keep
// the order of states. The first failure cancels the rest.
func EvolveBatch(ctx context.Context, states []*statevector.Statevector, c *Circuit, workers int) ([]*statevector.Statevector, error) {
	results := make([]*statevector.Statevector, len(states))

	g, gCtx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, s := range states {
		g.Go(func() error {
			out, err := Evolve(s, c, WithContext(gCtx))
			if err != nil {
				return fmt.Errorf("state %d: %w", i, err)
			}
			results[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
