// Package chain provides a sequential continuation combinator: an ordered
// list of steps, each possibly asynchronous, where each step receives the
// resolved value of the previous one. A failure at any step short-circuits
// the remaining steps and surfaces a single translated error.
package chain

import (
	"context"
	"errors"

	"github.com/stratocloud/cascade/model/types"
	"github.com/stratocloud/cascade/runtime/future"
)

// Step is a single stage of a chain. It receives the resolved value of the
// previous step (nil for the first one) and returns either an immediate
// value, a *future.Future, or a future.Group to be awaited before the next
// step runs.
type Step func(ctx context.Context, prev interface{}) (interface{}, error)

// Translator converts a step failure into the single error surfaced by the
// chain.
type Translator func(err error) error

// Chain runs steps in order.
type Chain struct {
	steps     []Step
	translate Translator
}

// Option customises a chain.
type Option func(c *Chain)

// WithTranslator overrides the default error translator.
func WithTranslator(translate Translator) Option {
	return func(c *Chain) { c.translate = translate }
}

// New creates an empty chain.
func New(options ...Option) *Chain {
	c := &Chain{translate: defaultTranslate}
	for _, option := range options {
		option(c)
	}
	return c
}

// Then appends a step and returns the chain for fluent composition.
func (c *Chain) Then(step Step) *Chain {
	c.steps = append(c.steps, step)
	return c
}

// Run starts the chain and returns a future that emits the final resolved
// value and then completes, or fails with a single translated error. Control
// returns immediately; progress is driven by the awaited futures resolving.
func (c *Chain) Run(ctx context.Context) *future.Future {
	out := future.New()
	go c.run(ctx, out)
	return out
}

// Execute makes a chain usable wherever a single-future action is expected.
func (c *Chain) Execute(ctx context.Context) (*future.Future, error) {
	return c.Run(ctx), nil
}

func (c *Chain) run(ctx context.Context, out *future.Future) {
	defer out.Done()
	var prev interface{}
	for _, step := range c.steps {
		value, err := step(ctx, prev)
		if err == nil {
			value, err = resolve(ctx, value)
		}
		if err != nil {
			out.Fail(c.translate(err))
			return
		}
		prev = value
	}
	out.Emit(prev)
}

// resolve awaits asynchronous step results. A future resolving to a single
// chunk unwraps to that chunk; multiple chunks pass through as a slice. A
// group waits for all members and surfaces the first error if any failed.
func resolve(ctx context.Context, value interface{}) (interface{}, error) {
	switch actual := value.(type) {
	case *future.Future:
		chunks, err := actual.Wait(ctx)
		if err != nil {
			return nil, err
		}
		if len(chunks) == 1 {
			return chunks[0], nil
		}
		return chunks, nil
	case future.Group:
		results, err := actual.Wait(ctx)
		if err != nil {
			return nil, err
		}
		joined := make([]interface{}, len(results))
		for i, chunks := range results {
			if len(chunks) == 1 {
				joined[i] = chunks[0]
				continue
			}
			joined[i] = chunks
		}
		return joined, nil
	case []*future.Future:
		return resolve(ctx, future.Group(actual))
	}
	return value, nil
}

// defaultTranslate keeps domain and configuration errors intact and wraps
// everything else into a domain-level error so that callers never observe
// raw transport failures from a composite operation.
func defaultTranslate(err error) error {
	if errors.Is(err, types.ErrDomain) || errors.Is(err, types.ErrConfiguration) {
		return err
	}
	return types.NewDomainError("%v", err)
}
