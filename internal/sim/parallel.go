package sim

import (
	"context"
	"sync"

	"github.com/san-kum/dynadraw/internal/dynamo"
)

// Ensemble runs the same input script against several parameter sets at
// once. Every run gets its own simulator and surface from the factory, so
// nothing is shared between goroutines.
type Ensemble struct {
	factory func(p dynamo.Params) *Simulator
}

func NewEnsemble(factory func(p dynamo.Params) *Simulator) *Ensemble {
	return &Ensemble{factory: factory}
}

func (e *Ensemble) Run(ctx context.Context, variants []dynamo.Params, drive func(context.Context, *Simulator) error) ([]*Simulator, error) {
	sims := make([]*Simulator, len(variants))
	errs := make([]error, len(variants))

	var wg sync.WaitGroup
	for i, p := range variants {
		wg.Add(1)
		go func(idx int, p dynamo.Params) {
			defer wg.Done()

			s := e.factory(p)
			sims[idx] = s
			errs[idx] = drive(ctx, s)
		}(i, p)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return sims, nil
}
