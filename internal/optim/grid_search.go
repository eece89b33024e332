package optim

import (
	"context"
	"errors"
	"math"

	"github.com/san-kum/dynadraw/internal/dynamo"
)

var ErrEmptyGrid = errors.New("empty search grid")

// Objective scores a parameter set; lower is better.
type Objective func(ctx context.Context, p dynamo.Params) (float64, error)

// GridSearch tries every stiffness and damping pair on a grid over a base
// parameter set.
type GridSearch struct {
	Stiffness []float64
	Damping   []float64
}

func NewGridSearch(stiffness, damping []float64) *GridSearch {
	return &GridSearch{Stiffness: stiffness, Damping: damping}
}

// NewSliderGrid spans both slider ranges with n evenly spaced values each.
func NewSliderGrid(n int) *GridSearch {
	return NewGridSearch(Linspace(dynamo.StiffnessRange, n), Linspace(dynamo.DampingRange, n))
}

// Linspace returns n evenly spaced values from r.Min to r.Max inclusive.
func Linspace(r dynamo.Range, n int) []float64 {
	switch {
	case n <= 0:
		return nil
	case n == 1:
		return []float64{r.Min}
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = r.Lerp(float64(i) / float64(n-1))
	}
	out[n-1] = r.Max
	return out
}

type Result struct {
	Params dynamo.Params
	Score  float64
	Tried  int
}

// Search evaluates obj at every grid point. Points whose objective fails or
// returns NaN are skipped; the search only fails when none succeed or ctx is
// done.
func (g *GridSearch) Search(ctx context.Context, base dynamo.Params, obj Objective) (Result, error) {
	if len(g.Stiffness) == 0 || len(g.Damping) == 0 {
		return Result{}, ErrEmptyGrid
	}

	best := Result{Score: math.Inf(1)}
	found := false
	var lastErr error

	for _, k := range g.Stiffness {
		for _, d := range g.Damping {
			if err := ctx.Err(); err != nil {
				return Result{}, err
			}
			p := base
			p.Stiffness, p.Damping = k, d
			p = p.Clamped()

			score, err := obj(ctx, p)
			best.Tried++
			if err != nil {
				lastErr = err
				continue
			}
			if math.IsNaN(score) {
				continue
			}
			if !found || score < best.Score {
				best.Params, best.Score = p, score
				found = true
			}
		}
	}

	if !found {
		if lastErr != nil {
			return Result{}, lastErr
		}
		return Result{}, ErrEmptyGrid
	}
	return best, nil
}
