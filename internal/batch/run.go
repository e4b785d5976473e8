// Package batch evaluates many parameter sets at once and moves them in and
// out of spreadsheets.
package batch

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/structura/structura/internal/analysis"
)

// Outcome is the evaluation of one item. Result is nil when the item failed
// validation.
type Outcome struct {
	Index      int                 `json:"index"`
	Parameters analysis.Parameters `json:"parameters"`
	Result     *analysis.Result    `json:"result,omitempty"`
	Error      string              `json:"error,omitempty"`
}

// OK reports whether the item was evaluated
func (o Outcome) OK() bool {
	return o.Result != nil
}

// Summary counts compliant, non-compliant and invalid outcomes
type Summary struct {
	Compliant    int `json:"compliant"`
	NonCompliant int `json:"non_compliant"`
	Invalid      int `json:"invalid"`
}

// Summarize tallies a slice of outcomes
func Summarize(outcomes []Outcome) Summary {
	var s Summary
	for _, o := range outcomes {
		switch {
		case !o.OK():
			s.Invalid++
		case o.Result.IsCompliant:
			s.Compliant++
		default:
			s.NonCompliant++
		}
	}
	return s
}

// Run validates and evaluates every item with at most workers goroutines.
// Outcomes keep the input order. A non-positive workers uses GOMAXPROCS.
// Invalid items do not stop the run; only ctx cancellation does.
func Run(ctx context.Context, items []analysis.Parameters, workers int) ([]Outcome, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	outcomes := make([]Outcome, len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, p := range items {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			outcomes[i] = evaluate(i, p)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

func evaluate(i int, p analysis.Parameters) Outcome {
	o := Outcome{Index: i, Parameters: p}
	if err := p.Validate(); err != nil {
		o.Error = err.Error()
		return o
	}
	r := analysis.Evaluate(p)
	if !r.Finite() {
		o.Error = "result is not finite"
		return o
	}
	o.Result = &r
	return o
}
