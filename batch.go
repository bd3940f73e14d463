package svgflat

import (
	"context"

	"github.com/gogpu/svgflat/internal/parallel"
)

// BakeJob is one path to flatten: its root-to-leaf ancestor chain and its
// path data.
type BakeJob struct {
	Chain []Ancestor
	D     string
}

// BakeResult is the flattened path data of one BakeJob.
type BakeResult struct {
	D           string
	CTM         Matrix
	Diagnostics Diagnostics
	Verified    bool
	Err         error
}

// BakeAll flattens every job on a pool of workers and returns the results
// in job order. Jobs share nothing but the Context, which is read-only.
// A workers value of 0 uses GOMAXPROCS.
func (c *Context) BakeAll(ctx context.Context, jobs []BakeJob, places, workers int, opts ...PathOption) ([]BakeResult, error) {
	pool := parallel.New(workers)
	defer pool.Close()

	Logger().Debug("svgflat: baking paths", "jobs", len(jobs), "workers", pool.Workers())
	return parallel.Map(ctx, pool, jobs, func(job BakeJob) BakeResult {
		return c.bake(job, places, opts...)
	})
}

func (c *Context) bake(job BakeJob, places int, opts ...PathOption) BakeResult {
	ctm := c.BuildFullCTM(job.Chain)
	d, res, err := c.FlattenPath(job.D, ctm, places, opts...)
	return BakeResult{
		D:           d,
		CTM:         ctm,
		Diagnostics: res.Diagnostics,
		Verified:    res.Verified,
		Err:         err,
	}
}
