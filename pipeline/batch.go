package pipeline

import (
	"context"
	"fmt"
	"runtime"

	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
)

// RunBatch runs every item independently with at most concurrency files in flight.
// One failing file never stops the others; all failures are combined into the
// returned error. Items not started before ctx is done fail with ctx.Err().
func RunBatch(ctx context.Context, items []Options, concurrency int) ([]BatchItem, error) {
	if concurrency <= 0 {
		concurrency = runtime.NumCPU()
	}

	out := make([]BatchItem, len(items))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(concurrency)

	for i, opts := range items {
		i, opts := i, opts
		out[i].SourcePath = opts.SourcePath
		if err := egCtx.Err(); err != nil {
			out[i].Err = err
			continue
		}
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				out[i].Err = err
				return nil
			}
			res, err := Run(opts)
			out[i].Result, out[i].Err = res, err
			if err != nil {
				log.WithField("source", opts.SourcePath).Errorf("export failed: %s", err)
				return nil
			}
			log.WithField("source", opts.SourcePath).Infof("exported to %s", res.OutputDir)
			return nil
		})
	}
	_ = eg.Wait()

	var errs error
	for _, item := range out {
		if item.Err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", item.SourcePath, item.Err))
		}
	}
	return out, errs
}
