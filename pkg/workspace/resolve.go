package workspace

import (
	"context"
	"sync"
	"time"

	"github.com/bumpline/bumpline/pkg/observability"
	"github.com/bumpline/bumpline/pkg/version"
)

// DefaultWorkers is the pool size used when the caller passes a
// non-positive worker count to [ResolveAll].
const DefaultWorkers = 8

// Result pairs one package with the outcome of its resolution. Err is nil
// on success.
type Result struct {
	Package version.Package
	Err     error
}

// ResolveAll resolves every package through r using a pool of at most
// workers goroutines. Results keep the input order. Resolutions are fully
// independent, so one package's failure is recorded in its Result and the
// rest proceed. Cancelling ctx marks the not-yet-started packages with
// the context error.
//
// Progress is reported through [observability.ResolutionHooks].
func ResolveAll(ctx context.Context, r *version.Resolver, pkgs []version.Package, workers int) []Result {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if workers > len(pkgs) {
		workers = len(pkgs)
	}

	hooks := observability.Resolution()
	batchStart := time.Now()
	hooks.OnResolveStart(ctx, len(pkgs))

	results := make([]Result, len(pkgs))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for g := 0; g < workers; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if err := ctx.Err(); err != nil {
					results[i] = Result{Package: pkgs[i], Err: err}
					continue
				}
				hooks.OnPackageStart(ctx, pkgs[i].Module)
				start := time.Now()
				pkg, err := r.Resolve(ctx, pkgs[i])
				hooks.OnPackageComplete(ctx, pkg.Module, string(pkg.State), time.Since(start), err)
				results[i] = Result{Package: pkg, Err: err}
			}
		}()
	}

	for i := range pkgs {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	var failed int
	for _, res := range results {
		if res.Err != nil {
			failed++
		}
	}
	hooks.OnResolveComplete(ctx, len(pkgs), failed, time.Since(batchStart))

	return results
}
