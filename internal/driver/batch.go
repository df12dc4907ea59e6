// Package driver fans the translator out over many struct declarations
// concurrently, caches their results on disk, and reports per-struct
// diagnostics back to the caller, the way internal/driver/parallel.go does
// for a directory of source files.
package driver

import (
	"context"
	"runtime"

	"fortio.org/safecast"
	"golang.org/x/sync/errgroup"

	"github.com/simonzhangsm/capnproto/internal/decl"
	"github.com/simonzhangsm/capnproto/internal/diag"
	"github.com/simonzhangsm/capnproto/internal/schema"
	"github.com/simonzhangsm/capnproto/internal/translator"
)

// Job is one struct declaration to translate, already carrying a node with
// its ID and DisplayName assigned.
type Job struct {
	Decl     decl.Decl
	Node     *schema.Node
	Resolver decl.Resolver

	// AnnotationDecls maps an annotation's name to its declaration, for
	// checking each application's target against Decl.Targets; nil skips
	// the check (the resolver still flags a name that isn't an annotation
	// at all).
	AnnotationDecls map[string]decl.Decl

	// ContentDigest keys the disk cache; leave zero to bypass caching.
	ContentDigest Digest
}

// Result is one job's outcome: Node has the job's own layout fields
// populated, Groups holds its named groups' and unions' auxiliary nodes,
// and Bag holds every diagnostic raised translating it.
type Result struct {
	Job    Job
	Node   *schema.Node
	Groups []*schema.Node
	Bag    *diag.Bag
	Cached bool
}

// TranslateBatch translates jobs concurrently, capped at jobs-many
// goroutines (0 means runtime.GOMAXPROCS(0)), checking cache before
// consulting the walker/translator and writing through after a cache miss.
// Results preserve the input order; a job whose context is cancelled before
// it starts gets a nil Node and an I/O diagnostic.
func TranslateBatch(ctx context.Context, batch []Job, cache *DiskCache, maxDiagnostics, jobs int) ([]Result, error) {
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	limit, err := safecast.Conv[int](jobs)
	if err != nil {
		limit = runtime.GOMAXPROCS(0)
	}

	results := make([]Result, len(batch))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(limit, len(batch)))

	for i, job := range batch {
		i, job := i, job
		g.Go(func() error {
			select {
			case <-gctx.Done():
				bag := diag.NewBag(maxDiagnostics)
				diag.Errorf(diag.BagReporter{Bag: bag}, diag.IODeclReadError, job.Decl.Span(),
					"translation cancelled: %v", gctx.Err())
				results[i] = Result{Job: job, Bag: bag}
				return nil
			default:
			}
			results[i] = translateOne(job, cache, maxDiagnostics)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func translateOne(job Job, cache *DiskCache, maxDiagnostics int) Result {
	if cache != nil && !job.ContentDigest.IsZero() {
		if payload, ok, err := cache.Get(job.ContentDigest); err == nil && ok {
			return Result{Job: job, Node: payload.Node, Groups: payload.Groups, Bag: diag.NewBag(maxDiagnostics), Cached: true}
		}
	}

	bag := diag.NewBag(maxDiagnostics)
	reporter := diag.BagReporter{Bag: bag}

	var groups []*schema.Node
	if job.Decl.Kind() == decl.KindEnum {
		translator.CompileEnum(job.Decl, job.Node, reporter)
	} else {
		var finish func()
		groups, finish = translator.Translate(job.Decl, job.Node, job.Resolver, job.AnnotationDecls, reporter)
		finish()
	}

	if cache != nil && !job.ContentDigest.IsZero() {
		_ = cache.Put(job.ContentDigest, &DiskPayload{Node: job.Node, Groups: groups})
	}
	return Result{Job: job, Node: job.Node, Groups: groups, Bag: bag}
}
