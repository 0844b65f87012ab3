// Package gather runs the walker over an ordered list of overlay sources
// and folds their Results into one.
//
// A project usually keeps shared resources in one tree and
// platform-specific overrides in others. Sources are walked concurrently
// and merged in the order given, so a later source replaces an earlier
// one's record at the same relative path.
package gather

import (
	"context"
	"regexp"

	"github.com/arthur-debert/resgather/pkg/errors"
	"github.com/arthur-debert/resgather/pkg/logging"
	"github.com/arthur-debert/resgather/pkg/result"
	"github.com/arthur-debert/resgather/pkg/walker"
	"golang.org/x/sync/errgroup"
)

// Source is one tree to walk
type Source struct {
	Path   string
	Dest   string
	Ignore *regexp.Regexp
	Prefix string
}

// Walker is the part of walker.Walker the pipeline needs
type Walker interface {
	WalkWithOptions(ctx context.Context, opts walker.WalkOptions) (*result.Result, error)
}

// Options control the pipeline
type Options struct {
	// SkipReclassify leaves markup-referenced scripts in jsFiles
	SkipReclassify bool
}

// Report is the pipeline outcome
type Report struct {
	Result *result.Result

	// Reclassified lists scripts moved to resourcesToCopy, sorted
	Reclassified []string
}

// Run walks every source and merges the results in source order. Any
// failing source aborts the run. Missing sources contribute nothing.
func Run(ctx context.Context, w Walker, sources []Source, opts Options) (*Report, error) {
	logger := logging.GetLogger("gather")
	done := logging.LogOperationStart(logger, "gather")
	defer done()

	for i, src := range sources {
		if src.Path == "" {
			return nil, errors.Newf(errors.ErrInvalidInput, "source %d has no path", i)
		}
	}

	partials := make([]*result.Result, len(sources))
	g, gctx := errgroup.WithContext(ctx)
	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			res, err := w.WalkWithOptions(gctx, walker.WalkOptions{
				Root:   src.Path,
				Dest:   src.Dest,
				Ignore: src.Ignore,
				Prefix: src.Prefix,
			})
			if err != nil {
				return err
			}
			logger.Debug().
				Str("source", src.Path).
				Int("files", res.Len()).
				Msg("Source walked")
			partials[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &Report{Result: result.Merge(partials...)}
	if !opts.SkipReclassify {
		report.Reclassified = report.Result.ReclassifyMarkupReferencedScripts()
	}

	logger.Info().
		Int("sources", len(sources)).
		Int("files", report.Result.Len()).
		Int("reclassified", len(report.Reclassified)).
		Msg("Gather complete")

	return report, nil
}
