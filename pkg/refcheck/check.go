package refcheck

import (
	"context"
	"fmt"
	"runtime"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"

	"github.com/macropower/assetref/pkg/assetref"
	"github.com/macropower/assetref/pkg/tracing"
)

// Validator resolves a single reference. [*assetref.Resolver] implements it.
type Validator interface {
	Validate(base, raw string) assetref.Outcome
}

var _ Validator = (*assetref.Resolver)(nil)

type checkOptions struct {
	tracer      tracing.Tracer
	concurrency int
}

// CheckOption configures [Check].
type CheckOption func(*checkOptions)

// WithConcurrency limits the number of references resolved at once. Values
// below one use [runtime.GOMAXPROCS].
func WithConcurrency(n int) CheckOption {
	return func(o *checkOptions) {
		o.concurrency = n
	}
}

// WithTracer sets the tracer used to time a check. The default logs spans
// at debug level with [slog.Default].
func WithTracer(t tracing.Tracer) CheckOption {
	return func(o *checkOptions) {
		o.tracer = t
	}
}

// Check validates every reference in refs and returns the outcomes in the
// same order. It only fails if ctx is done before all references are
// checked; invalid references are reported in the outcomes.
func Check(ctx context.Context, v Validator, refs []Reference, opts ...CheckOption) ([]assetref.Outcome, error) {
	o := checkOptions{}
	for _, opt := range opts {
		opt(&o)
	}

	if o.concurrency < 1 {
		o.concurrency = runtime.GOMAXPROCS(0)
	}

	if o.tracer == nil {
		o.tracer = tracing.NewLoggingTracer(nil)
	}

	span := o.tracer.StartSpan(ctx, "check references")
	defer span.Finish()

	span.SetBaggageItem("references", len(refs))
	span.SetBaggageItem("concurrency", o.concurrency)

	out := make([]assetref.Outcome, len(refs))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(o.concurrency)

	for i, ref := range refs {
		if gCtx.Err() != nil {
			break
		}

		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err //nolint:wrapcheck // Wrapped below.
			}

			out[i] = v.Validate(ref.Base, ref.Ref)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("check references: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("check references: %w", err)
	}

	span.SetBaggageItem("failed", Summarize(out).Failed)

	return out, nil
}

// Failures combines the errors of all failed outcomes. It returns nil if
// every outcome is OK.
func Failures(outcomes []assetref.Outcome) error {
	var merr *multierror.Error

	for _, o := range outcomes {
		if err := o.Err(); err != nil {
			merr = multierror.Append(merr, fmt.Errorf("%s: %q: %w", o.Base, o.Ref, err))
		}
	}

	return merr.ErrorOrNil()
}

// Summary counts outcomes.
type Summary struct {
	Total  int `json:"total"  yaml:"total"`
	OK     int `json:"ok"     yaml:"ok"`
	Failed int `json:"failed" yaml:"failed"`
}

// Summarize counts outcomes.
func Summarize(outcomes []assetref.Outcome) Summary {
	s := Summary{Total: len(outcomes)}
	for _, o := range outcomes {
		if o.OK() {
			s.OK++
		} else {
			s.Failed++
		}
	}

	return s
}
