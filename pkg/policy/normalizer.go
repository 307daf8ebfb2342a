package policy

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	j "github.com/insurekit/policyclean/pkg/policyclean"
	"github.com/insurekit/policyclean/pkg/profile"
	"github.com/insurekit/policyclean/pkg/transform/dates"
	"github.com/insurekit/policyclean/pkg/transform/filter"
	"github.com/insurekit/policyclean/pkg/transform/impute"
	"github.com/insurekit/policyclean/pkg/transform/scrub"
	"github.com/insurekit/policyclean/pkg/transform/validate"
)

// ErrNoPolicyAmounts is returned when the raw dataset has no present
// policy_amount at all, leaving the mean undefined. This aborts the run;
// imputing from a made-up default would be silently wrong.
var ErrNoPolicyAmounts = errors.New("no present policy_amount values; mean is undefined")

// MeanPolicyAmount computes the imputation statistic over the raw,
// unfiltered frame. It must run before any cleaning stage so the mean
// reflects original amounts, not rounded or filtered ones.
func MeanPolicyAmount(raw *j.Frame) (float64, error) {
	c := profile.NewCollector(raw.Schema(), 0)
	c.ConsumeFrame(raw)
	return meanFrom(c)
}

func meanFrom(c *profile.Collector) (float64, error) {
	cp, ok := c.Column(ColPolicyAmount)
	if !ok || cp.Num == nil {
		return 0, fmt.Errorf("%s: %w", ColPolicyAmount, ErrNoPolicyAmounts)
	}
	mean, ok := cp.Num.Mean()
	if !ok {
		return 0, fmt.Errorf("%s: %w", ColPolicyAmount, ErrNoPolicyAmounts)
	}
	return mean, nil
}

// BuildPipeline assembles the cleaning stages in their fixed order:
// customer_name, phone_number, email, policy_type, policy_amount (round,
// fill with mean, re-round, drop negatives), claim_amount, state, and the
// two date columns. mean must come from MeanPolicyAmount over the same raw
// data; rep receives the per-branch anomaly counts.
func BuildPipeline(cfg Config, mean float64, rep *Report) *j.Pipeline {
	missing := cfg.Missing
	return j.NewPipeline().
		Add(&scrub.Upper{Column: ColCustomerName}).
		Add(&scrub.RegexReplace{Column: ColCustomerName, Pattern: `[^A-Z0-9]+`, Replace: " "}).
		Add(&scrub.Trim{Column: ColCustomerName}).
		Add(&CleanPhone{Column: ColPhoneNumber, Missing: missing, Defaulted: &rep.PhonesDefaulted}).
		Add(&validate.Pattern{Column: ColEmail, Pattern: cfg.EmailPattern, Fallback: missing, Fallbacks: &rep.EmailsDefaulted}).
		Add(&scrub.Trim{Column: ColPolicyType}).
		Add(&scrub.MapValues{Column: ColPolicyType, Map: cfg.TypeAliases, Misses: &rep.TypesUnmatched}).
		Add(&scrub.Round{Column: ColPolicyAmount, Decimals: 2}).
		Add(&impute.Scalar{Column: ColPolicyAmount, Value: mean, Filled: &rep.AmountsImputed}).
		Add(&scrub.Round{Column: ColPolicyAmount, Decimals: 2}).
		Add(&filter.DropBelow{Column: ColPolicyAmount, Min: 0, Dropped: &rep.RowsDropped}).
		Add(&CleanClaim{Column: ColClaimAmount, Zeroed: &rep.ClaimsZeroed}).
		Add(&scrub.Upper{Column: ColState}).
		Add(&scrub.MapValues{Column: ColState, Map: cfg.StateAliases, Default: &missing, Misses: &rep.StatesRelabeled}).
		Add(&dates.Parse{Column: ColPolicyStartDate, Layouts: cfg.DateLayouts, Placeholders: cfg.DatePlaceholders, Defaulted: &rep.StartDatesDefaulted}).
		Add(&dates.Parse{Column: ColPolicyEndDate, Layouts: cfg.DateLayouts, Placeholders: cfg.DatePlaceholders, Defaulted: &rep.EndDatesDefaulted})
}

// Normalizer runs the two-pass cleaning (aggregate, then stages) exactly
// once and exposes the result as a named read-many view. Repeated Normalize
// calls return the cached view.
type Normalizer struct {
	cfg      Config
	viewName string

	once   sync.Once
	view   *View
	report Report
	err    error
}

func NewNormalizer(viewName string, cfg Config) *Normalizer {
	return &Normalizer{cfg: cfg, viewName: viewName}
}

func (n *Normalizer) Normalize(ctx context.Context, raw *j.Frame) (*View, error) {
	n.once.Do(func() {
		mean, err := MeanPolicyAmount(raw)
		if err != nil {
			n.err = err
			return
		}
		out, err := BuildPipeline(n.cfg, mean, &n.report).Run(ctx, raw)
		if err != nil {
			n.err = err
			return
		}
		n.view = NewView(n.viewName, out)
	})
	return n.view, n.err
}

// Report returns the anomaly counts of the completed run. Zero until
// Normalize has been called.
func (n *Normalizer) Report() Report { return n.report }

// NormalizeStream cleans a chunked source in two passes: the first pass
// streams all chunks through a stats collector to fix the mean, the second
// re-opens the source and runs the pipeline chunk by chunk into sink. open
// must return a fresh source positioned at the first record each time.
func NormalizeStream(ctx context.Context, cfg Config, open func() (j.ChunkSource, error), sink j.ChunkSink) (Report, error) {
	var rep Report

	src, err := open()
	if err != nil {
		return rep, err
	}
	if c, ok := src.(io.Closer); ok {
		defer func() { _ = c.Close() }()
	}
	col := profile.NewCollector(RawSchema(), 0)
	for {
		f, err := src.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return rep, err
		}
		col.ConsumeFrame(f)
	}
	mean, err := meanFrom(col)
	if err != nil {
		return rep, err
	}

	src, err = open()
	if err != nil {
		return rep, err
	}
	if c, ok := src.(io.Closer); ok {
		defer func() { _ = c.Close() }()
	}
	p := BuildPipeline(cfg, mean, &rep)
	if err := j.RunStream(ctx, p, src, sink); err != nil {
		return rep, err
	}
	return rep, nil
}
