package scorecard

import (
	"math"

	"github.com/YuminosukeSato/scorego/core/parallel"
	"github.com/YuminosukeSato/scorego/frame"
	"github.com/YuminosukeSato/scorego/pkg/errors"
	"github.com/YuminosukeSato/scorego/woe"
)

// ScoreColumn is the name of the column Apply appends to the scored frame.
const ScoreColumn = "score"

// Scored is the result of applying a scorecard to a dataset.
type Scored struct {
	// Frame holds the retained original columns plus the ScoreColumn.
	Frame *frame.Frame

	// Card is the scorecard that produced the scores.
	Card *Scorecard

	// Rows is the number of rows in the input dataset.
	Rows int

	// Dropped is the number of rows removed by the production outlier
	// policy, with their original indexes in DroppedIndex.
	Dropped      int
	DroppedIndex []int

	// MaxAdditivityGap is the largest absolute difference observed
	// between a row's scaled score and the sum of its per-bin points.
	// The two are computed independently, so the gap stays at float
	// rounding magnitude unless the points table and the scaling
	// disagree.
	MaxAdditivityGap float64
}

// Scores returns the score column as a slice.
func (s *Scored) Scores() []float64 {
	col, err := s.Frame.Column(ScoreColumn)
	if err != nil {
		return nil
	}
	return col.Floats()
}

// Apply scores every row of the dataset: the dictionary features are
// WoE-coded by the embedded lookup transform under the Config's production
// policy, each retained row gets score = Offset + Factor·(Intercept +
// Σ coef·woe), and the per-bin points are summed independently to verify
// additivity. Scores outside the advisory range raise a ScoreRangeWarning;
// non-finite scores are an error.
func (sc *Scorecard) Apply(f *frame.Frame) (*Scored, error) {
	const op = "Scorecard.Apply"
	if sc.state == nil {
		return nil, errors.NewNotFittedError("Scorecard", "Apply")
	}
	if err := sc.state.RequireFitted("Scorecard", "Apply"); err != nil {
		return nil, err
	}
	if f == nil || f.NumRows() == 0 {
		return nil, errors.NewEmptyInputError(op, "dataset")
	}
	if f.Has(ScoreColumn) {
		return nil, errors.NewValueError(op, "dataset already has a score column")
	}

	enc := woe.NewEncoderFromDict(sc.Dict)
	enc.Production = sc.Config.Production
	res, err := enc.Transform(f)
	if err != nil {
		return nil, err
	}

	kept := res.Kept()
	rows := res.Frame.NumRows()

	// WoE columns for the scaled score, raw columns for the independent
	// points-table lookup.
	woeCols := make([]*frame.Series, len(sc.Features))
	rawCols := make([]*frame.Series, len(sc.Features))
	tables := make([]*woe.Table, len(sc.Features))
	pts := make([][]float64, len(sc.Features))
	for j, name := range sc.Features {
		wc, err := res.Frame.Column(name)
		if err != nil {
			return nil, err
		}
		rc, err := f.Column(name)
		if err != nil {
			return nil, err
		}
		woeCols[j] = wc
		rawCols[j] = rc
		tables[j] = sc.Dict[name]
		pts[j] = sc.points[name]
	}

	scores := make([]float64, rows)
	gaps := make([]float64, rows)

	const parallelThreshold = 1000
	parallel.ParallelizeWithThreshold(rows, parallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			logit := sc.Intercept
			pointsSum := 0.0
			orig := kept[i]
			for j := range sc.Features {
				logit += sc.Coef[j] * woeCols[j].Float(i)
				pointsSum += pts[j][tables[j].RowBin(rawCols[j], orig)]
			}
			score := sc.Offset + sc.Factor*logit
			scores[i] = score
			gaps[i] = math.Abs(pointsSum - score)
		}
	})

	maxGap := 0.0
	below, above := 0, 0
	for i, s := range scores {
		if math.IsNaN(s) || math.IsInf(s, 0) {
			return nil, errors.NewNumericalInstabilityError(op, []float64{s}, kept[i])
		}
		if gaps[i] > maxGap {
			maxGap = gaps[i]
		}
		if s < sc.Config.ScoreMin {
			below++
		}
		if s > sc.Config.ScoreMax {
			above++
		}
	}
	if below > 0 || above > 0 {
		errors.Warn(errors.NewScoreRangeWarning(below, above, sc.Config.ScoreMin, sc.Config.ScoreMax))
	}

	out := f
	if res.Dropped > 0 {
		out, err = f.Filter(kept)
		if err != nil {
			return nil, err
		}
	}
	out, err = out.WithColumn(frame.NewFloatSeries(ScoreColumn, scores))
	if err != nil {
		return nil, err
	}

	return &Scored{
		Frame:            out,
		Card:             sc,
		Rows:             res.Rows,
		Dropped:          res.Dropped,
		DroppedIndex:     res.DroppedIndex,
		MaxAdditivityGap: maxGap,
	}, nil
}

// Score builds a scorecard and applies it in one call.
func Score(f *frame.Frame, dict woe.Dict, features []string, coef []float64, intercept float64, cfg Config) (*Scored, error) {
	sc, err := Build(dict, features, coef, intercept, cfg)
	if err != nil {
		return nil, err
	}
	return sc.Apply(f)
}
