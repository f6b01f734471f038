// Package scorecard converts a fitted logistic model over WoE-coded
// features into an interpretable point-based scorecard and applies it to
// datasets.
//
// The scaling follows the conventional PDO parameterization: Factor =
// PDO/ln 2 and Offset = TargetScore − Factor·ln(TargetOdds), so the score
// Offset + Factor·ln(odds) hits TargetScore at TargetOdds and gains PDO
// points whenever the odds halve. Because each feature contributes
// Factor·coef·WoE plus an equal share of the constant term, the per-bin
// points table sums to the row's score exactly; Apply verifies this on
// every scored row and reports the largest observed gap.
package scorecard

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/YuminosukeSato/scorego/core/model"
	"github.com/YuminosukeSato/scorego/pkg/errors"
	"github.com/YuminosukeSato/scorego/woe"
)

// Published scaling defaults: 600 points at 1:50 event odds, 20 points to
// double the odds, advisory score range [300, 850].
const (
	DefaultTargetScore = 600.0
	DefaultTargetOdds  = 0.02
	DefaultPDO         = 20.0
	DefaultScoreMin    = 300.0
	DefaultScoreMax    = 850.0
)

// Config carries the scaling parameters of a scorecard. The zero value of
// each numeric field selects the published default, so Config{} is a valid
// configuration.
type Config struct {
	// TargetScore is the score at which TargetOdds hold.
	TargetScore float64

	// TargetOdds is the event odds (events : non-events) anchored at
	// TargetScore.
	TargetOdds float64

	// PDO is the number of points that double the odds.
	PDO float64

	// ScoreMin and ScoreMax bound the advisory score range. Scores
	// outside the range raise a ScoreRangeWarning but are never clamped.
	ScoreMin float64
	ScoreMax float64

	// Production selects the outlier policy of the embedded lookup
	// transform: false fails on out-of-dictionary values, true drops the
	// offending rows and reports the count.
	Production bool
}

// withDefaults returns the config with zero fields replaced by defaults.
func (c Config) withDefaults() Config {
	if c.TargetScore == 0 {
		c.TargetScore = DefaultTargetScore
	}
	if c.TargetOdds == 0 {
		c.TargetOdds = DefaultTargetOdds
	}
	if c.PDO == 0 {
		c.PDO = DefaultPDO
	}
	if c.ScoreMin == 0 {
		c.ScoreMin = DefaultScoreMin
	}
	if c.ScoreMax == 0 {
		c.ScoreMax = DefaultScoreMax
	}
	return c
}

// validate rejects parameter combinations that make the scaling undefined.
func (c Config) validate() error {
	const op = "scorecard.Config"
	for _, v := range []float64{c.TargetScore, c.TargetOdds, c.PDO, c.ScoreMin, c.ScoreMax} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.NewValueError(op, "scaling parameters must be finite")
		}
	}
	if c.PDO <= 0 {
		return errors.NewValueError(op, fmt.Sprintf("PDO must be positive, got %g", c.PDO))
	}
	if c.TargetOdds <= 0 {
		return errors.NewValueError(op, fmt.Sprintf("target odds must be positive, got %g", c.TargetOdds))
	}
	if c.ScoreMin >= c.ScoreMax {
		return errors.NewValueError(op,
			fmt.Sprintf("score range [%g, %g] is empty", c.ScoreMin, c.ScoreMax))
	}
	return nil
}

// Entry is one row of the published points table: the points a single bin
// of a single feature contributes to the total score.
type Entry struct {
	Feature string  `json:"feature"`
	Label   string  `json:"label"`
	WoE     float64 `json:"woe"`
	Points  float64 `json:"points"`
}

// Scorecard is the derived point-based model. Build it once with Build or
// BuildFromWeights; a built scorecard is immutable and safe for concurrent
// Apply calls. The exported fields survive gob, the derived lookup state is
// rebuilt on Load.
type Scorecard struct {
	state *model.StateManager

	// Factor and Offset are the derived scaling constants.
	Factor float64
	Offset float64

	// Features holds the scored feature names in coefficient order.
	Features []string

	// Coef holds the logistic coefficients aligned with Features.
	Coef []float64

	// Intercept is the logistic intercept.
	Intercept float64

	// Dict is the WoE dictionary the coefficients were fitted against.
	// Held read-only.
	Dict woe.Dict

	// Entries is the full points table, features in coefficient order,
	// bins in dictionary order.
	Entries []Entry

	// Config is the resolved configuration (defaults applied).
	Config Config

	// points mirrors Entries keyed for row lookups:
	// points[feature][binIndex].
	points map[string][]float64
}

// Build derives a scorecard from a WoE dictionary and the coefficients of a
// logistic model fitted on the WoE-coded features. features and coef are
// aligned; the feature set must match the dictionary's keys exactly.
func Build(dict woe.Dict, features []string, coef []float64, intercept float64, cfg Config) (*Scorecard, error) {
	const op = "scorecard.Build"
	if len(dict) == 0 {
		return nil, errors.NewEmptyInputError(op, "dictionary")
	}
	if len(features) == 0 {
		return nil, errors.NewValueError(op, "feature list is empty")
	}
	if len(features) != len(coef) {
		return nil, errors.NewDimensionError(op, len(features), len(coef), 0)
	}
	seen := make(map[string]struct{}, len(features))
	for _, name := range features {
		if _, dup := seen[name]; dup {
			return nil, errors.NewValueError(op, fmt.Sprintf("duplicate feature %q", name))
		}
		seen[name] = struct{}{}
	}

	var missing, extra []string
	for name := range dict {
		if _, ok := seen[name]; !ok {
			missing = append(missing, name)
		}
	}
	for _, name := range features {
		if _, ok := dict[name]; !ok {
			extra = append(extra, name)
		}
	}
	if len(missing) > 0 || len(extra) > 0 {
		sort.Strings(missing)
		sort.Strings(extra)
		return nil, errors.NewCoefficientError(missing, extra)
	}

	if err := errors.CheckNumericalStability(op, coef, -1); err != nil {
		return nil, err
	}
	if err := errors.CheckScalar(op, intercept, -1); err != nil {
		return nil, err
	}

	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	sc := &Scorecard{
		state:     model.NewStateManager(),
		Features:  append([]string(nil), features...),
		Coef:      append([]float64(nil), coef...),
		Intercept: intercept,
		Dict:      dict,
		Config:    cfg,
	}
	sc.derive()
	sc.state.SetDimensions(len(features), 0)
	sc.state.SetFitted()
	return sc, nil
}

// BuildFromWeights derives a scorecard from the ModelWeights hand-off
// artifact: coefficients fitted elsewhere (typically a Python logistic
// regression on the exported WoE dataset) and carried with their feature
// names.
func BuildFromWeights(dict woe.Dict, w *model.ModelWeights, cfg Config) (*Scorecard, error) {
	const op = "scorecard.BuildFromWeights"
	if w == nil {
		return nil, errors.NewValueError(op, "weights are nil")
	}
	if err := w.Validate(); err != nil {
		return nil, errors.Wrap(err, op)
	}
	if !w.IsFitted {
		return nil, errors.NewNotFittedError("ModelWeights", "BuildFromWeights")
	}
	if len(w.Features) == 0 {
		return nil, errors.NewValueError(op, "weights carry no feature names")
	}
	return Build(dict, w.Features, w.Coefficients, w.Intercept, cfg)
}

// BuildFromSource derives a scorecard from any fitted linear model exposing
// the CoefficientSource contract.
func BuildFromSource(dict woe.Dict, src model.CoefficientSource, cfg Config) (*Scorecard, error) {
	const op = "scorecard.BuildFromSource"
	if src == nil {
		return nil, errors.NewValueError(op, "coefficient source is nil")
	}
	return Build(dict, src.FeatureNames(), src.Coef(), src.InterceptValue(), cfg)
}

// derive computes the scaling constants and the points table. The constant
// term Offset + Factor·Intercept is split equally across features, so the
// per-row sum of bin points equals the scaled score.
func (sc *Scorecard) derive() {
	sc.Factor = sc.Config.PDO / math.Ln2
	sc.Offset = sc.Config.TargetScore - sc.Factor*math.Log(sc.Config.TargetOdds)
	constant := (sc.Offset + sc.Factor*sc.Intercept) / float64(len(sc.Features))

	sc.Entries = sc.Entries[:0]
	sc.points = make(map[string][]float64, len(sc.Features))
	for i, name := range sc.Features {
		table := sc.Dict[name]
		pts := make([]float64, len(table.Bins))
		for b, bin := range table.Bins {
			p := sc.Factor*sc.Coef[i]*bin.WoE + constant
			pts[b] = p
			sc.Entries = append(sc.Entries, Entry{
				Feature: name,
				Label:   bin.Label,
				WoE:     bin.WoE,
				Points:  p,
			})
		}
		sc.points[name] = pts
	}
}

// IsFitted reports whether the scorecard has been built.
func (sc *Scorecard) IsFitted() bool {
	return sc.state != nil && sc.state.IsFitted()
}

// Save persists the scorecard to a gob file.
func (sc *Scorecard) Save(path string) error {
	if sc.state == nil || !sc.state.IsFitted() {
		return errors.NewNotFittedError("Scorecard", "Save")
	}
	return model.SaveModel(sc, path)
}

// Load restores a scorecard saved by Save and rebuilds the derived lookup
// state.
func (sc *Scorecard) Load(path string) error {
	if err := model.LoadModel(sc, path); err != nil {
		return err
	}
	sc.derive()
	sc.state = model.NewStateManager()
	sc.state.SetDimensions(len(sc.Features), 0)
	sc.state.SetFitted()
	return nil
}

// GetParams returns the resolved scaling parameters.
func (sc *Scorecard) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"target_score": sc.Config.TargetScore,
		"target_odds":  sc.Config.TargetOdds,
		"pdo":          sc.Config.PDO,
		"score_min":    sc.Config.ScoreMin,
		"score_max":    sc.Config.ScoreMax,
		"production":   sc.Config.Production,
	}
}

// String returns a short description of the scorecard.
func (sc *Scorecard) String() string {
	return fmt.Sprintf("Scorecard(features=[%s], factor=%.4f, offset=%.4f)",
		strings.Join(sc.Features, ", "), sc.Factor, sc.Offset)
}
