// Package scorego provides Weight-of-Evidence binning, Information-Value
// analysis, and point-based scorecard scaling for Go, designed for credit
// risk and other binary-outcome scoring applications.
//
// ScoreGo offers a scikit-learn-like fit/transform API so that teams used
// to Python's scorecard tooling can build the same workflows in Go: bin a
// feature against a binary target, re-code datasets into WoE values, and
// scale a fitted linear model into an interpretable points table.
//
// # Features
//
// - WoE/IV Engine: discrete and continuous binning with safety limits
// - Lookup Transformer: deterministic bin-lookup WoE coding with a
// development (fail-fast) and a production (drop-and-report) outlier policy
// - Scorecard Scaling: PDO-based log-odds-to-points transform with an
// additive per-bin points table
// - Robust Error Handling: structured error types with stack traces
// - CPU-Parallel: row-chunk parallelism for large datasets
//
// # Installation
//
// Install ScoreGo using go get:
//
//	go get github.com/YuminosukeSato/scorego
//
// # Quick Start
//
// Binning one discrete feature and reading its Information Value:
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//	    "github.com/YuminosukeSato/scorego/woe"
//	)
//
//	func main() {
//	    values := []string{"Single", "Single", "Married", "Married"}
//	    target := []float64{1, 0, 0, 0}
//
//	    table, err := woe.Discrete("marital_status", values, target, true, 0)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    fmt.Printf("IV = %.4f (%s)\n", table.IV, table.Strength)
//	    for _, bin := range table.Bins {
//	        fmt.Printf("  %-8s woe=%+.4f\n", bin.Label, bin.WoE)
//	    }
//	}
//
// # Packages
//
// The library is organized into several packages:
//
//   - woe: Bin tables, WoE/IV computation, the lookup Encoder
//   - scorecard: points-table derivation and dataset scoring
//   - frame: the in-memory tabular data model shared by all engines
//   - metrics: scorecard quality metrics (AUC, KS, Gini)
//   - report: text tables and plots for bin tables and scorecards
//   - pipeline: ordered named-step runner for scorecard workflows
//   - core/model: estimator base, model-weights artifact, persistence
//   - core/parallel: parallel processing utilities
//
// # Scorecard Workflow
//
// The three engines hand off a single artifact, the WoE dictionary:
//
//	// 1. Fit bins per feature -> woe.Dict
//	enc := woe.NewEncoder(specs...)
//	err := enc.Fit(train, target)
//
//	// 2. Re-code any dataset into WoE values
//	res, err := enc.Transform(test)
//
//	// 3. Scale an externally fitted linear model into points
//	card, err := scorecard.Build(enc.Dict(), features, coef, intercept, cfg)
//	scored, err := card.Apply(test)
//
// # Performance
//
// ScoreGo parallelizes row-wise work automatically:
//
//   - Automatic parallelization for datasets with >1000 rows
//   - CPU core detection and optimal worker allocation
//   - Bit-identical output regardless of worker count
//
// # Contributing
//
// Contributions are welcome! Please see our GitHub repository:
// https://github.com/YuminosukeSato/scorego
//
// # License
//
// ScoreGo is released under the MIT License.
package scorego
