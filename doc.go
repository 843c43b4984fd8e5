// Package featsel provides feature selection for tabular regression data in
// Go, built on gonum.
//
// featsel picks the subset of columns that best explains a numeric target.
// Every search engine takes the data as a gonum matrix plus a caller-supplied
// scorer, so any model can drive the selection.
//
// # Engines
//
//   - Forward selection: add the best column each round; stop when the
//     relative improvement drops to 5% or less, or when the score increases.
//   - Recursive feature elimination: drop the column the scorer names as
//     weakest until the requested number remain.
//   - Simulated annealing: random column-mask search with a cooling schedule
//     and an injectable random source.
//   - Variance thresholding: drop columns whose sample variance does not
//     exceed a threshold.
//
// # Installation
//
//	go get github.com/YuminosukeSato/featsel
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/featsel/dataset"
//	    "github.com/YuminosukeSato/featsel/scoring"
//	    "github.com/YuminosukeSato/featsel/selection"
//	)
//
//	func main() {
//	    X, y, err := dataset.MakeRegression(200, 10, 4, 0.1, 42)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    cols, err := selection.ForwardSelection(scoring.ResidualSumOfSquares, X, y, 1, 10)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println("selected:", X.NamesOf(cols))
//	}
//
// # Packages
//
//   - selection: the search engines, Table, options and the Selector wrapper
//   - scoring: ready-made scorers based on linear regression
//   - preprocessing: variance thresholding and standard scaling
//   - dataset: CSV frames and synthetic regression data
//   - linear: ordinary least squares
//   - metrics: regression metrics (RSS, MSE, RMSE, MAE, R²)
//   - report: search trace charts
//   - telemetry: Prometheus metrics for searches
//   - config: CLI configuration (YAML and FEATSEL_* environment variables)
//   - core/model: estimator interfaces and base types
//   - core/parallel: parallel processing utilities
//   - pkg/errors, pkg/log: error types and structured logging
//
// The featsel command in cmd/featsel exposes every engine on CSV files.
//
// # License
//
// featsel is released under the MIT License.
package featsel
