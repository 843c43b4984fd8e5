// Package selection implements search heuristics that choose a subset of the
// columns of a tabular dataset for a supervised-learning task.
//
// Three engines are provided:
//
//   - ForwardSelection grows a feature set one column at a time.
//   - RecursiveFeatureElimination removes the weakest column until the
//     requested number is left.
//   - SimulatedAnnealing explores random feature masks.
//
// Engines never train models themselves. Quality is judged by a caller
// supplied ScoreFn (lower is better) or, for elimination, a WeakestColumnFn
// that names the column to drop. The scoring package has ready-made scorers
// built on least-squares regression.
//
// All engines take X as a mat.Matrix. A *Table carries column names that are
// preserved through the search; any other matrix gets positional names.
//
// Example:
//
//	X, y, err := dataset.MakeRegression(200, 10, 4, 0.1, 42)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	cols, err := selection.ForwardSelection(scoring.ResidualSumOfSquares, X, y, 1, 5)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Engines are synchronous and keep no state between calls. Each call owns
// its random source, score cache and trace.
package selection
