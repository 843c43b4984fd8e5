package model

import "testing"

func TestBaseEstimatorState(t *testing.T) {
	var e BaseEstimator
	if e.IsFitted() {
		t.Fatal("zero value should not be fitted")
	}
	e.SetFitted()
	if !e.IsFitted() {
		t.Fatal("SetFitted should mark the estimator as fitted")
	}
	e.Reset()
	if e.IsFitted() {
		t.Fatal("Reset should clear the fitted state")
	}
}
