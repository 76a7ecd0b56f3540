package mock

import "github.com/fwojciec/artex"

var _ artex.Recoverer = (*Recoverer)(nil)

// Recoverer is a mock implementation of artex.Recoverer.
type Recoverer struct {
	NameFn    func() string
	RecoverFn func(page *artex.RawPage, content string) (string, error)
}

func (r *Recoverer) Name() string {
	return r.NameFn()
}

func (r *Recoverer) Recover(page *artex.RawPage, content string) (string, error) {
	return r.RecoverFn(page, content)
}

var _ artex.Observer = (*Observer)(nil)

// Observer is a mock implementation of artex.Observer.
type Observer struct {
	StrategySelectedFn func(strategy artex.Strategy)
	RecoveryAppliedFn  func(name string)
	ExtractionFailedFn func(code string)
}

func (o *Observer) StrategySelected(strategy artex.Strategy) {
	o.StrategySelectedFn(strategy)
}

func (o *Observer) RecoveryApplied(name string) {
	o.RecoveryAppliedFn(name)
}

func (o *Observer) ExtractionFailed(code string) {
	o.ExtractionFailedFn(code)
}
