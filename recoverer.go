package artex

// Recoverer restores content that extraction strategies drop.
// Implementations only prepend to or insert into content; they never
// replace it. Returning content unchanged means nothing was recovered.
type Recoverer interface {
	// Name identifies the recovery pass in logs and metrics.
	Name() string

	// Recover inspects the raw page and returns content with the
	// recovered markup merged in.
	Recover(page *RawPage, content string) (string, error)
}

// Observer receives pipeline outcomes for metrics.
type Observer interface {
	StrategySelected(strategy Strategy)
	RecoveryApplied(name string)
	ExtractionFailed(code string)
}
