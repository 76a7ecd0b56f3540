package artex

import "strings"

// DefaultMinWords is the word count below which fallback strategies run.
const DefaultMinWords = 800

// DefaultAMPDomains lists publishers whose AMP pages carry more of the
// article than the canonical page.
var DefaultAMPDomains = []string{
	"www.runnersworld.com",
	"www.menshealth.com",
	"www.womenshealthmag.com",
	"www.goodhousekeeping.com",
	"www.prevention.com",
}

// Config controls which strategies and recovery passes run.
// It is read once at process start and shared by all requests.
type Config struct {
	// SafeMode disables every strategy except the primary parser.
	SafeMode bool

	EnableAMP         bool
	EnableReadability bool
	EnableRender      bool

	// MinWords is the score below which fallback strategies are tried.
	MinWords int

	// AMPDomains always try the AMP strategy, regardless of score.
	AMPDomains []string

	RecoverIntro       bool
	RecoverCardHeaders bool

	// SectionBlocks converts div[id^="section-"] wrappers one at a time.
	SectionBlocks bool

	Card CardPattern
}

// DefaultConfig returns the configuration used when no flags are set.
func DefaultConfig() Config {
	return Config{
		EnableAMP:          true,
		EnableReadability:  true,
		MinWords:           DefaultMinWords,
		AMPDomains:         DefaultAMPDomains,
		RecoverIntro:       true,
		RecoverCardHeaders: true,
		SectionBlocks:      true,
		Card:               DefaultCardPattern(),
	}
}

// NeedsAMP reports whether host is on the AMP allow-list.
func (c Config) NeedsAMP(host string) bool {
	for _, d := range c.AMPDomains {
		if strings.EqualFold(strings.TrimSpace(d), host) {
			return true
		}
	}
	return false
}

// Threshold returns MinWords, or DefaultMinWords when unset.
func (c Config) Threshold() int {
	if c.MinWords <= 0 {
		return DefaultMinWords
	}
	return c.MinWords
}
