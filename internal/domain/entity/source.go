package entity

// Source tags the provenance of a record list. It is a diagnostic marker
// for developers and is never interpreted by consumers beyond display.
type Source string

const (
	// SourceLive marks data fetched from a provider's REST API.
	SourceLive Source = "live"
	// SourceScraped marks data parsed out of a provider's HTML page.
	SourceScraped Source = "scraped"
	// SourceMock marks the hand-authored fallback dataset.
	SourceMock Source = "mock"
)
