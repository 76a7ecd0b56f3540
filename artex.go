// Package artex extracts the readable main content of article pages.
// It picks the richest of several extraction strategies, recovers the lede
// and review-card headers that generic extractors tend to drop, and
// reduces the result to plain text that keeps prices and badges.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, trafilatura/, rod/).
package artex
