// Package errscrape extracts error-code catalogues published by advertising
// API providers. It fetches each provider's reference page, walks the markup
// with a layout-specific strategy, normalizes the (code, message) pairs and
// writes them to an output sink, one output per logical group plus a
// combined "all_dump" output.
//
// This package contains domain types, pure extraction helpers and interfaces
// following Ben Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., goquery/,
// sqlite/, excelize/).
package errscrape
