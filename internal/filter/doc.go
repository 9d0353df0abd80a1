// Package filter builds the pip requirements list from a parsed manifest.
//
// The base dependencies and the requested optional-dependency groups are
// concatenated in order, entries whose normalized key is in the
// [ExclusionSet] are dropped, and the remainder is deduplicated by key with
// the first occurrence kept. Every dropped entry is reported in the
// [Result] together with the reason it was dropped.
package filter
