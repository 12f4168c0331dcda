// Package search ranks collection items against free-text queries.
//
// Matching is case-insensitive and weighted per field: a hit on a release
// title outranks the same hit on a genre tag. Exact, prefix, and substring
// hits score highest; everything else falls back to Jaro-Winkler similarity
// with a configurable cutoff so typos still match. Blank queries leave the
// input untouched.
package search
