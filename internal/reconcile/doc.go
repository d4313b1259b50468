// Package reconcile maps line numbers in Python generated from a Cheetah
// template back to lines of the template.
//
// The compiler annotates some generated lines with provenance comments such
// as "# generated from line 12, col 5". A line carrying one resolves
// directly. Other lines are matched fuzzily against the template, but only
// inside the window bounded by the nearest annotated lines above and below.
//
// All functions take [sourcemap.Lines], so indices are 1-based line numbers
// and index 0 is an empty sentinel.
package reconcile
