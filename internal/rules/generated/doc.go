// Package generated implements rules that read the Python code compiled
// from a template.
//
// Findings carry generated line numbers; the linter reconciles them to
// template lines afterwards.
package generated
