// Package template implements rules that read the raw template text.
//
// Every rule reports 1-based template line numbers directly; none of them
// need the compiled Python.
package template
