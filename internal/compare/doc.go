// Package compare diffs the result sets of two platforms by test case name
// and renders the difference report.
package compare
