// Package probe runs the two workflows of the tool: generating result
// records for the sample catalog on this platform, and comparing the stored
// results of two platforms.
package probe
