// Package view renders the dashboard. Every function is pure: it takes
// the styles plus the state to draw and returns a string, so rendering is
// testable without a running program.
package view
