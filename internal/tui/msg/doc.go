// Package msg defines the bubbletea messages the dashboard exchanges and
// the commands that produce them.
//
// Every network call runs inside a tea.Cmd so Update never blocks; the
// outcome comes back as one of the result messages declared here.
package msg
