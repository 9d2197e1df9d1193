package view

import (
	"github.com/cb-innovatekare/hokage/internal/dashboard"
	"github.com/cb-innovatekare/hokage/internal/tui/styles"
)

// LoadingText is shown next to the spinner while teams load.
const LoadingText = "Loading Missions..."

// RetryHint follows an alert or notice for a transient failure.
const RetryHint = "Try again."

// RenderLoading draws the spinner frame and loading text.
func RenderLoading(s *styles.Styles, spinner string) string {
	return s.Spinner.Render(spinner) + " " + LoadingText
}

// RenderAlert draws a failed-mutation banner, or nothing for nil.
func RenderAlert(s *styles.Styles, a *dashboard.Alert) string {
	if a == nil {
		return ""
	}
	text := a.Message
	if a.Detail != "" {
		text += " (" + a.Detail + ")"
	}
	if a.Retryable {
		text += " " + RetryHint
	}
	return s.AlertBanner.Render(text)
}

// RenderNotice draws a transient status line, or nothing when empty.
func RenderNotice(s *styles.Styles, notice string) string {
	if notice == "" {
		return ""
	}
	return s.Notice.Render(notice)
}
