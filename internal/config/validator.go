package config

import (
	"fmt"
	"net/url"
	"slices"
	"strings"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "api.base_url")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validateAPI()...)
	errors = append(errors, c.validateRealtime()...)
	errors = append(errors, c.validateDashboard()...)
	errors = append(errors, c.validateLogging()...)

	return errors
}

func (c *Config) validateAPI() []ValidationError {
	var errors []ValidationError

	if msg := checkURL(c.API.BaseURL, "http", "https"); msg != "" {
		errors = append(errors, ValidationError{
			Field:   "api.base_url",
			Value:   c.API.BaseURL,
			Message: msg,
		})
	}

	if c.API.Timeout <= 0 {
		errors = append(errors, ValidationError{
			Field:   "api.timeout",
			Value:   c.API.Timeout,
			Message: "must be positive",
		})
	}

	return errors
}

func (c *Config) validateRealtime() []ValidationError {
	var errors []ValidationError

	if c.Realtime.URL != "" {
		if msg := checkURL(c.Realtime.URL, "http", "https", "ws", "wss"); msg != "" {
			errors = append(errors, ValidationError{
				Field:   "realtime.url",
				Value:   c.Realtime.URL,
				Message: msg,
			})
		}
	}

	if ns := c.Realtime.Namespace; ns != "" && !strings.HasPrefix(ns, "/") {
		errors = append(errors, ValidationError{
			Field:   "realtime.namespace",
			Value:   ns,
			Message: "must start with /",
		})
	}

	if c.Realtime.DialTimeout <= 0 {
		errors = append(errors, ValidationError{
			Field:   "realtime.dial_timeout",
			Value:   c.Realtime.DialTimeout,
			Message: "must be positive",
		})
	}

	return errors
}

func (c *Config) validateDashboard() []ValidationError {
	var errors []ValidationError

	if len(c.Dashboard.Sectors) == 0 {
		errors = append(errors, ValidationError{
			Field:   "dashboard.sectors",
			Value:   c.Dashboard.Sectors,
			Message: "must list at least one sector",
		})
	}

	seen := make(map[string]bool, len(c.Dashboard.Sectors))
	for _, s := range c.Dashboard.Sectors {
		if strings.TrimSpace(s) == "" {
			errors = append(errors, ValidationError{
				Field:   "dashboard.sectors",
				Value:   s,
				Message: "sector codes cannot be blank",
			})
			continue
		}
		if seen[s] {
			errors = append(errors, ValidationError{
				Field:   "dashboard.sectors",
				Value:   s,
				Message: "duplicate sector code",
			})
		}
		seen[s] = true
	}

	if c.Dashboard.DomainOpenLead <= 0 {
		errors = append(errors, ValidationError{
			Field:   "dashboard.domain_open_lead",
			Value:   c.Dashboard.DomainOpenLead,
			Message: "must be positive",
		})
	}

	return errors
}

func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	if c.Logging.Level != "" && !slices.Contains(ValidLogLevels(), strings.ToLower(c.Logging.Level)) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	return errors
}

// checkURL returns an error message, or "" when raw is an absolute URL with one of schemes.
func checkURL(raw string, schemes ...string) string {
	if raw == "" {
		return "cannot be empty"
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Sprintf("not a valid URL: %v", err)
	}
	if !slices.Contains(schemes, u.Scheme) {
		return fmt.Sprintf("scheme must be one of: %s", strings.Join(schemes, ", "))
	}
	if u.Host == "" {
		return "must include a host"
	}
	return ""
}
