package config

import (
	"fmt"
	"slices"
	"strings"
)

// ValidationError represents a single invalid config field.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d validation errors:\n", len(e))
	for i, err := range e {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, err.Error())
	}
	return sb.String()
}

func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// Validate returns every validation failure found in c.
func (c *Config) Validate() []ValidationError {
	var errs []ValidationError

	errs = append(errs, c.validateRun()...)
	errs = append(errs, c.validateProvider()...)
	errs = append(errs, c.validateAgents()...)
	errs = append(errs, c.validateTask()...)

	if !slices.Contains(ValidLogLevels(), strings.ToLower(c.Log.Level)) {
		errs = append(errs, ValidationError{
			Field:   "log.level",
			Value:   c.Log.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	return errs
}

func (c *Config) validateRun() []ValidationError {
	var errs []ValidationError

	positive := []struct {
		field string
		value int
	}{
		{"run.turns", c.Run.Turns},
		{"run.context_window", c.Run.ContextWindow},
		{"run.max_tokens", c.Run.MaxTokens},
	}
	for _, p := range positive {
		if p.value <= 0 {
			errs = append(errs, ValidationError{Field: p.field, Value: p.value, Message: "must be positive"})
		}
	}

	if c.Run.StatusEvery < 0 {
		errs = append(errs, ValidationError{Field: "run.status_every", Value: c.Run.StatusEvery, Message: "must be non-negative"})
	}
	if c.Run.Pause < 0 {
		errs = append(errs, ValidationError{Field: "run.pause", Value: c.Run.Pause, Message: "must be non-negative"})
	}
	if c.Run.LongPause < 0 {
		errs = append(errs, ValidationError{Field: "run.long_pause", Value: c.Run.LongPause, Message: "must be non-negative"})
	}

	return errs
}

func (c *Config) validateProvider() []ValidationError {
	var errs []ValidationError

	if strings.TrimSpace(c.Provider.BaseURL) == "" {
		errs = append(errs, ValidationError{Field: "provider.base_url", Value: c.Provider.BaseURL, Message: "must not be empty"})
	}
	if c.Provider.Timeout <= 0 {
		errs = append(errs, ValidationError{Field: "provider.timeout", Value: c.Provider.Timeout, Message: "must be positive"})
	}

	return errs
}

func (c *Config) validateAgents() []ValidationError {
	var errs []ValidationError

	if len(c.Agents) == 0 {
		return []ValidationError{{Field: "agents", Value: 0, Message: "at least one agent is required"}}
	}

	seen := make(map[string]struct{}, len(c.Agents))
	for i, agent := range c.Agents {
		prefix := fmt.Sprintf("agents[%d]", i)
		if strings.TrimSpace(agent.ID) == "" {
			errs = append(errs, ValidationError{Field: prefix + ".id", Value: agent.ID, Message: "must not be empty"})
		} else if _, dup := seen[agent.ID]; dup {
			errs = append(errs, ValidationError{Field: prefix + ".id", Value: agent.ID, Message: "must be unique"})
		}
		seen[agent.ID] = struct{}{}

		if strings.TrimSpace(agent.Model) == "" {
			errs = append(errs, ValidationError{Field: prefix + ".model", Value: agent.Model, Message: "must not be empty"})
		}
		if agent.Temperature < 0 || agent.Temperature > 2 {
			errs = append(errs, ValidationError{Field: prefix + ".temperature", Value: agent.Temperature, Message: "must be between 0 and 2"})
		}
	}

	return errs
}

func (c *Config) validateTask() []ValidationError {
	if len(c.Task.Courses) == 0 {
		return []ValidationError{{Field: "task.courses", Value: 0, Message: "at least one course is required"}}
	}
	return nil
}
