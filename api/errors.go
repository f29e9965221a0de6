package api

import (
	"fmt"
	"strings"
)

// DuplicateNameError is returned when an adapter name is registered twice.
type DuplicateNameError struct {
	Name string
}

func (d *DuplicateNameError) Error() string {
	return fmt.Sprintf("adapter %q is already registered", d.Name)
}

// MissingContextError is returned when a command placeholder has no value in the lint context.
type MissingContextError struct {
	Adapter     string
	Placeholder string
}

func (m *MissingContextError) Error() string {
	return fmt.Sprintf("adapter %s requires ${%s} but the lint context does not provide it", m.Adapter, m.Placeholder)
}

// InvalidAdapterError describes one broken adapter invariant.
type InvalidAdapterError struct {
	Adapter string
	Reason  string
}

func (i *InvalidAdapterError) Error() string {
	if i.Adapter == "" {
		return "invalid adapter: " + i.Reason
	}
	return fmt.Sprintf("invalid adapter %s: %s", i.Adapter, i.Reason)
}

// UnknownAdapterError is returned when looking up an adapter that is not registered.
type UnknownAdapterError struct {
	Name        string
	Suggestions []string
}

func (u *UnknownAdapterError) Error() string {
	msg := fmt.Sprintf("unknown adapter %q", u.Name)
	if len(u.Suggestions) > 0 {
		msg += ", maybe you meant " + strings.Join(u.Suggestions, " or ") + "?"
	}
	return msg
}
