package gateway

import (
	"errors"
	"fmt"
	"strings"
)

// ConfigurationError reports that a gateway rejected a flag set.
type ConfigurationError struct {
	// Flags is the full set that was rejected.
	Flags Flags
	// Unknown lists unrecognized flags, if that was the reason.
	Unknown Flags
	// Err is the engine's own reason, if it gave one.
	Err error
}

func (e *ConfigurationError) Error() string {
	var b strings.Builder
	b.WriteString("configuration rejected")
	if len(e.Unknown) > 0 {
		fmt.Fprintf(&b, ": unknown flags [%s]", strings.Join(e.Unknown.Strings(), " "))
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// IsConfigurationError reports whether err is a ConfigurationError.
func IsConfigurationError(err error) bool {
	var cfgErr *ConfigurationError
	return errors.As(err, &cfgErr)
}

// ProtocolError reports a transport or framing failure talking to an engine.
type ProtocolError struct {
	Op  Op
	Err error
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("engine %s: %v", e.Op, e.Err)
}

func (e *ProtocolError) Unwrap() error {
	return e.Err
}

// IsProtocolError reports whether err is a ProtocolError.
func IsProtocolError(err error) bool {
	var protoErr *ProtocolError
	return errors.As(err, &protoErr)
}
