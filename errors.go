package hydrosim

import "fmt"

// ConfigError fatal pre-loop input rejection. No day runs after one is
// raised.
type ConfigError struct {
	Field string
	Msg   string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("hydrosim: invalid configuration %s: %s", e.Field, e.Msg)
}

// TerminationError fatal setup-time rejection of an unbounded run, raised
// when maturity termination is requested without a safety day cap.
type TerminationError struct{ Msg string }

func (e *TerminationError) Error() string {
	return "hydrosim: " + e.Msg
}
