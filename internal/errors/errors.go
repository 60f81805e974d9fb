package errors

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/st/internal/constants"
	"github.com/julianstephens/st/internal/logger"
)

var (
	// ErrUnknownKeyword is returned when a keyword is neither in the catalog nor a control keyword
	ErrUnknownKeyword = errors.New("unknown keyword")
	// ErrDateParse is returned for unrecognized or calendrically invalid dates
	ErrDateParse = errors.New("could not parse date")
	// ErrTimeParse is returned for malformed or out-of-range times of day
	ErrTimeParse = errors.New("invalid time")
	// ErrService marks a failure reported by an external service
	ErrService = errors.New("service error")
	// ErrMissingCredential is returned when no token can be found for a service
	ErrMissingCredential = errors.New("credential not set")
)

// ParseError describes a date or time token that could not be resolved.
type ParseError struct {
	Kind  error
	Input string
	Msg   string
}

func (e *ParseError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return fmt.Sprintf("%v: %s", e.Kind, e.Input)
}

func (e *ParseError) Unwrap() error {
	return e.Kind
}

// NewDateError builds a date ParseError that echoes the accepted formats.
func NewDateError(input string) *ParseError {
	return &ParseError{
		Kind:  ErrDateParse,
		Input: input,
		Msg:   fmt.Sprintf("Could not parse date: %s\n%s", input, constants.DateExamples),
	}
}

// NewTimeError builds a time ParseError for the given token.
func NewTimeError(input string) *ParseError {
	return &ParseError{
		Kind:  ErrTimeParse,
		Input: input,
		Msg:   fmt.Sprintf("Invalid time: %s", input),
	}
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// New returns an error that formats as the given text.
func New(text string) error {
	return errors.New(text)
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs an error and exits the program with exit code 1.
// Parse errors are printed as-is since their message is already user facing.
func Fatal(err error) {
	if err == nil {
		return
	}
	logger.Error("Command execution failed", "error", err)
	var perr *ParseError
	if errors.As(err, &perr) || errors.Is(err, ErrUnknownKeyword) {
		fmt.Fprintln(os.Stderr, err.Error())
	} else {
		fmt.Fprintln(os.Stderr, Format(err))
	}
	os.Exit(1)
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
