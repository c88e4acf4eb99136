package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Runtime failure (monitor write failure, browser crash)
	ExitCommandError = 2 // Command error (invalid flags, database cannot be opened or read)
)

// ExitError represents an error with a specific exit code.
// Use this to return errors with meaningful exit codes from CLI commands.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitSuccess for nil and ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// Error codes carried in structured error responses.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeStorageOpen = "E002" // History database cannot be opened
	ErrCodeStorageRead = "E003" // History database cannot be read
)

var errorColor = color.New(color.FgRed, color.Bold)

// PrintError writes err to w. The headline is red unless color is disabled
// (NO_COLOR, or stdout is not a terminal).
func PrintError(w io.Writer, err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Err != nil {
		errorColor.Fprintf(w, "Error: %s\n", exitErr.Message)
		fmt.Fprintf(w, "  %v\n", exitErr.Err)
		return
	}
	errorColor.Fprintf(w, "Error: %v\n", err)
}

// OutputFormatter handles text, JSON and YAML output for CLI commands.
type OutputFormatter struct {
	Format string
	Writer io.Writer
}

// CLIResponse is the standard structured response envelope.
type CLIResponse struct {
	Status string    `json:"status" yaml:"status"`                   // "ok" or "error"
	Data   any       `json:"data,omitempty" yaml:"data,omitempty"`   // success payload
	Error  *CLIError `json:"error,omitempty" yaml:"error,omitempty"` // error details
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string `json:"code" yaml:"code"`       // "E001", "E002", etc.
	Message string `json:"message" yaml:"message"` // human-readable message
}

// Success outputs a successful result in the configured format.
func (f *OutputFormatter) Success(data any) error {
	return f.encode(CLIResponse{Status: "ok", Data: data}, data)
}

// Error outputs an error in the configured format.
func (f *OutputFormatter) Error(code, message string) error {
	return f.encode(CLIResponse{
		Status: "error",
		Error:  &CLIError{Code: code, Message: message},
	}, fmt.Sprintf("Error [%s]: %s", code, message))
}

func (f *OutputFormatter) encode(resp CLIResponse, text any) error {
	switch f.Format {
	case "json":
		return json.NewEncoder(f.Writer).Encode(resp)
	case "yaml":
		enc := yaml.NewEncoder(f.Writer)
		enc.SetIndent(2)
		if err := enc.Encode(resp); err != nil {
			return err
		}
		return enc.Close()
	default:
		_, err := fmt.Fprintln(f.Writer, text)
		return err
	}
}
