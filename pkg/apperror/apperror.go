package apperror

import (
	"errors"
	"fmt"
)

// ErrorCode classifies a pipeline failure.
type ErrorCode int

const (
	CodeUnknown ErrorCode = iota
	CodeFileNotFound
	CodeParse
	CodeAuthentication
	CodeNetwork
	CodeMalformedResponse
	CodeFormat
	CodeIO
)

var codeNames = map[ErrorCode]string{
	CodeUnknown:           "UNKNOWN",
	CodeFileNotFound:      "FILE_NOT_FOUND",
	CodeParse:             "PARSE_ERROR",
	CodeAuthentication:    "AUTHENTICATION",
	CodeNetwork:           "NETWORK",
	CodeMalformedResponse: "MALFORMED_RESPONSE",
	CodeFormat:            "FORMAT",
	CodeIO:                "IO",
}

func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("ErrorCode(%d)", int(c))
}

// AppError is the error type returned by every pipeline stage.
type AppError struct {
	Raw     error
	Code    ErrorCode
	Message string
	Details map[string]string
}

// Error implements error interface
func (e AppError) Error() string {
	if e.Raw != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Raw)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e AppError) Unwrap() error {
	return e.Raw
}

// WithDetail adds a detail to the error
func (e AppError) WithDetail(key, value string) AppError {
	details := make(map[string]string, len(e.Details)+1)
	for k, v := range e.Details {
		details[k] = v
	}
	details[key] = value
	e.Details = details
	return e
}

// Transcript errors

func ErrFileNotFound(path string, err error) AppError {
	return AppError{
		Raw:     err,
		Code:    CodeFileNotFound,
		Message: "Transcript file not found",
	}.WithDetail("path", path)
}

func ErrParse(path string, err error) AppError {
	return AppError{
		Raw:     err,
		Code:    CodeParse,
		Message: "Failed to parse transcript document",
	}.WithDetail("path", path)
}

// Completion service errors

func ErrAuthentication(provider string, err error) AppError {
	return AppError{
		Raw:     err,
		Code:    CodeAuthentication,
		Message: "Completion service rejected or is missing the API credential",
	}.WithDetail("provider", provider)
}

func ErrNetwork(provider string, err error) AppError {
	return AppError{
		Raw:     err,
		Code:    CodeNetwork,
		Message: "Completion service request failed",
	}.WithDetail("provider", provider)
}

func ErrMalformedResponse(reason string, err error) AppError {
	return AppError{
		Raw:     err,
		Code:    CodeMalformedResponse,
		Message: fmt.Sprintf("Malformed completion response: %s", reason),
	}
}

// Store errors

func ErrFormat(path string, err error) AppError {
	return AppError{
		Raw:     err,
		Code:    CodeFormat,
		Message: "Existing store is not a readable workbook",
	}.WithDetail("path", path)
}

func ErrIO(operation, path string, err error) AppError {
	return AppError{
		Raw:     err,
		Code:    CodeIO,
		Message: fmt.Sprintf("Store %s failed", operation),
	}.WithDetail("path", path)
}

// CodeOf returns the code of the first AppError in err's chain.
func CodeOf(err error) ErrorCode {
	var appErr AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeUnknown
}

func IsCode(err error, code ErrorCode) bool {
	return err != nil && CodeOf(err) == code
}

// ExitCode maps err to a process exit status. Unclassified errors exit 1.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	code := CodeOf(err)
	if code == CodeUnknown {
		return 1
	}
	return int(code) + 1
}
