// Package errors provides structured error handling for admin template actions.
package errors

import "net/http"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Request construction errors
	CodeObjectIDRequired       Code = "OBJECT_ID_REQUIRED"
	CodeInvalidRequest         Code = "INVALID_REQUEST"
	CodeDependencyRowsMismatch Code = "DEPENDENCY_ROWS_MISMATCH"
	CodePageElementMissing     Code = "PAGE_ELEMENT_MISSING"

	// Exchange errors
	CodeTransport    Code = "TRANSPORT"
	CodeRejected     Code = "REJECTED"
	CodeUnauthorized Code = "UNAUTHORIZED"
	CodeNotFound     Code = "NOT_FOUND"
	CodeServerFault  Code = "SERVER_FAULT"

	// CodeUnexpectedResponse is a 2xx answer whose body is not what the
	// operation expects.
	CodeUnexpectedResponse Code = "UNEXPECTED_RESPONSE"
)

// CodeForStatus maps a non-2xx HTTP status returned by the console to a code.
func CodeForStatus(status int) Code {
	switch {
	case status >= 200 && status < 300:
		return ""
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return CodeUnauthorized
	case status == http.StatusNotFound:
		return CodeNotFound
	case status >= 500:
		return CodeServerFault
	case status >= 400:
		return CodeRejected
	default:
		return CodeUnknown
	}
}

// Local reports whether the code describes a failure detected before any
// request was sent.
func (c Code) Local() bool {
	switch c {
	case CodeObjectIDRequired, CodeInvalidRequest, CodeDependencyRowsMismatch, CodePageElementMissing:
		return true
	default:
		return false
	}
}
