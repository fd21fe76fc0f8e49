package report

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownFormat            = errors.New("unknown report format")
	ErrInvalidPeriod            = errors.New("invalid report period")
	ErrReportEmailNotConfigured = errors.New("report email recipient not configured")
)

// UnknownEmployeeError is returned when punch events reference an employee
// that the directory does not know.
type UnknownEmployeeError struct {
	EmployeeID uint
}

func (e *UnknownEmployeeError) Error() string {
	return fmt.Sprintf("unknown employee %d", e.EmployeeID)
}

// StorageError wraps a failed store call. The original error is kept as is.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

type EncodingKind string

const (
	KindPDFEngineUnavailable EncodingKind = "pdf-engine-unavailable"
	KindGeneric              EncodingKind = "generic"
)

// EncodingError reports a failed serialization of a built report.
type EncodingError struct {
	Kind   EncodingKind
	Format Format
	Err    error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("encode %s report (%s): %v", e.Format, e.Kind, e.Err)
}

func (e *EncodingError) Unwrap() error { return e.Err }

// EmailDeliveryError means the report was built but could not be sent.
type EmailDeliveryError struct {
	To  string
	Err error
}

func (e *EmailDeliveryError) Error() string {
	return fmt.Sprintf("deliver report to %s: %v", e.To, e.Err)
}

func (e *EmailDeliveryError) Unwrap() error { return e.Err }
