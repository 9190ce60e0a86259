package errors

import "fmt"

type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func New(code, message string, cause ...error) *AppError {
	var c error
	if len(cause) > 0 {
		c = cause[0]
	}
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   c,
	}
}

var (
	ErrMedicationNotFound = &AppError{Code: "MED_001", Message: "medication not found"}
	ErrInvalidDosage      = &AppError{Code: "MED_002", Message: "dosage must be a finite positive number"}
	ErrInvalidInventory   = &AppError{Code: "MED_003", Message: "inventory must be a non-negative integer"}

	ErrMalformedTime = &AppError{Code: "TIME_001", Message: "time must be a zero-padded HH:MM string"}

	ErrInvalidDoseStatus = &AppError{Code: "DOSE_001", Message: "dose status must be taken or skipped"}

	ErrStorageUnavailable = &AppError{Code: "STORE_001", Message: "backing store unavailable"}
	ErrStorageCorrupted   = &AppError{Code: "STORE_002", Message: "stored document corrupted"}

	ErrSyncDisabled = &AppError{Code: "SYNC_001", Message: "calendar sync is disabled"}

	ErrNotFound   = &AppError{Code: "GEN_001", Message: "resource not found"}
	ErrBadRequest = &AppError{Code: "GEN_002", Message: "bad request"}
	ErrInternal   = &AppError{Code: "GEN_003", Message: "internal error"}
)

func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

func GetCode(err error) string {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return "UNKNOWN"
}

func Wrap(err error, code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}
