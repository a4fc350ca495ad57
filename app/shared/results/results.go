// Package results defines the operation result envelope returned by every
// service operation. Success and Failure carry event payloads; Error is the
// infrastructure error when the operation could not run at all.
package results

// OperationResult distinguishes business-rule rejections (Failure payload,
// nil error) from infrastructure faults (non-nil error).
type OperationResult struct {
	Success any
	Failure any
	Error   error
}

// SuccessResult wraps a success payload.
func SuccessResult(payload any) OperationResult {
	return OperationResult{Success: payload}
}

// FailureResult wraps a business failure payload together with the error
// that caused it.
func FailureResult(payload any, err error) OperationResult {
	return OperationResult{Failure: payload, Error: err}
}
