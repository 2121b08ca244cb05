package executor

import (
	"context"
	"errors"
	"fmt"
	"net"
	"regexp"
	"syscall"

	"github.com/symflow/symflow/engine/schema"
)

// -----------------------------------------------------------------------------
// Category
// -----------------------------------------------------------------------------

// Category classifies a failure. Precedence, highest first: timeout,
// validation, network, execution, system.
type Category string

const (
	CategoryValidation Category = "validation"
	CategoryTimeout    Category = "timeout"
	CategoryNetwork    Category = "network"
	CategoryExecution  Category = "execution"
	CategorySystem     Category = "system"
)

func (c Category) String() string {
	return string(c)
}

// -----------------------------------------------------------------------------
// TaskError
// -----------------------------------------------------------------------------

// TaskError is the classified error surfaced to callers. It carries the
// failing task's name, the assigned category, and the original cause.
type TaskError struct {
	Task     string
	Category Category
	Message  string
	cause    error
}

func NewTaskError(taskName string, category Category, err error) *TaskError {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	return &TaskError{
		Task:     taskName,
		Category: category,
		Message:  msg,
		cause:    err,
	}
}

func (e *TaskError) Error() string {
	return fmt.Sprintf("task %q failed (%s): %s", e.Task, e.Category, e.Message)
}

func (e *TaskError) Unwrap() error {
	return e.cause
}

// -----------------------------------------------------------------------------
// Classification
// -----------------------------------------------------------------------------

var networkErrorPattern = regexp.MustCompile(
	`(?i)(connection refused|connection reset|no such host|network is unreachable|i/o timeout|broken pipe|dns failure)`,
)

// transientConditionPattern recognizes the fixed set of transient conditions
// that make an execution or system failure worth retrying.
var transientConditionPattern = regexp.MustCompile(
	`(?i)(temporarily unavailable|try again|rate limit|too many requests|service unavailable|resource busy)`,
)

// Classify maps any failure into exactly one category. A wrapped error is
// classified by its cause, except that an outer timeout or validation tag is
// never overridden.
func Classify(err error) Category {
	if err == nil {
		return CategorySystem
	}
	var taskErr *TaskError
	if errors.As(err, &taskErr) {
		if taskErr.Category == CategoryTimeout || taskErr.Category == CategoryValidation {
			return taskErr.Category
		}
		if cause := taskErr.Unwrap(); cause != nil {
			return classifyCause(cause)
		}
		return taskErr.Category
	}
	return classifyCause(err)
}

func classifyCause(err error) Category {
	if errors.Is(err, context.DeadlineExceeded) {
		return CategoryTimeout
	}
	var validationErr *schema.ValidationError
	if errors.As(err, &validationErr) {
		return CategoryValidation
	}
	if errors.Is(err, context.Canceled) {
		return CategorySystem
	}
	if isNetworkError(err) {
		return CategoryNetwork
	}
	return CategoryExecution
}

func isNetworkError(err error) bool {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	if errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.EPIPE) {
		return true
	}
	return networkErrorPattern.MatchString(err.Error())
}

// Retryable reports whether a failure is worth another attempt. Network
// failures always are; timeout and validation never are; execution and
// system failures only when they match a known transient condition.
func Retryable(err error) bool {
	if err == nil {
		return false
	}
	switch Classify(err) {
	case CategoryNetwork:
		return true
	case CategoryTimeout, CategoryValidation:
		return false
	default:
		return transientConditionPattern.MatchString(err.Error())
	}
}
