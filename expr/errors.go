package expr

import "errors"

var (
	ErrUnsupportedOperator  = errors.New("unsupported operator")
	ErrIndexOutOfRange      = errors.New("index out of range")
	ErrMissingCondition     = errors.New("conditional has no test")
	ErrMissingOperand       = errors.New("missing operand")
	ErrTypeMismatch         = errors.New("type mismatch")
	ErrDivideByZero         = errors.New("integer divide by zero")
	ErrUnresolvedInvocation = errors.New("invocation left in resolved tree")
	ErrUnexpectedNode       = errors.New("unexpected node")
)
