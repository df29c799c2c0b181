package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/kyrinjs/Kyrin/core/handler"
)

// PanicError gives error handlers access to the original panic value and the
// stack captured at the panic point.
type PanicError interface {
	error
	Value() any
	Stack() []byte
}

type panicError struct {
	value any
	stack []byte
}

func (e *panicError) Error() string {
	return fmt.Sprintf("panic: %v", e.value)
}

func (e *panicError) Value() any {
	return e.value
}

func (e *panicError) Stack() []byte {
	return e.stack
}

func (e *panicError) Unwrap() error {
	if err, ok := e.value.(error); ok {
		return err
	}
	return nil
}

// Recover converts panics from deeper chain links into errors carrying the
// stack trace. The dispatcher has its own outer net, but recovering here
// keeps outer middleware (logging in particular) on the unwind path.
func Recover() handler.Middleware {
	return func(ctx *handler.Context, next handler.Next) (res any, err error) {
		defer func() {
			if p := recover(); p != nil {
				res = nil
				err = &panicError{value: p, stack: debug.Stack()}
			}
		}()
		return next()
	}
}
