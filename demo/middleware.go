package demo

import (
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-router"
)

const headerMessageKey = "demo.header_message"

// CustomHeader copies the named request header into locals. A missing
// header stops the chain with a bad request.
func CustomHeader(name string) router.MiddlewareFunc {
	return func(next router.HandlerFunc) router.HandlerFunc {
		return func(ctx router.Context) error {
			msg := ctx.Header(name)
			if msg == "" {
				return errors.New("missing header "+name, errors.CategoryBadInput).
					WithCode(errors.CodeBadRequest).
					WithTextCode("MISSING_HEADER")
			}

			ctx.Locals(headerMessageKey, msg)
			return next(ctx)
		}
	}
}
