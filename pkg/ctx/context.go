// Package ctx provides the request context handed to controllers.
//
// Instead of (http.ResponseWriter, *http.Request), a controller receives a
// *Context with helpers for params, binding and responses:
//
//	func (pc *ProductController) Destroy(c *ctx.Context) {
//	    id, ok := c.ParamID("id")
//	    if !ok {
//	        return // 422 already sent
//	    }
//	    ...
//	}
//
//	router.Delete("/deleteProduct/{id}", "products.destroy", ctx.Wrap(pc.Destroy))
package ctx

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/stockroom/config"
	"github.com/shashiranjanraj/stockroom/pkg/apperr"
	"github.com/shashiranjanraj/stockroom/pkg/auth"
	"github.com/shashiranjanraj/stockroom/pkg/bind"
	"github.com/shashiranjanraj/stockroom/pkg/logger"
	"github.com/shashiranjanraj/stockroom/pkg/response"
	"github.com/shashiranjanraj/stockroom/pkg/validate"
)

// HandlerFunc is the controller signature.
type HandlerFunc func(c *Context)

// Wrap adapts a HandlerFunc to http.HandlerFunc.
func Wrap(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := acquire(w, r)
		defer release(c)
		h(c)
	}
}

// Context wraps one request/response pair.
type Context struct {
	W      http.ResponseWriter
	R      *http.Request
	status int
}

var pool = sync.Pool{
	New: func() any { return &Context{} },
}

func acquire(w http.ResponseWriter, r *http.Request) *Context {
	c := pool.Get().(*Context)
	c.W, c.R, c.status = w, r, 0
	return c
}

func release(c *Context) {
	c.W, c.R = nil, nil
	pool.Put(c)
}

// ─── Request ─────────────────────────────────────────────────────────────────

// Context returns the request context.
func (c *Context) Context() context.Context { return c.R.Context() }

// Logger returns the request-scoped logger.
func (c *Context) Logger() *slog.Logger { return logger.WithCtx(c.R.Context()) }

// Subject returns the identity set by the auth middleware.
func (c *Context) Subject() string {
	s, _ := auth.SubjectFrom(c.R.Context())
	return s
}

// Param returns a URL path parameter.
func (c *Context) Param(key string) string {
	return chi.URLParam(c.R, key)
}

// ParamID parses a positive integer path parameter. On failure it sends a
// 422 and returns false.
func (c *Context) ParamID(key string) (uint, bool) {
	raw := c.Param(key)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		c.ValidationError(validate.Issues{{
			Loc:  []string{"path", key},
			Msg:  fmt.Sprintf("The %s must be a positive integer.", key),
			Type: "int_parsing",
		}})
		return 0, false
	}
	return uint(id), true
}

// BindJSON decodes and validates the body into dest. On failure it sends the
// response (422, or 413 for oversized bodies) and returns false.
func (c *Context) BindJSON(dest any) bool {
	issues, err := bind.JSON(c.W, c.R, dest, config.MaxBodyBytes())
	if err != nil {
		if errors.Is(err, bind.ErrTooLarge) {
			c.Error(http.StatusRequestEntityTooLarge, "Request body too large")
			return false
		}
		c.Error(http.StatusBadRequest, err.Error())
		return false
	}
	if validate.HasErrors(issues) {
		c.ValidationError(issues)
		return false
	}
	return true
}

// BindForm fills dest from form values and validates it. Sends 422 on failure.
func (c *Context) BindForm(dest any) bool {
	if issues := bind.Form(c.R, dest); validate.HasErrors(issues) {
		c.ValidationError(issues)
		return false
	}
	return true
}

// ─── Response ────────────────────────────────────────────────────────────────

// JSON writes v with the given status.
func (c *Context) JSON(code int, v any) {
	c.status = code
	response.JSON(c.W, code, v)
}

// OK writes a 200.
func (c *Context) OK(v any) { c.JSON(http.StatusOK, v) }

// Created writes a 201.
func (c *Context) Created(v any) { c.JSON(http.StatusCreated, v) }

// Error writes {"detail": message}.
func (c *Context) Error(code int, message string) {
	c.status = code
	response.Error(c.W, code, message)
}

// ValidationError writes a 422.
func (c *Context) ValidationError(issues validate.Issues) {
	c.status = http.StatusUnprocessableEntity
	response.ValidationError(c.W, issues)
}

// Fail maps err onto a response. Internal errors are logged with their cause
// and reported with a fixed message.
func (c *Context) Fail(err error) {
	ae := apperr.From(err)
	status := apperr.HTTPStatus(ae.Code)
	if status >= http.StatusInternalServerError {
		c.Logger().Error("request failed",
			"method", c.R.Method,
			"path", c.R.URL.Path,
			"error", err.Error(),
		)
	}
	c.Error(status, ae.Message)
}

// WrittenStatus is the status sent so far, or 0.
func (c *Context) WrittenStatus() int { return c.status }
