package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
)

// TestMiddlewaresStacks ensures we get both public and ops middlewares
// stacks with exact number of elements in those stacks.
func TestMiddlewaresStacks(t *testing.T) {
	api, _ := newTestAPIHandler(t, nil)
	pub, ops := api.MiddlewaresStacks()
	assert.Equal(t, 5, len(*pub))
	assert.Equal(t, 4, len(*ops))
}

// TestChain ensures each middleware in the stack is called as well the handler.
func TestChain(t *testing.T) {
	var ca, cb, cc, ch bool
	queue := make(chan int, 4)

	middlewareA := func(next httprouter.Handle) httprouter.Handle {
		return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
			queue <- 1
			ca = true
			next(w, r, ps)
		}
	}
	middlewareB := func(next httprouter.Handle) httprouter.Handle {
		return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
			queue <- 2
			cb = true
			next(w, r, ps)
		}
	}
	middlewareC := func(next httprouter.Handle) httprouter.Handle {
		return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
			queue <- 3
			cc = true
			next(w, r, ps)
		}
	}
	middlewares := Middlewares{
		middlewareA,
		middlewareB,
		middlewareC,
	}

	handler := func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		queue <- 4
		ch = true
	}

	chained := (&middlewares).Chain(handler)
	req := httptest.NewRequest("GET", "/books", nil)
	w := httptest.NewRecorder()
	chained(w, req, nil)

	t.Run("check calling", func(t *testing.T) {
		assert.Equal(t, true, ca)
		assert.Equal(t, true, cb)
		assert.Equal(t, true, cc)
		assert.Equal(t, true, ch)
	})

	t.Run("check ordering", func(t *testing.T) {
		assert.Equal(t, 1, <-queue)
		assert.Equal(t, 2, <-queue)
		assert.Equal(t, 3, <-queue)
		assert.Equal(t, 4, <-queue)
	})
}

// TestRequestsCounterMiddleware ensures the request counter increment.
func TestRequestsCounterMiddleware(t *testing.T) {
	api, _ := newTestAPIHandler(t, nil)
	req := httptest.NewRequest("GET", "/books", nil)
	w := httptest.NewRecorder()
	var num uint64
	handler := func(w http.ResponseWriter, req *http.Request, ps httprouter.Params) {
		num = GetRequestNumberFromContext(req.Context())
	}
	wrapped := api.RequestsCounterMiddleware(handler)
	wrapped(w, req, nil)
	wrapped(w, req, nil)
	assert.Equal(t, uint64(2), num)
	assert.Equal(t, uint64(2), api.stats.called)
}

// TestRequestIDMiddleware ensures the generated id is available to handlers.
func TestRequestIDMiddleware(t *testing.T) {
	api, _ := newTestAPIHandler(t, nil)
	var got string
	handler := func(w http.ResponseWriter, req *http.Request, ps httprouter.Params) {
		got = GetValueFromContext(req.Context(), RequestIDContextKey)
	}
	w := httptest.NewRecorder()
	api.RequestIDMiddleware(handler)(w, httptest.NewRequest("GET", "/books", nil), nil)
	assert.Equal(t, "r:0", got)
	assert.Equal(t, "r:0", w.Header().Get("X-Request-ID"))
}

// TestPanicRecoveryMiddleware ensures a panicking handler results into a 500.
func TestPanicRecoveryMiddleware(t *testing.T) {
	api, _ := newTestAPIHandler(t, nil)
	handler := func(w http.ResponseWriter, req *http.Request, ps httprouter.Params) {
		panic("boom")
	}
	w := httptest.NewRecorder()
	assert.NotPanics(t, func() {
		api.PanicRecoveryMiddleware(handler)(w, httptest.NewRequest("GET", "/books", nil), nil)
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

// TestLoggingMiddleware ensures the final status code is recorded.
func TestLoggingMiddleware(t *testing.T) {
	api, _ := newTestAPIHandler(t, nil)
	handler := func(w http.ResponseWriter, req *http.Request, ps httprouter.Params) {
		w.WriteHeader(http.StatusTeapot)
	}
	w := httptest.NewRecorder()
	api.LoggingMiddleware(handler)(w, httptest.NewRequest("GET", "/books", nil), nil)
	assert.Equal(t, http.StatusTeapot, w.Code)
	assert.Equal(t, uint64(1), api.stats.status[http.StatusTeapot])
}
