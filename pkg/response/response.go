// Package response writes JSON bodies for handlers and middleware.
//
// Errors use a single shape, {"detail": ...}, where detail is a message or a
// list of validation issues.
package response

import (
	"encoding/json"
	"net/http"

	"github.com/shashiranjanraj/stockroom/pkg/validate"
)

type detail struct {
	Detail interface{} `json:"detail"`
}

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

// OK writes a 200.
func OK(w http.ResponseWriter, v interface{}) {
	JSON(w, http.StatusOK, v)
}

// Created writes a 201.
func Created(w http.ResponseWriter, v interface{}) {
	JSON(w, http.StatusCreated, v)
}

// Error writes {"detail": message}.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, detail{Detail: message})
}

// ValidationError writes a 422 listing every failed rule.
func ValidationError(w http.ResponseWriter, issues validate.Issues) {
	JSON(w, http.StatusUnprocessableEntity, detail{Detail: issues})
}

// Unauthorized writes a 401 carrying the bearer challenge header.
func Unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	Error(w, http.StatusUnauthorized, message)
}

// NotFound writes a 404.
func NotFound(w http.ResponseWriter, message string) {
	Error(w, http.StatusNotFound, message)
}
