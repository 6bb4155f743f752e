// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package router maps URL patterns to handlers using Go 1.22 method
// routing on the standard ServeMux.
package router
