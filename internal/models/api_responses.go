// Haven - Handcrafted Artisan Marketplace
// Copyright 2026 Caleb Morton (cmorton)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cmorton/haven

package models

import "time"

// APIResponse is the standardized response wrapper used by all HTTP
// endpoints. Status is "success" or "error"; Error is populated only for
// error responses.
//
// Example error response:
//
//	{
//	  "status": "error",
//	  "error": {
//	    "code": "AUTH_REQUIRED",
//	    "message": "Authentication required"
//	  },
//	  "metadata": {"timestamp": "2026-08-31T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata.
type Metadata struct {
	Timestamp time.Time `json:"timestamp"`
}

// APIError carries a machine-readable code and a single human-readable
// message. Common codes:
//
//   - VALIDATION_ERROR: invalid input parameters
//   - AUTH_REQUIRED: missing credentials
//   - AUTH_INVALID: expired or malformed token
//   - FORBIDDEN: insufficient permissions
//   - NOT_FOUND: resource absent (or owned by someone else)
//   - CONFLICT: duplicate resource
//   - INTERNAL_ERROR: unexpected failure
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
