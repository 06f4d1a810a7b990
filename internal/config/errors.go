// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidStorageConfigs indicates invalid storage settings
	// (for example, empty DSN).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidServerConfigs indicates invalid server settings
	// (for example, missing HTTP address).
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidAppConfigs indicates invalid application-level settings
	// (for example, missing token sign key).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidPublicURL indicates that the public URL is not an absolute URL.
	ErrInvalidPublicURL = errors.New("invalid public url")
	// ErrInvalidSessionConfigs indicates invalid session settings
	// (for example, missing hash key or a permanent lifetime shorter than
	// the regular one).
	ErrInvalidSessionConfigs = errors.New("invalid session configuration")
)
