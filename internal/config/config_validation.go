// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"net/url"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or an error joining every
// violated rule otherwise.
func (cfg *StructuredConfig) validate() error {
	var errs []error

	if cfg.Storage.DB.DSN == "" {
		errs = append(errs, ErrInvalidStorageConfigs)
	}

	if cfg.Server.HTTPAddress == "" {
		errs = append(errs, ErrInvalidServerConfigs)
	}

	if cfg.App.TokenSignKey == "" || cfg.App.TokenMaxAge <= 0 {
		errs = append(errs, ErrInvalidAppConfigs)
	}
	if u, err := url.Parse(cfg.App.PublicURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, ErrInvalidPublicURL)
	}

	if cfg.Session.HashKey == "" || cfg.Session.CookieName == "" ||
		cfg.Session.Lifetime <= 0 || cfg.Session.PermanentLifetime < cfg.Session.Lifetime {
		errs = append(errs, ErrInvalidSessionConfigs)
	}

	return errors.Join(errs...)
}
