// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"regexp"
	"strconv"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// parseFlags parses configuration flags from args.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d database DSN
//	-r redis address in format [host]:[port]
//	-c/-config json file path with configs
//	-token-sign-key token signing key
//	-token-issuer token issuer name
//	-token-max-age lifetime of emailed links (e.g., "1h", "30m")
//	-public-url externally reachable base URL
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-session-hash-key session hash key
//	-secure-cookie mark session cookies as Secure
//	-smtp-host SMTP server host
func parseFlags(args []string) (*StructuredConfig, error) {
	var serverAddress, redisAddress NetAddress
	var databaseDSN string
	var jsonConfigPath string
	var tokenSignKey string
	var tokenIssuer string
	var tokenMaxAge time.Duration
	var publicURL string
	var requestTimeout time.Duration
	var sessionHashKey string
	var secureCookie bool
	var smtpHost string

	fs := flag.NewFlagSet("go-pet-life", flag.ContinueOnError)
	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.Var(&redisAddress, "r", "Redis address host:port")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&tokenSignKey, "token-sign-key", "", "Token signing key")
	fs.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	fs.DurationVar(&tokenMaxAge, "token-max-age", 0, "Lifetime of emailed links (e.g., 1h, 30m)")
	fs.StringVar(&publicURL, "public-url", "", "Externally reachable base URL")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.StringVar(&sessionHashKey, "session-hash-key", "", "Session hash key")
	fs.BoolVar(&secureCookie, "secure-cookie", false, "Mark session cookies as Secure")
	fs.StringVar(&smtpHost, "smtp-host", "", "SMTP server host")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{
			TokenSignKey: tokenSignKey,
			TokenIssuer:  tokenIssuer,
			TokenMaxAge:  tokenMaxAge,
			PublicURL:    publicURL,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
			Redis: Redis{
				Address: redisAddress.String(),
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Session: Session{
			HashKey:      sessionHashKey,
			SecureCookie: secureCookie,
		},
		Mail: Mail{
			Host: smtpHost,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns host:port, bracketing IPv6 hosts. An unset address is
// rendered as an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

// hostnamePattern matches DNS names such as "redis" or "db.internal".
var hostnamePattern = regexp.MustCompile(`^[A-Za-z0-9]([A-Za-z0-9-]{0,61}[A-Za-z0-9])?(\.[A-Za-z0-9]([A-Za-z0-9-]{0,61}[A-Za-z0-9])?)*$`)

// Set parses host:port. The host may be empty, an IP address (IPv6 in
// brackets) or a DNS name, so container service names like "redis:6379"
// are accepted.
func (a *NetAddress) Set(s string) error {
	host, rawPort, err := net.SplitHostPort(s)
	if err != nil {
		return fmt.Errorf("need address in a form `host:port`: %w", err)
	}

	port, err := strconv.Atoi(rawPort)
	if err != nil {
		return fmt.Errorf("invalid port %q: %w", rawPort, err)
	}
	if port < 1 || port > 65535 {
		return errors.New("port number must be between 1 and 65535")
	}

	if host != "" && net.ParseIP(host) == nil && !hostnamePattern.MatchString(host) {
		return fmt.Errorf("invalid host %q", host)
	}

	a.Host = host
	a.Port = port
	return nil
}
