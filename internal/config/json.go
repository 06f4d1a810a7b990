// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] in the layout of the JSON
// configuration file.
type StructuredJSONConfig struct {
	App struct {
		TokenSignKey string   `json:"token_sign_key"`
		TokenIssuer  string   `json:"token_issuer"`
		TokenMaxAge  Duration `json:"token_max_age"`
		PublicURL    string   `json:"public_url"`
		LogLevel     string   `json:"log_level"`
		Version      string   `json:"version"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`

		Redis struct {
			Address  string `json:"address"`
			Password string `json:"password"`
			DB       int    `json:"db"`
		} `json:"redis,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
		AllowedOrigins []string `json:"allowed_origins"`
	} `json:"server,omitempty"`

	Session struct {
		CookieName        string   `json:"cookie_name"`
		Lifetime          Duration `json:"lifetime"`
		PermanentLifetime Duration `json:"permanent_lifetime"`
		HashKey           string   `json:"hash_key"`
		SecureCookie      bool     `json:"secure_cookie"`
	} `json:"session,omitempty"`

	Mail struct {
		Host     string `json:"host"`
		Port     int    `json:"port"`
		Username string `json:"username"`
		Password string `json:"password"`
		From     string `json:"from"`
	} `json:"mail,omitempty"`

	OAuth struct {
		Google   jsonOAuthProvider `json:"google"`
		Facebook jsonOAuthProvider `json:"facebook"`
		GitHub   jsonOAuthProvider `json:"github"`
	} `json:"oauth,omitempty"`
}

type jsonOAuthProvider struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	RedirectURL  string `json:"redirect_url"`
}

func (p jsonOAuthProvider) toConfig() OAuthProvider {
	return OAuthProvider{
		ClientID:     p.ClientID,
		ClientSecret: p.ClientSecret,
		RedirectURL:  p.RedirectURL,
	}
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			TokenSignKey: jsonCfg.App.TokenSignKey,
			TokenIssuer:  jsonCfg.App.TokenIssuer,
			TokenMaxAge:  time.Duration(jsonCfg.App.TokenMaxAge),
			PublicURL:    jsonCfg.App.PublicURL,
			LogLevel:     jsonCfg.App.LogLevel,
			Version:      jsonCfg.App.Version,
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
			Redis: Redis{
				Address:  jsonCfg.Storage.Redis.Address,
				Password: jsonCfg.Storage.Redis.Password,
				DB:       jsonCfg.Storage.Redis.DB,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
			AllowedOrigins: jsonCfg.Server.AllowedOrigins,
		},
		Session: Session{
			CookieName:        jsonCfg.Session.CookieName,
			Lifetime:          time.Duration(jsonCfg.Session.Lifetime),
			PermanentLifetime: time.Duration(jsonCfg.Session.PermanentLifetime),
			HashKey:           jsonCfg.Session.HashKey,
			SecureCookie:      jsonCfg.Session.SecureCookie,
		},
		Mail: Mail{
			Host:     jsonCfg.Mail.Host,
			Port:     jsonCfg.Mail.Port,
			Username: jsonCfg.Mail.Username,
			Password: jsonCfg.Mail.Password,
			From:     jsonCfg.Mail.From,
		},
		OAuth: OAuth{
			Google:   jsonCfg.OAuth.Google.toConfig(),
			Facebook: jsonCfg.OAuth.Facebook.toConfig(),
			GitHub:   jsonCfg.OAuth.GitHub.toConfig(),
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
