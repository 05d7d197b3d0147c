// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Tally Authors

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] with JSON tags and
// string-friendly durations, so an operator can keep the full configuration
// in one file.
type StructuredJSONConfig struct {
	Auth struct {
		AuthorizeURL string `json:"authorize_url"`
		TokenURL     string `json:"token_url"`
		LogoutURL    string `json:"logout_url"`
		ClientID     string `json:"client_id"`
		ClientSecret string `json:"client_secret"`
		RedirectURL  string `json:"redirect_url"`
	} `json:"auth,omitempty"`

	Session struct {
		SignKey  string   `json:"sign_key"`
		Issuer   string   `json:"issuer"`
		Duration Duration `json:"duration"`
	} `json:"session,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`

		Files struct {
			UploadsDir     string `json:"uploads_dir"`
			MaxUploadBytes int64  `json:"max_upload_bytes"`
		} `json:"files,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Lookup struct {
		BaseURL string   `json:"base_url"`
		Timeout Duration `json:"timeout"`
	} `json:"lookup,omitempty"`

	Workers struct {
		SweepInterval Duration `json:"sweep_interval"`
		SweepMinAge   Duration `json:"sweep_min_age"`
	} `json:"workers,omitempty"`

	Client struct {
		ServerURL      string   `json:"server_url"`
		RequestTimeout Duration `json:"request_timeout"`
		DraftsPath     string   `json:"drafts_path"`
		TokenPath      string   `json:"token_path"`
	} `json:"client,omitempty"`
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
		Auth: Auth{
			AuthorizeURL: jsonCfg.Auth.AuthorizeURL,
			TokenURL:     jsonCfg.Auth.TokenURL,
			LogoutURL:    jsonCfg.Auth.LogoutURL,
			ClientID:     jsonCfg.Auth.ClientID,
			ClientSecret: jsonCfg.Auth.ClientSecret,
			RedirectURL:  jsonCfg.Auth.RedirectURL,
		},
		Session: Session{
			SignKey:  jsonCfg.Session.SignKey,
			Issuer:   jsonCfg.Session.Issuer,
			Duration: time.Duration(jsonCfg.Session.Duration),
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
			Files: Files{
				UploadsDir:     jsonCfg.Storage.Files.UploadsDir,
				MaxUploadBytes: jsonCfg.Storage.Files.MaxUploadBytes,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Lookup: Lookup{
			BaseURL: jsonCfg.Lookup.BaseURL,
			Timeout: time.Duration(jsonCfg.Lookup.Timeout),
		},
		Workers: Workers{
			SweepInterval: time.Duration(jsonCfg.Workers.SweepInterval),
			SweepMinAge:   time.Duration(jsonCfg.Workers.SweepMinAge),
		},
		Client: Client{
			ServerURL:      jsonCfg.Client.ServerURL,
			RequestTimeout: time.Duration(jsonCfg.Client.RequestTimeout),
			DraftsPath:     jsonCfg.Client.DraftsPath,
			TokenPath:      jsonCfg.Client.TokenPath,
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling
// from strings like "1h", "30s".
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
