// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Tally Authors

package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d database DSN
//	-u uploads directory
//	-c/-config json file path with configs
//	-session-sign-key session token signing key
//	-session-issuer session token issuer name
//	-session-duration session lifetime (e.g. "24h")
//	-request-timeout request timeout (e.g. "30s")
//	-lookup-url product lookup API base URL
//	-server-url API base URL (terminal client)
//	-drafts-path capture drafts SQLite path (terminal client)
//	-token-path session token file path (terminal client)
func ParseFlags() *StructuredConfig {
	var serverAddress NetAddress
	var databaseDSN string
	var uploadsDir string
	var jsonConfigPath string
	var sessionSignKey string
	var sessionIssuer string
	var sessionDuration time.Duration
	var requestTimeout time.Duration
	var lookupURL string
	var clientServerURL string
	var draftsPath string
	var tokenPath string

	flag.Var(&serverAddress, "a", "Net address host:port")
	flag.StringVar(&databaseDSN, "d", "", "Database DSN")
	flag.StringVar(&uploadsDir, "u", "", "Uploads directory")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&sessionSignKey, "session-sign-key", "", "Session token signing key")
	flag.StringVar(&sessionIssuer, "session-issuer", "", "Session token issuer")
	flag.DurationVar(&sessionDuration, "session-duration", 0, "Session lifetime (e.g. 24h)")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g. 30s)")
	flag.StringVar(&lookupURL, "lookup-url", "", "Product lookup API base URL")
	flag.StringVar(&clientServerURL, "server-url", "", "Tally API base URL (client)")
	flag.StringVar(&draftsPath, "drafts-path", "", "Capture drafts SQLite path (client)")
	flag.StringVar(&tokenPath, "token-path", "", "Session token file path (client)")

	flag.Parse()

	return &StructuredConfig{
		Session: Session{
			SignKey:  sessionSignKey,
			Issuer:   sessionIssuer,
			Duration: sessionDuration,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
			Files: Files{
				UploadsDir: uploadsDir,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Lookup: Lookup{
			BaseURL: lookupURL,
		},
		Client: Client{
			ServerURL:  clientServerURL,
			DraftsPath: draftsPath,
			TokenPath:  tokenPath,
		},
		JSONFilePath: jsonConfigPath,
	}
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "" && host != "localhost" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
