// Package config handles configuration for the launcher server, including
// defaults, a JSON or YAML file overlay, and command-line flags.
package config

import (
	"time"

	"github.com/dmitrijs2005/launcher/internal/server/approval"
)

// DefaultSecretKey is the development operator secret. The server refuses
// to run manual approval with it.
const DefaultSecretKey = "secretKey"

// Config holds runtime settings for the launcher server.
//
// Fields:
//   - EndpointAddrHTTP: bind address of the public HTTP API.
//   - EndpointAddrGRPC: bind address of the gRPC health endpoint; empty disables it.
//   - DatabaseDSN: PostgreSQL DSN (pgx). Empty keeps accounts in memory.
//   - SecretKey: HMAC secret for operator JWTs (HS256). Do not use test defaults in prod.
//   - SessionTTL: lifetime of an app session; zero means sessions live until revoked.
//   - ApprovalMode / ApprovalTimeout: auth approval gate policy (an approval.Mode).
//   - RedisAddr: when set, sessions are kept in Redis instead of process memory.
//   - S3*: object storage for directories; an empty S3Bucket keeps them in memory.
//   - NATSURL / NATSSubjectPrefix: operator approval feed; empty URL disables it.
//   - LogFormat: json, text, zerolog or console.
type Config struct {
	EndpointAddrHTTP  string
	EndpointAddrGRPC  string
	DatabaseDSN       string
	SecretKey         string
	SessionTTL        time.Duration
	ApprovalMode      string
	ApprovalTimeout   time.Duration
	RedisAddr         string
	S3RootUser        string
	S3RootPassword    string
	S3Bucket          string
	S3Region          string
	S3BaseEndpoint    string
	NATSURL           string
	NATSSubjectPrefix string
	LogFormat         string
}

// LoadDefaults populates Config with development defaults.
// NOTE: SecretKey must be overridden outside of tests.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":8000"
	c.EndpointAddrGRPC = ":50051"
	c.DatabaseDSN = ""
	c.SecretKey = DefaultSecretKey
	c.SessionTTL = 24 * time.Hour
	c.ApprovalMode = string(approval.ModeManual)
	c.ApprovalTimeout = time.Minute
	c.RedisAddr = ""
	c.S3RootUser = "admin"
	c.S3RootPassword = "secretpassword"
	c.S3Bucket = ""
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = "http://127.0.0.1:9000/"
	c.NATSURL = ""
	c.NATSSubjectPrefix = "launcher.auth"
	c.LogFormat = "json"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional config file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg)
	parseFlags(cfg)
	return cfg
}
