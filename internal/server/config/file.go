package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/launcher/internal/flagx"
	"github.com/dmitrijs2005/launcher/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig mirrors Config for decoding config files. Durations use
// timex.Duration so "30s" and integer nanoseconds both work. Fields left out
// of the file keep their current value.
type FileConfig struct {
	EndpointAddrHTTP  *string         `json:"endpoint_addr_http" yaml:"endpoint_addr_http"`
	EndpointAddrGRPC  *string         `json:"endpoint_addr_grpc" yaml:"endpoint_addr_grpc"`
	DatabaseDSN       *string         `json:"database_dsn" yaml:"database_dsn"`
	SecretKey         *string         `json:"secret_key" yaml:"secret_key"`
	SessionTTL        *timex.Duration `json:"session_ttl" yaml:"session_ttl"`
	ApprovalMode      *string         `json:"approval_mode" yaml:"approval_mode"`
	ApprovalTimeout   *timex.Duration `json:"approval_timeout" yaml:"approval_timeout"`
	RedisAddr         *string         `json:"redis_addr" yaml:"redis_addr"`
	S3RootUser        *string         `json:"s3_root_user" yaml:"s3_root_user"`
	S3RootPassword    *string         `json:"s3_root_password" yaml:"s3_root_password"`
	S3Bucket          *string         `json:"s3_bucket" yaml:"s3_bucket"`
	S3Region          *string         `json:"s3_region" yaml:"s3_region"`
	S3BaseEndpoint    *string         `json:"s3_base_endpoint" yaml:"s3_base_endpoint"`
	NATSURL           *string         `json:"nats_url" yaml:"nats_url"`
	NATSSubjectPrefix *string         `json:"nats_subject_prefix" yaml:"nats_subject_prefix"`
	LogFormat         *string         `json:"log_format" yaml:"log_format"`
}

// parseFile overlays the file named by -c/-config onto config. The format
// is picked by extension: .yaml and .yml are YAML, anything else JSON.
// Unreadable or invalid files panic, like invalid flags do.
func parseFile(config *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &FileConfig{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, c)
	default:
		err = json.Unmarshal(data, c)
	}
	if err != nil {
		panic(err)
	}

	c.apply(config)
}

func (c *FileConfig) apply(config *Config) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	set(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	set(&config.DatabaseDSN, c.DatabaseDSN)
	set(&config.SecretKey, c.SecretKey)
	set(&config.ApprovalMode, c.ApprovalMode)
	set(&config.RedisAddr, c.RedisAddr)
	set(&config.S3RootUser, c.S3RootUser)
	set(&config.S3RootPassword, c.S3RootPassword)
	set(&config.S3Bucket, c.S3Bucket)
	set(&config.S3Region, c.S3Region)
	set(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	set(&config.NATSURL, c.NATSURL)
	set(&config.NATSSubjectPrefix, c.NATSSubjectPrefix)
	set(&config.LogFormat, c.LogFormat)

	if c.SessionTTL != nil {
		config.SessionTTL = c.SessionTTL.Duration
	}
	if c.ApprovalTimeout != nil {
		config.ApprovalTimeout = c.ApprovalTimeout.Duration
	}
}
