package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/launcher/internal/flagx"
)

// parseFlags overrides Config fields from command-line flags.
//
//	-a string   HTTP bind address (e.g. ":8000")
//	-g string   gRPC health bind address, "" disables
//	-d string   PostgreSQL DSN, "" keeps accounts in memory
//	-s string   operator JWT secret
//	-t int      session lifetime, minutes (0 = until revoked)
//	-m string   approval mode: manual, auto-approve, auto-deny
//	-w int      manual approval timeout, seconds
//	-r string   Redis address for sessions
//	-u string   S3 root user
//	-p string   S3 root password
//	-b string   S3 bucket, "" keeps directories in memory
//	-n string   S3 region
//	-e string   S3 base endpoint
//	-q string   NATS URL for the operator approval feed
//	-l string   log format
//
// Only these flags are read; os.Args is filtered with flagx.FilterArgs first.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{
		"-a", "-g", "-d", "-s", "-t", "-m", "-w", "-r", "-u", "-p", "-b", "-n", "-e", "-q", "-l",
	})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "HTTP address and port")
	fs.StringVar(&config.EndpointAddrGRPC, "g", config.EndpointAddrGRPC, "gRPC health address and port")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "operator token secret")

	sessionTTL := fs.Int("t", int(config.SessionTTL.Minutes()), "session lifetime (in minutes)")
	fs.StringVar(&config.ApprovalMode, "m", config.ApprovalMode, "approval mode")
	approvalTimeout := fs.Int("w", int(config.ApprovalTimeout.Seconds()), "approval timeout (in seconds)")

	fs.StringVar(&config.RedisAddr, "r", config.RedisAddr, "redis address")
	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "n", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")
	fs.StringVar(&config.NATSURL, "q", config.NATSURL, "NATS url")
	fs.StringVar(&config.LogFormat, "l", config.LogFormat, "log format")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// Durations from the file may be finer than the flag units; only
	// overwrite them when the flag is given.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			config.SessionTTL = time.Duration(*sessionTTL) * time.Minute
		case "w":
			config.ApprovalTimeout = time.Duration(*approvalTimeout) * time.Second
		}
	})
}
