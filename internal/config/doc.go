// Package config loads the liveview server configuration.
//
// Configuration is read in three layers, each overriding the last:
//
//  1. defaults from New
//  2. liveview.yaml in the project directory
//  3. LIVEVIEW_* environment variables, after loading an optional .env
//
// # Configuration File Structure
//
//	server:
//	  address: ":8080"
//	  read_header_timeout: 5s
//	  read_timeout: 30s
//	  write_timeout: 30s
//	  idle_timeout: 2m
//	  shutdown_timeout: 30s
//	  max_body_bytes: 1048576
//	actor:
//	  mailbox: 64
//	  timeout: 5s
//	logging:
//	  level: info
//	  format: text
//	metrics:
//	  enabled: true
//	  path: /metrics
//	  namespace: liveview
//	tracing:
//	  enabled: false
//	  tracer_name: liveview
//	rate_limit:
//	  rps: 0
//	  burst: 10
//	live:
//	  enabled: true
//
// Every key has an environment form: server.read_timeout is
// LIVEVIEW_SERVER_READ_TIMEOUT.
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    errors.PrintError(err)
//	    os.Exit(1)
//	}
//
//	srv := server.New(cfg.ServerConfig(logger), table, state)
package config
