// Package config loads and validates runtime configuration for the
// recipebook CLI.
//
// Sources, later ones win:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Command-line flags: -a URL, -t timeout, -i check interval, -d db path.
//
// JSON example:
//
//	{
//	  "server_url": "http://127.0.0.1:8080",
//	  "request_timeout": "10s",
//	  "online_check_interval": "3s",
//	  "local_db_path": "recipebook.db"
//	}
package config
