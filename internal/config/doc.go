// Package config loads cardwallet's TOML configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/cardwallet/config.toml (default)
//  3. If the config file doesn't exist, fall back to defaults
//  4. If the file exists but fields are missing, empty or non-positive, use defaults
//
// CARDWALLET_TOKEN, when set, replaces the token from the file so the secret
// can stay out of the config.
//
// # Example
//
//	base_url = "http://homeassistant.local:8123"
//	token = "<long-lived access token>"
//	user_id = "8d1c…"
//	user_name = "Ana"
//	poll_seconds = 30
//	timeout_seconds = 10
//	log_level = "info"
//
//	[render]
//	qr_size = 160
//	qr_margin = 1
//	bar_width = 5
//	bar_height = 80
//
// The [render] table sets the pixel geometry used by `cardwallet export`.
// Paths accept a leading ~ and are returned absolute.
package config
