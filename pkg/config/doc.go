// Package config loads server settings from a YAML file and TINYWEB_*
// environment variables.
//
// Example file:
//
//	address: ":8080"
//	shutdown_timeout: 15s
//	log:
//	  level: debug
//	  format: text
//	sentry:
//	  dsn: https://key@o0.ingest.sentry.io/0
//	views_dir: ./views
//
// Environment variables win over the file: TINYWEB_ADDRESS,
// TINYWEB_SHUTDOWN_TIMEOUT, TINYWEB_LOG_LEVEL, TINYWEB_LOG_FORMAT,
// TINYWEB_SENTRY_DSN, TINYWEB_SENTRY_ENVIRONMENT, TINYWEB_VIEWS_DIR,
// TINYWEB_FILES_DIR and TINYWEB_ADMIN_TOKEN.
package config
