// Package config provides configuration loading for Gray Logic Strings.
//
// Configuration is loaded from a YAML file with hardcoded defaults and
// environment variable overrides, in that precedence order:
//
//  1. Defaults (defaultConfig)
//  2. YAML file values
//  3. GLSTRINGS_* environment variables
//
// # Example config.yaml
//
//	service:
//	  id: "glstrings-001"
//	  default_locale: "en"
//
//	database:
//	  path: "./data/glstrings.db"
//	  wal_mode: true
//	  busy_timeout: 5
//
//	mqtt:
//	  enabled: true
//	  broker:
//	    host: "localhost"
//	    port: 1883
//	    client_id: "glstrings-core"
//	  qos: 1
//
//	api:
//	  host: "0.0.0.0"
//	  port: 8090
//
//	resources:
//	  announce_issues: true
//
//	logging:
//	  level: "info"
//	  format: "json"
//	  output: "stdout"
//
// Secrets (MQTT credentials) should be supplied via environment variables
// rather than committed YAML: GLSTRINGS_MQTT_USERNAME, GLSTRINGS_MQTT_PASSWORD.
package config
