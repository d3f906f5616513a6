// Package config loads the service runtime configuration from multiple
// sources (YAML files, environment variables, CLI flags) with precedence:
// CLI flags > Environment variables > YAML config > Defaults. It exposes
// strongly typed settings to the rest of the application.
//
// This is the server's own configuration. The style build configuration the
// service publishes and watches is a separate artifact, owned by the
// styleconf package.
package config
