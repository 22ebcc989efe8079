// Package config manages user-level settings stored at ~/.pkgtmpl/config.yaml.
// Values can be overridden with PKGTMPL_* environment variables; they cover the
// log level, the template staging directory, the user guide base URL and a
// fallback author.
package config
