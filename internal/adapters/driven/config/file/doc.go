// Package file provides the file-based configuration store.
//
// Settings live in config.toml inside the shiori config directory
// (~/.shiori by default). A config.yaml in the same directory is read
// when no config.toml exists; writes always go to config.toml.
package file
