// Package config loads PageSentry configuration from local and global YAML
// files with precedence rules and resolves it into runtime options. It is
// internal; CLI code maps flags and files into scan options.
package config
