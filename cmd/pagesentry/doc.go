// Package pagesentry provides the command-line interface for the PageSentry
// tool. It configures subcommands (scan, rules, validators, completion),
// parses flags, and executes the selected command.
//
// Typical usage from a main package:
//
//	package main
//	import "github.com/pagesentry/pagesentry/cmd/pagesentry"
//	func main() { pagesentry.Execute() }
package pagesentry
