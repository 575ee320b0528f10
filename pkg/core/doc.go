// Package core provides a small, stable facade over PageSentry's internal
// scan pipeline for external integrations. It deliberately re-exports a
// narrow API surface so browser hosts and third-party tools can depend on a
// stable import path without exposing internal implementation packages.
//
// Example:
//
//	s := core.NewScanner(core.Defaults())
//	res, err := s.Scan(ctx, pageText, "https://example.com/login")
//	if err != nil { /* handle */ }
//	_ = core.MarshalFindings(os.Stdout, res.Findings)
package core
