// Package phish implements structural matchers for phishing indicators:
// IDN homoglyph impersonation and credential-harvesting page structure.
// Matchers operate on normalized text and return byte-offset spans, so they
// plug into the engine alongside regex rules.
package phish
