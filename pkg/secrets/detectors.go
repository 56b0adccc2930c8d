// Copyright 2026 The devnarrate authors. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package secrets

import (
	"regexp"
	"strings"
)

// detector pairs a finding type with the pattern that recognizes it.
// When valueGroup is positive, that capture group holds the secret
// value; otherwise the whole match does.
type detector struct {
	name       string
	pattern    *regexp.Regexp
	valueGroup int
}

// defaultDetectors covers the common provider token formats plus a
// keyword detector for inline assignments like password = "admin123".
// Provider patterns are anchored to their documented prefixes, so
// false positives are rare; the keyword detector is looser and relies
// on the quoted-value requirement to stay usable.
var defaultDetectors = []detector{
	{name: "AWS Access Key", pattern: regexp.MustCompile(`\b(?:A3T[A-Z0-9]|AKIA|ASIA|ABIA|ACCA)[0-9A-Z]{16}\b`)},
	{name: "GitHub Token", pattern: regexp.MustCompile(`\bgh[poushr]_[A-Za-z0-9]{36,}\b`)},
	{name: "GitLab Token", pattern: regexp.MustCompile(`\bglpat-[A-Za-z0-9_\-]{20,}\b`)},
	{name: "Slack Token", pattern: regexp.MustCompile(`\bxox[baprs]-[0-9A-Za-z\-]{10,}\b`)},
	{name: "Stripe Key", pattern: regexp.MustCompile(`\b[sr]k_live_[0-9a-zA-Z]{20,}\b`)},
	{name: "SendGrid API Key", pattern: regexp.MustCompile(`\bSG\.[A-Za-z0-9_\-]{16,32}\.[A-Za-z0-9_\-]{16,64}\b`)},
	{name: "NPM Token", pattern: regexp.MustCompile(`\bnpm_[A-Za-z0-9]{36}\b`)},
	{name: "PyPI Token", pattern: regexp.MustCompile(`\bpypi-AgEIcHlwaS5vcmc[A-Za-z0-9_\-]{20,}`)},
	{name: "Twilio API Key", pattern: regexp.MustCompile(`\bSK[0-9a-fA-F]{32}\b`)},
	{name: "OpenAI API Key", pattern: regexp.MustCompile(`\bsk-[A-Za-z0-9_\-]{20,}\b`)},
	{name: "Private Key", pattern: regexp.MustCompile(`-----BEGIN [A-Z ]*PRIVATE KEY-----`)},
	{name: "JWT Token", pattern: regexp.MustCompile(`\beyJ[A-Za-z0-9_\-]{8,}\.[A-Za-z0-9_\-]{8,}\.[A-Za-z0-9_\-]*`)},
	{name: "Basic Auth Credentials", pattern: regexp.MustCompile(`://[^\s:@/]+:([^\s:@/]+)@`), valueGroup: 1},
	{name: "Keyword Secret", pattern: regexp.MustCompile(`(?i)(?:password|passwd|pwd|secret|api[_-]?key|auth[_-]?token|access[_-]?token)\s*[:=]\s*["']([^"']{6,})["']`), valueGroup: 1},
}

// RegexScanner is the default Scanner, a pure-regex reimplementation
// of the provider/keyword detector split used by dedicated secret
// scanning tools.
type RegexScanner struct {
	detectors []detector
}

// NewRegexScanner creates a scanner with the default detector set.
func NewRegexScanner() *RegexScanner {
	return &RegexScanner{detectors: defaultDetectors}
}

// Scan checks every line against every detector. It reports at most
// one finding per detector per line; per-location deduplication across
// detectors is the caller's job.
func (s *RegexScanner) Scan(_ string, lines []string) ([]Finding, error) {
	var findings []Finding
	for i, line := range lines {
		for _, d := range s.detectors {
			m := d.pattern.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			value := m[0]
			if d.valueGroup > 0 && d.valueGroup < len(m) {
				value = m[d.valueGroup]
			}
			// Templated placeholders like "${API_TOKEN}" or "$SECRET"
			// are configuration, not leaked values.
			if strings.HasPrefix(value, "$") {
				continue
			}
			findings = append(findings, Finding{
				Line:   i + 1,
				Type:   d.name,
				Secret: value,
			})
		}
	}
	return findings, nil
}
