// Sensorgrid - Multi-tenant IoT Telemetry Ingestion and Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sensorgrid

package logging

import "strings"

// RedactKey returns a log-safe form of an API key: the identifying
// prefix followed by "...". Keys shorter than the prefix are fully masked.
func RedactKey(key string) string {
	const visible = 12
	if len(key) <= visible {
		return strings.Repeat("*", len(key))
	}
	return key[:visible] + "..."
}

// SanitizeValue strips control characters that could forge log lines
// and truncates long client-supplied values.
func SanitizeValue(value string) string {
	const maxLen = 200
	cleaned := strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, value)
	if len(cleaned) > maxLen {
		return cleaned[:maxLen] + "..."
	}
	return cleaned
}
