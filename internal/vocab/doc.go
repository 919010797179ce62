// Package vocab links vocabulary notes to the example sentences that use
// them.
//
// A note is split on its first "---" line into a vocabulary section and a
// sentence section. Every vocabulary entry and every sentence that mentions
// one gets a short anchor identifier (^ followed by six hex digits).
// Mentions inside sentences become links to the entry, and each entry lists
// back-links to its sentences in order of first use:
//
//	connect [s1](#^a1b2c3) ^0f9e8d
//
//	---
//
//	I will [connect](#^0f9e8d) it. ^a1b2c3
//
// Process is a pure function. Running it on its own output returns the same
// bytes, so hosts may call it as often as they like and write only when the
// result differs from the input.
package vocab
