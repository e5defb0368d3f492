// Package diag defines the diagnostic model shared by the tokenizer, parser
// and generator.
//
// Producers never fail fast. They hand Diagnostic records to a Reporter and
// continue; the driver decides what to do with the collected Bag. The only
// terminal error is ParseError, raised once per file when its parse produced
// at least one error.
//
// Codes are grouped by phase: LEX (tokenizer), SYN (parser), SEM (generator
// and evaluation warnings), IO (files and imports), PRJ (bss.toml).
//
// Package diag does no formatting beyond plain one-line messages; colour,
// context lines and JSON live in internal/diagfmt.
package diag
