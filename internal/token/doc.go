// Package token defines the token model shared by the BSS tokenizer and parser.
// Invariants:
//   - Trigger is the canonical string used for matching: the symbol text for
//     SYMBOL, the starter for SPECIAL_ID, the canonical keyword for KEYWORD,
//     the opening delimiter for STRING and the identifier itself for ID.
//   - Contents is the payload (string body, identifier name, number with unit).
//   - Source is the verbatim text and always reproduces the input.
//   - An EOI token is terminal: every peek past the end returns the same one.
package token
