// Package contentline implements the generic content-line text encoding
// used by the line-oriented IETF formats (vCard/RFC 6350 and friends).
//
// The engine is format-agnostic. It turns a folded text stream into a typed
// component tree and serializes the tree back to conformant text:
//   - Unfolder: physical lines -> logical lines (fold/unfold, RFC 6350 §3.2)
//   - Lexer: logical line -> group, name, parameters, raw value
//   - Registry: (type identifier) -> Codec; per-property type defaults
//   - Assembler: BEGIN/END grouping -> Component tree
//   - Encoder: the symmetric inverse, deterministic byte-for-byte
//
// # Pipeline
//
// Parsing flows top-down:
//
//	Unfolder -> Lex -> Registry.ParseValue -> Property -> Assemble
//
// Encoding flows bottom-up:
//
//	Component -> Registry.EncodeValue -> Unlex -> Fold
//
// # Round-tripping
//
// For any component c built from registry-typed values,
// Parse(Encode(c)) is structurally equal to c, and re-encoding the parsed
// result reproduces the bytes exactly. Output is normalized: property,
// parameter, group and component names are case-folded to upper case, and
// date/time values are emitted in their canonical basic form.
//
// # Formats
//
// A format seeds a Registry with its codecs and per-property defaults and
// then treats it as read-only; see the vcard package for the RFC 6350
// seeding. Concurrent parses and encodes may share one registry.
//
// # Errors
//
// All failures are returned as *Error carrying a machine-readable Kind and
// a source Span. The engine never produces partial output: a failed parse
// returns no component, a failed encode returns no text.
package contentline
