// Package diag defines the diagnostic model shared by rules, the driver and
// the renderers.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with a stable string form
//     (GQL1001, TS2003, VL9001).
//   - Rule – identifier of the rule that produced the diagnostic.
//   - Message – the rendered rule message.
//   - Primary span – the source.Span of the offending node.
//   - Notes – optional secondary spans/messages.
//   - Fixes – optional Fix records.
//
// # Fix suggestions
//
// Fix is data only: a title, a kind, an applicability level and a list of
// TextEdits in source coordinates. OldText acts as an optional guard that the
// fix engine checks before applying an edit. Fixes of different diagnostics may
// overlap; internal/fix decides which subset is applied in one pass.
//
// # Emitting diagnostics
//
// Producers report through a Reporter. Every call records exactly one
// diagnostic: nothing in this package deduplicates, because several rules (and
// several occurrences within one rule) legitimately report the same location.
// BagReporter aggregates into a Bag, which supports limits, filtering and
// deterministic sorting.
//
// Rendering lives in internal/diagfmt; applying fixes lives in internal/fix.
package diag
