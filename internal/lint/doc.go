// Package lint holds the language-neutral half of the rule engine: rule
// metadata, the per-file report sink handed to rule handlers, message
// templating and the precondition error type.
//
// The language-specific halves live in internal/graphql and internal/tsast.
// Each defines a closed set of node variants, a Visitor struct with one
// handler per variant and a walk that dispatches over them. Both embed Meta
// in their Rule type and wrap Pass in their own pass type.
//
// Handlers are pure functions of the node and the pass: they never mutate the
// tree and never keep state across files. State that spans several nodes of
// one document lives in a local variable of a Document-level handler.
package lint
