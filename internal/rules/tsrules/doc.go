// Package tsrules holds the TypeScript source rules: nullability idioms
// around Maybe<T> and isSome, absolute imports of shared packages, arrow
// function bodies and mongoose naming conventions.
package tsrules
