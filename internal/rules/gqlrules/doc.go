// Package gqlrules holds the GraphQL schema rules: Relay connection and edge
// shapes, list pagination, @public reachability, error and payload typing,
// and the mutation argument and return conventions.
package gqlrules
