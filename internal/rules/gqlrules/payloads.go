package gqlrules

import (
	"strconv"

	"vantalint/internal/diag"
	"vantalint/internal/graphql"
	"vantalint/internal/lint"
)

// PayloadsAreUnions requires *Payload types to be unions of one *Success type
// and *Error types including BaseUserError.
var PayloadsAreUnions = &graphql.Rule{
	Meta: lint.Meta{
		ID:          "payloads-are-unions",
		Language:    lint.LangGraphQL,
		Description: "Payloads are unions of a success type and one or more error types",
		Category:    lint.CategorySuggestion,
		DocsGroup:   "Best Practices",
		Recommended: true,
		Severity:    diag.SevError,
		Code:        diag.GqlPayloadsAreUnions,
		Messages: map[string]string{
			"notUnion":          "Types that end with 'Payload' must be unions",
			"successCount":      "Payloads must include exactly one 'Success' type, found {{count}}",
			"missingBaseError":  "Payloads must include BaseUserError",
			"unexpectedMembers": "Payloads should be unions of only Success and Error types",
		},
	},
	Visitor: graphql.Visitor{
		Document: func(p *graphql.Pass, doc *graphql.Document) error {
			return graphql.EachTypeDefinition(doc, func(def graphql.Definition) error {
				checkPayload(p, def)
				return nil
			})
		},
	},
}

func checkPayload(p *graphql.Pass, def graphql.Definition) {
	if !hasSuffix(def.DefName(), "Payload") {
		return
	}
	union, ok := def.(*graphql.UnionTypeDefinition)
	if !ok {
		report(p, def, "notUnion", nil)
		return
	}

	successes := 0
	hasBase := false
	onlyKnown := true
	for _, member := range union.Types {
		isSuccess := hasSuffix(member.Name, "Success")
		if isSuccess {
			successes++
		}
		if member.Name == "BaseUserError" {
			hasBase = true
		}
		if !isSuccess && !hasSuffix(member.Name, "Error") {
			onlyKnown = false
		}
	}

	if successes != 1 {
		report(p, union, "successCount", map[string]string{"count": strconv.Itoa(successes)})
	}
	if !hasBase {
		report(p, union, "missingBaseError", nil)
	}
	if !onlyKnown {
		report(p, union, "unexpectedMembers", nil)
	}
}
