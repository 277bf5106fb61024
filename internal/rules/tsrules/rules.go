package tsrules

import (
	"vantalint/internal/diag"
	"vantalint/internal/lint"
	"vantalint/internal/tsast"
)

// All returns the TypeScript rules in catalog order.
func All() []*tsast.Rule {
	return []*tsast.Rule{
		NullOrUndefinedCheck,
		OptionalAlwaysMaybe,
		PreferMaybe,
		CommonAbsoluteImport,
		ServerCommonAbsoluteImport,
		NoOneLineArrowFunctions,
		MongooseNamingConvention,
	}
}

func report(p *tsast.Pass, at tsast.Node, msgID string, data map[string]string, fix *diag.Fix) {
	p.Report(lint.Violation{Span: at.Span(), MessageID: msgID, Data: data, Fix: fix})
}
