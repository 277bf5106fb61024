package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// GraphQL schema rules
	GqlConnectionsRelayCompliant Code = 1001
	GqlEdgesRelayCompliant       Code = 1002
	GqlAllListsInConnections     Code = 1003
	GqlPublicDescendantsPublic   Code = 1004
	GqlErrorsImplementUserError  Code = 1005
	GqlPayloadsAreUnions         Code = 1006
	GqlMutationsInputType        Code = 1007
	GqlMutationsInputsUnique     Code = 1008
	GqlMutationsPayloadsUnique   Code = 1009
	GqlMutationsReturnPayload    Code = 1010

	// TypeScript rules
	TsNullOrUndefinedCheck       Code = 2001
	TsOptionalAlwaysMaybe        Code = 2002
	TsPreferMaybe                Code = 2003
	TsCommonAbsoluteImport       Code = 2004
	TsServerCommonAbsoluteImport Code = 2005
	TsNoOneLineArrowFunctions    Code = 2006
	TsMongooseNamingConvention   Code = 2007

	// driver
	DrvInfo          Code = 9000
	DrvSyntaxError   Code = 9001
	DrvPrecondition  Code = 9002
	DrvLoadFileError Code = 9003
	DrvTooManyFixes  Code = 9004
)

var (
	codeDescription = map[Code]string{
		UnknownCode:                  "Unknown error",
		GqlConnectionsRelayCompliant: "Connection type is not Relay compliant",
		GqlEdgesRelayCompliant:       "Edge type is not Relay compliant",
		GqlAllListsInConnections:     "Unpaginated list field",
		GqlPublicDescendantsPublic:   "@public type reaches a non-public type",
		GqlErrorsImplementUserError:  "Error type and UserError mismatch",
		GqlPayloadsAreUnions:         "Malformed payload union",
		GqlMutationsInputType:        "Malformed mutation input",
		GqlMutationsInputsUnique:     "Reused mutation input type",
		GqlMutationsPayloadsUnique:   "Reused mutation payload type",
		GqlMutationsReturnPayload:    "Mutation does not return a payload",
		TsNullOrUndefinedCheck:       "Direct comparison with null or undefined",
		TsOptionalAlwaysMaybe:        "Optional declaration not typed Maybe",
		TsPreferMaybe:                "Union with null or undefined",
		TsCommonAbsoluteImport:       "Relative import into common",
		TsServerCommonAbsoluteImport: "Relative import into server-common",
		TsNoOneLineArrowFunctions:    "One-statement arrow function without return",
		TsMongooseNamingConvention:   "Mongoose naming convention",
		DrvInfo:                      "Driver information",
		DrvSyntaxError:               "Syntax error",
		DrvPrecondition:              "Rule precondition failed",
		DrvLoadFileError:             "I/O load file error",
		DrvTooManyFixes:              "Fixes did not converge",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("GQL%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("TS%04d", ic)
	case ic >= 9000 && ic < 10000:
		return fmt.Sprintf("VL%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
