package rules

// BuiltinVersion is the semantic version of the compiled-in rule set.
// Payload loads must carry a version >= the active one.
const BuiltinVersion = "1.0.0"

// Builtin returns the compiled-in rule set in evaluation order. The order is
// fixed so scans are deterministic; high-signal provider rules come before
// the broad generic sweeps.
func Builtin() []Rule {
	var out []Rule
	for _, group := range [][]Rule{
		awsRules(),
		githubRules(),
		gcpRules(),
		slackRules(),
		stripeRules(),
		aiRules(),
		saasRules(),
		databaseRules(),
		keyRules(),
		genericRules(),
		phishingRules(),
	} {
		out = append(out, group...)
	}
	return out
}

// BuiltinIDs returns the IDs of the built-in rules in evaluation order.
func BuiltinIDs() []string {
	rs := Builtin()
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.ID
	}
	return out
}
