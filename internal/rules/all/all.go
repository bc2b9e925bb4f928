// Package all imports every builtin rule package to register them.
// Import this package with a blank identifier to enable all builtin rules:
//
//	import _ "github.com/octofhir/fsh-lint/internal/rules/all"
package all

import (
	// Import every builtin rule package to trigger its init() registration.
	_ "github.com/octofhir/fsh-lint/internal/rules/duplicateresourceid"
	_ "github.com/octofhir/fsh-lint/internal/rules/invalidcaretpath"
	_ "github.com/octofhir/fsh-lint/internal/rules/namingconvention"
	_ "github.com/octofhir/fsh-lint/internal/rules/secretsinfixedvalue"
)
