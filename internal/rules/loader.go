package rules

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	gjsonschema "github.com/google/jsonschema-go/jsonschema"
	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/octofhir/fsh-lint/internal/diagnostic"
	"github.com/octofhir/fsh-lint/internal/pattern"
)

//go:embed schema.json
var ruleFileSchemaJSON []byte

var ruleFileSchema *gjsonschema.Resolved

// RuleFile is the format-agnostic shape (YAML, TOML, or JSON) a user-defined
// rule is authored in: an id, severity, human description, an optional
// GritQL-like pattern selecting the nodes it matches, and an optional
// mechanical autofix.
type RuleFile struct {
	ID            string              `koanf:"id"`
	Severity      string              `koanf:"severity"`
	Description   string              `koanf:"description"`
	GritQLPattern string              `koanf:"gritql_pattern"`
	Autofix       *RuleFileAutofix    `koanf:"autofix"`
	Metadata      *RuleFileMetadata   `koanf:"metadata"`
}

// RuleFileAutofix is the optional autofix half of a rule file.
type RuleFileAutofix struct {
	Description         string `koanf:"description"`
	ReplacementTemplate string `koanf:"replacement_template"`
	Safety              string `koanf:"safety"`
}

// RuleFileMetadata carries the descriptive fields surfaced by `--format
// json`/SARIF output and rule listing commands; distinct from the
// top-level id/severity/description which drive matching behavior.
type RuleFileMetadata struct {
	ID          string   `koanf:"id"`
	Name        string   `koanf:"name"`
	Description string   `koanf:"description"`
	Severity    string   `koanf:"severity"`
	Category    string   `koanf:"category"`
	Tags        []string `koanf:"tags"`
	Version     string   `koanf:"version"`
	DocsURL     string   `koanf:"docs_url"`
}

// parserForExt returns the koanf parser for a rule file's extension, or nil
// for ".json" which is decoded directly (koanf has no first-party JSON
// parser in this module's dependency set) and fed in through confmap.
func parserForExt(ext string) koanf.Parser {
	switch ext {
	case ".yaml", ".yml":
		return yaml.Parser()
	case ".toml":
		return toml.Parser()
	default:
		return nil
	}
}

// LoadRuleFile reads, parses, and schema-validates one rule file, returning
// the decoded shape. Format is determined by the file extension: .yaml/.yml,
// .toml, or .json.
func LoadRuleFile(path string) (*RuleFile, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))

	if ext == ".json" {
		raw, err := readJSONFile(path)
		if err != nil {
			return nil, &RuleError{Path: path, Reason: SkipCompileError, Err: err}
		}
		if err := k.Load(confmap.Provider(raw, "."), nil); err != nil {
			return nil, &RuleError{Path: path, Reason: SkipCompileError, Err: err}
		}
	} else {
		parser := parserForExt(ext)
		if parser == nil {
			return nil, &RuleError{Path: path, Reason: SkipCompileError, Err: fmt.Errorf("unsupported rule file extension %q", ext)}
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, &RuleError{Path: path, Reason: SkipCompileError, Err: err}
		}
	}

	if err := validateRuleFile(k.Raw()); err != nil {
		return nil, &RuleError{Path: path, Reason: SkipSchemaInvalid, Err: err}
	}

	var rf RuleFile
	if err := k.Unmarshal("", &rf); err != nil {
		return nil, &RuleError{Path: path, Reason: SkipCompileError, Err: err}
	}
	if rf.ID == "" {
		return nil, &RuleError{Path: path, Reason: SkipInvalidID, Err: fmt.Errorf("rule file %s: missing id", path)}
	}
	return &rf, nil
}

func readJSONFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return raw, nil
}

// validateRuleFile validates a decoded rule file's raw form against the
// embedded schema, round-tripping through encoding/json first so koanf's
// native types (e.g. map[string]interface{} vs a schema validator's
// expected JSON-shaped values) line up exactly.
func validateRuleFile(raw map[string]any) error {
	schema, err := loadRuleFileSchema()
	if err != nil {
		return err
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("encode rule file for validation: %w", err)
	}
	var value any
	if err := json.Unmarshal(data, &value); err != nil {
		return fmt.Errorf("decode rule file for validation: %w", err)
	}
	if err := schema.Validate(value); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

func loadRuleFileSchema() (*gjsonschema.Resolved, error) {
	if ruleFileSchema != nil {
		return ruleFileSchema, nil
	}
	var schema gjsonschema.Schema
	if err := json.Unmarshal(ruleFileSchemaJSON, &schema); err != nil {
		return nil, fmt.Errorf("parse embedded rule file schema: %w", err)
	}
	resolved, err := schema.CloneSchemas().Resolve(&gjsonschema.ResolveOptions{BaseURI: "https://schemas.fshlint.dev/rule-file.schema.json"})
	if err != nil {
		return nil, fmt.Errorf("resolve embedded rule file schema: %w", err)
	}
	ruleFileSchema = resolved
	return resolved, nil
}

// CompileRuleFile turns a validated RuleFile into a registrable Rule. An
// empty GritQLPattern compiles to a rule that never matches any node —
// useful for a rule file that exists only to document intent before its
// pattern is written.
func CompileRuleFile(rf *RuleFile) (*CustomRule, error) {
	severity, err := diagnostic.ParseSeverity(rf.Severity)
	if err != nil {
		return nil, &RuleError{Path: rf.ID, Reason: SkipInvalidID, Err: err}
	}

	pat := rf.GritQLPattern
	if pat == "" {
		pat = "__never_matches__Node"
	}
	matcher, err := pattern.Compile(pat)
	if err != nil {
		return nil, &RuleError{Path: rf.ID, Reason: SkipCompileError, Err: err}
	}

	rule := &CustomRule{
		code:        rf.ID,
		name:        rf.ID,
		description: rf.Description,
		severity:    severity,
		category:    "custom",
	}
	if rf.Metadata != nil {
		if rf.Metadata.Name != "" {
			rule.name = rf.Metadata.Name
		}
		if rf.Metadata.Category != "" {
			rule.category = rf.Metadata.Category
		}
		rule.docURL = rf.Metadata.DocsURL
	}
	rule.matcher = matcher

	if rf.Autofix != nil {
		safety := diagnostic.Unsafe
		if rf.Autofix.Safety == "safe" {
			safety = diagnostic.Safe
		}
		rule.autofix = &CustomAutofix{
			Description:         rf.Autofix.Description,
			ReplacementTemplate: rf.Autofix.ReplacementTemplate,
			Safety:              safety,
		}
	}
	return rule, nil
}

// LoadRuleFilesInto loads and compiles every rule file in dir (non-recursive)
// with a .yaml, .yml, .toml, or .json extension, registering each one into
// reg. A file that fails to load or compile is skipped and its RuleError is
// collected rather than aborting the whole directory, matching spec.md §7's
// "fail-fast only if requested, otherwise logged and skipped" policy for
// RuleError. Duplicate ids (by insertion order) are skipped with
// SkipDuplicateID rather than panicking, since rule files are user input.
func LoadRuleFilesInto(reg *Registry, paths []string) []error {
	var errs []error
	for _, path := range paths {
		rf, err := LoadRuleFile(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		rule, err := CompileRuleFile(rf)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if reg.Has(rule.code) {
			errs = append(errs, &RuleError{Path: path, Reason: SkipDuplicateID, Err: fmt.Errorf("rule id %q already registered", rule.code)})
			continue
		}
		reg.Register(rule)
	}
	return errs
}
