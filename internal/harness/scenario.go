package harness

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	cueyaml "cuelang.org/go/encoding/yaml"
	"gopkg.in/yaml.v3"
)

//go:embed scenario.cue
var scenarioSchema string

// Scenario defines a conformance test scenario: one input file and the
// outcome the pipeline must produce for it.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Input is written verbatim to the scenario's input file.
	// An empty input exercises default seeding.
	Input string `yaml:"input"`

	// Algorithm selects the sort routine. Empty means exchange.
	Algorithm string `yaml:"algorithm,omitempty"`

	// Depth is the merge fan-out depth.
	Depth int `yaml:"depth,omitempty"`

	Expect Expect `yaml:"expect"`
}

// Expect specifies the expected pipeline outcome.
type Expect struct {
	// Values is the expected sorted output. Nil means unchecked;
	// an explicit empty list means no values.
	Values []int32 `yaml:"values,omitempty"`

	// Comparisons is the expected comparison count. Nil means unchecked.
	Comparisons *int64 `yaml:"comparisons,omitempty"`

	// Error is a substring the abort message must contain. A scenario
	// with Error set must fail and must produce no output.
	Error string `yaml:"error,omitempty"`
}

// ExpectsError reports whether the scenario must abort.
func (s *Scenario) ExpectsError() bool {
	return s.Expect.Error != ""
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed, contains
// unknown fields, or violates the scenario schema.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict field validation catches typos like "expects:" vs "expect:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateSchema(path, data); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// FindScenarioFiles lists every .yaml/.yml scenario file in dir, sorted by name.
// A filter, if non-empty, is a glob matched against the file name without
// its extension.
func FindScenarioFiles(dir, filter string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenarios directory: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := filepath.Ext(e.Name())
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		if filter != "" {
			matched, err := filepath.Match(filter, strings.TrimSuffix(e.Name(), ext))
			if err != nil {
				return nil, fmt.Errorf("invalid filter pattern: %w", err)
			}
			if !matched {
				continue
			}
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// validateSchema checks the raw document against the embedded CUE schema.
func validateSchema(path string, data []byte) error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(scenarioSchema, cue.Filename("scenario.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile scenario schema: %w", err)
	}
	def := schema.LookupPath(cue.ParsePath("#Scenario"))

	file, err := cueyaml.Extract(path, data)
	if err != nil {
		return fmt.Errorf("extract YAML: %w", err)
	}
	doc := ctx.BuildFile(file)
	if err := doc.Err(); err != nil {
		return formatCUEError(err)
	}

	if err := def.Unify(doc).Validate(cue.Concrete(true)); err != nil {
		return formatCUEError(err)
	}
	return nil
}

func formatCUEError(err error) error {
	return fmt.Errorf("schema violation: %s", strings.TrimSpace(cueerrors.Details(err, nil)))
}

// validateScenario checks constraints the schema cannot express.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.ExpectsError() {
		if s.Expect.Values != nil || s.Expect.Comparisons != nil {
			return fmt.Errorf("expect.error cannot be combined with expect.values or expect.comparisons")
		}
		return nil
	}
	if s.Expect.Values == nil && s.Expect.Comparisons == nil {
		return fmt.Errorf("expect must set values, comparisons, or error")
	}
	return nil
}
