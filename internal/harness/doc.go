// Package harness provides conformance testing for the meso pipeline.
//
// The harness loads YAML scenarios, runs each one against the real
// pipeline on a fresh input file, and checks the outcome against the
// scenario's expectations and the sort invariants (output is the input
// rearranged into non-descending order).
//
// # Scenario Format
//
//	name: default_seed
//	description: "Empty input file is seeded and sorted"
//	input: ""
//	algorithm: exchange   # optional: exchange | merge
//	depth: 2              # optional merge fan-out depth
//	expect:
//	  values: [1, 2, 3, 4, 5, 6, 7, 8, 9, 10]
//	  comparisons: 55
//
// A scenario that must abort names a substring of the expected error:
//
//	expect:
//	  error: "invalid integer"
//
// Scenario files are decoded strictly (unknown fields are rejected) and
// validated against an embedded CUE schema before they run.
//
// # Deterministic Testing
//
// Every scenario runs in its own temp directory and records its run in an
// in-memory SQLite store under a fixed run ID, then replays the record.
// The stdout transcript is compared against testdata/golden/<name>.golden.
//
// # Usage
//
//	scenario, err := harness.LoadScenario("testdata/scenarios/default_seed.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := harness.Run(context.Background(), scenario)
package harness
