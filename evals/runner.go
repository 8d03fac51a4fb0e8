// Package evals checks how well a model picks WhatsOnChain tools and fills
// their arguments from natural language requests.
//
// The suites are embedded JSON files. A ToolSelector (an LLM harness or a
// stub) is scored against them, and Coverage reports which registered tools
// the suites do not exercise.
package evals

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"reflect"
	"sort"
	"strings"
)

// Suite file names inside a suite directory
const (
	ToolSelectionFile = "tool_selection.json"
	ConfusionPairFile = "confusion_pairs.json"
	ArgumentFile      = "argument_correctness.json"
)

//go:embed *.json
var builtin embed.FS

// Builtin returns the suites shipped with the server
func Builtin() fs.FS {
	return builtin
}

// ToolSelectionTest is one request and the tool expected to answer it
type ToolSelectionTest struct {
	ID           string         `json:"id"`
	Category     string         `json:"category"`
	Input        string         `json:"input"`
	ExpectedTool string         `json:"expected_tool"`
	ExpectedArgs map[string]any `json:"expected_args"`
	NotTools     []string       `json:"not_tools"`
}

// ToolSelectionSuite contains all tool selection tests
type ToolSelectionSuite struct {
	Name        string              `json:"name"`
	Version     string              `json:"version"`
	Description string              `json:"description"`
	Tests       []ToolSelectionTest `json:"tests"`
}

// ConfusionPairTest is one request that should land on one tool of a pair
type ConfusionPairTest struct {
	Input    string `json:"input"`
	Expected string `json:"expected"`
	Reason   string `json:"reason"`
}

// ConfusionPair groups tools whose descriptions overlap
type ConfusionPair struct {
	ID             string              `json:"id"`
	Tools          []string            `json:"tools"`
	Disambiguation string              `json:"disambiguation"`
	Tests          []ConfusionPairTest `json:"tests"`
}

// ConfusionPairSuite contains all confusion pair tests
type ConfusionPairSuite struct {
	Name        string          `json:"name"`
	Version     string          `json:"version"`
	Description string          `json:"description"`
	Pairs       []ConfusionPair `json:"pairs"`
}

// ArgumentTest checks the arguments extracted for one request
type ArgumentTest struct {
	ID            string         `json:"id"`
	Tool          string         `json:"tool"`
	Input         string         `json:"input"`
	RequiredArgs  []string       `json:"required_args"`
	ExpectedArgs  map[string]any `json:"expected_args"`
	ForbiddenArgs []string       `json:"forbidden_args"`
	ArgNotes      string         `json:"arg_notes,omitempty"`
}

// ValidationRules documents the argument conventions the suite assumes
type ValidationRules struct {
	HashFormat     string `json:"hash_format"`
	AddressFormat  string `json:"address_format"`
	AmountHandling string `json:"amount_handling"`
	BulkLimit      string `json:"bulk_limit"`
}

// ArgumentSuite contains all argument correctness tests
type ArgumentSuite struct {
	Name            string          `json:"name"`
	Version         string          `json:"version"`
	Description     string          `json:"description"`
	Tests           []ArgumentTest  `json:"tests"`
	ValidationRules ValidationRules `json:"validation_rules"`
}

// ToolSelectionResult is the outcome of one tool selection test
type ToolSelectionResult struct {
	TestID       string
	Input        string
	ExpectedTool string
	ActualTool   string
	Passed       bool
	Errors       []string
}

// ConfusionPairResult is the outcome of one confusion pair test
type ConfusionPairResult struct {
	PairID       string
	TestInput    string
	ExpectedTool string
	ActualTool   string
	Reason       string
	Passed       bool
}

// ArgumentResult is the outcome of one argument test
type ArgumentResult struct {
	TestID       string
	Tool         string
	Input        string
	Passed       bool
	MissingArgs  []string
	WrongArgs    map[string]string // arg -> "expected X, got Y"
	ForbiddenHit []string
	Err          string
}

// EvalMetrics aggregates one evaluation run
type EvalMetrics struct {
	TotalTests    int
	PassedTests   int
	FailedTests   int
	Accuracy      float64
	ByCategory    map[string]*CategoryMetrics
	ByTool        map[string]*ToolMetrics
	FailedDetails []string
}

// CategoryMetrics contains metrics per category
type CategoryMetrics struct {
	Total  int
	Passed int
	Failed int
}

// ToolMetrics contains metrics per tool
type ToolMetrics struct {
	ExpectedCount  int
	SelectedCount  int
	CorrectCount   int
	FalsePositives int // selected where another tool was expected
	FalseNegatives int // expected but another tool was selected
}

func newMetrics() *EvalMetrics {
	return &EvalMetrics{
		ByCategory: make(map[string]*CategoryMetrics),
		ByTool:     make(map[string]*ToolMetrics),
	}
}

func (m *EvalMetrics) category(name string) *CategoryMetrics {
	if m.ByCategory[name] == nil {
		m.ByCategory[name] = &CategoryMetrics{}
	}
	return m.ByCategory[name]
}

func (m *EvalMetrics) tool(name string) *ToolMetrics {
	if m.ByTool[name] == nil {
		m.ByTool[name] = &ToolMetrics{}
	}
	return m.ByTool[name]
}

func (m *EvalMetrics) record(category string, passed bool, detail string) {
	if passed {
		m.PassedTests++
		m.category(category).Passed++
		return
	}
	m.FailedTests++
	m.category(category).Failed++
	m.FailedDetails = append(m.FailedDetails, detail)
}

func (m *EvalMetrics) finish() {
	if m.TotalTests > 0 {
		m.Accuracy = float64(m.PassedTests) / float64(m.TotalTests)
	}
}

func loadJSON(fsys fs.FS, name string, out any) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("reading %s: %w", name, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parsing %s: %w", name, err)
	}
	return nil
}

// LoadToolSelectionSuite loads tool selection tests from fsys
func LoadToolSelectionSuite(fsys fs.FS) (*ToolSelectionSuite, error) {
	var suite ToolSelectionSuite
	if err := loadJSON(fsys, ToolSelectionFile, &suite); err != nil {
		return nil, err
	}
	return &suite, nil
}

// LoadConfusionPairSuite loads confusion pair tests from fsys
func LoadConfusionPairSuite(fsys fs.FS) (*ConfusionPairSuite, error) {
	var suite ConfusionPairSuite
	if err := loadJSON(fsys, ConfusionPairFile, &suite); err != nil {
		return nil, err
	}
	return &suite, nil
}

// LoadArgumentSuite loads argument correctness tests from fsys
func LoadArgumentSuite(fsys fs.FS) (*ArgumentSuite, error) {
	var suite ArgumentSuite
	if err := loadJSON(fsys, ArgumentFile, &suite); err != nil {
		return nil, err
	}
	return &suite, nil
}

// Suites bundles the three evaluation suites
type Suites struct {
	ToolSelection  *ToolSelectionSuite
	ConfusionPairs *ConfusionPairSuite
	Arguments      *ArgumentSuite
}

// LoadAll loads every suite from fsys
func LoadAll(fsys fs.FS) (*Suites, error) {
	ts, err := LoadToolSelectionSuite(fsys)
	if err != nil {
		return nil, fmt.Errorf("loading tool selection: %w", err)
	}
	cp, err := LoadConfusionPairSuite(fsys)
	if err != nil {
		return nil, fmt.Errorf("loading confusion pairs: %w", err)
	}
	args, err := LoadArgumentSuite(fsys)
	if err != nil {
		return nil, fmt.Errorf("loading arguments: %w", err)
	}
	return &Suites{ToolSelection: ts, ConfusionPairs: cp, Arguments: args}, nil
}

// ToolSelector is implemented by an LLM harness or a stub under test
type ToolSelector interface {
	// SelectTool returns the tool name and arguments chosen for input
	SelectTool(input string) (toolName string, args map[string]any, err error)
}

// EvaluateToolSelection runs tool selection tests against a selector
func EvaluateToolSelection(suite *ToolSelectionSuite, selector ToolSelector) (*EvalMetrics, []ToolSelectionResult) {
	metrics := newMetrics()
	results := make([]ToolSelectionResult, 0, len(suite.Tests))

	for _, test := range suite.Tests {
		metrics.TotalTests++
		metrics.category(test.Category).Total++
		metrics.tool(test.ExpectedTool).ExpectedCount++

		actualTool, actualArgs, err := selector.SelectTool(test.Input)
		result := ToolSelectionResult{
			TestID:       test.ID,
			Input:        test.Input,
			ExpectedTool: test.ExpectedTool,
			ActualTool:   actualTool,
			Passed:       true,
		}

		fail := func(format string, args ...any) {
			result.Passed = false
			result.Errors = append(result.Errors, fmt.Sprintf(format, args...))
		}

		if err != nil {
			fail("selector error: %v", err)
		}

		metrics.tool(actualTool).SelectedCount++
		if actualTool == test.ExpectedTool {
			metrics.tool(test.ExpectedTool).CorrectCount++
		} else {
			fail("wrong tool: expected %s, got %s", test.ExpectedTool, actualTool)
			metrics.tool(test.ExpectedTool).FalseNegatives++
			metrics.tool(actualTool).FalsePositives++
		}

		for _, forbidden := range test.NotTools {
			if actualTool == forbidden {
				fail("selected forbidden tool: %s", forbidden)
			}
		}

		for _, key := range sortedKeys(test.ExpectedArgs) {
			want := test.ExpectedArgs[key]
			got, ok := actualArgs[key]
			switch {
			case !ok:
				fail("missing arg %s (expected %v)", key, want)
			case !compareValues(want, got):
				fail("wrong arg %s: expected %v, got %v", key, want, got)
			}
		}

		metrics.record(test.Category, result.Passed,
			fmt.Sprintf("[%s] %s: %s", test.ID, test.Input, strings.Join(result.Errors, "; ")))
		results = append(results, result)
	}

	metrics.finish()
	return metrics, results
}

// EvaluateConfusionPairs runs confusion pair tests against a selector
func EvaluateConfusionPairs(suite *ConfusionPairSuite, selector ToolSelector) (*EvalMetrics, []ConfusionPairResult) {
	metrics := newMetrics()
	var results []ConfusionPairResult

	for _, pair := range suite.Pairs {
		for _, test := range pair.Tests {
			metrics.TotalTests++
			metrics.category(pair.ID).Total++
			metrics.tool(test.Expected).ExpectedCount++

			actualTool, _, err := selector.SelectTool(test.Input)
			result := ConfusionPairResult{
				PairID:       pair.ID,
				TestInput:    test.Input,
				ExpectedTool: test.Expected,
				ActualTool:   actualTool,
				Reason:       test.Reason,
				Passed:       err == nil && actualTool == test.Expected,
			}

			metrics.tool(actualTool).SelectedCount++
			if result.Passed {
				metrics.tool(test.Expected).CorrectCount++
			} else {
				metrics.tool(test.Expected).FalseNegatives++
				metrics.tool(actualTool).FalsePositives++
			}
			metrics.record(pair.ID, result.Passed,
				fmt.Sprintf("[%s] %s: expected %s, got %s (%s)",
					pair.ID, test.Input, test.Expected, actualTool, test.Reason))
			results = append(results, result)
		}
	}

	metrics.finish()
	return metrics, results
}

// EvaluateArguments runs argument correctness tests against a selector.
// A test fails outright when the selector errors or picks another tool.
func EvaluateArguments(suite *ArgumentSuite, selector ToolSelector) (*EvalMetrics, []ArgumentResult) {
	metrics := newMetrics()
	results := make([]ArgumentResult, 0, len(suite.Tests))

	for _, test := range suite.Tests {
		metrics.TotalTests++
		metrics.category(test.Tool).Total++

		result := ArgumentResult{
			TestID:    test.ID,
			Tool:      test.Tool,
			Input:     test.Input,
			Passed:    true,
			WrongArgs: make(map[string]string),
		}

		actualTool, actualArgs, err := selector.SelectTool(test.Input)
		switch {
		case err != nil:
			result.Passed = false
			result.Err = fmt.Sprintf("selector error: %v", err)
		case actualTool != test.Tool:
			result.Passed = false
			result.Err = fmt.Sprintf("wrong tool: expected %s, got %s", test.Tool, actualTool)
		default:
			checkArguments(test, actualArgs, &result)
		}

		metrics.record(test.Tool, result.Passed,
			fmt.Sprintf("[%s] %s: %s", test.ID, test.Input, result.describe()))
		results = append(results, result)
	}

	metrics.finish()
	return metrics, results
}

func checkArguments(test ArgumentTest, actual map[string]any, result *ArgumentResult) {
	for _, name := range test.RequiredArgs {
		if _, ok := actual[name]; !ok {
			result.Passed = false
			result.MissingArgs = append(result.MissingArgs, name)
		}
	}
	for _, key := range sortedKeys(test.ExpectedArgs) {
		want := test.ExpectedArgs[key]
		got, ok := actual[key]
		switch {
		case !ok:
			result.Passed = false
			result.MissingArgs = append(result.MissingArgs, key)
		case !compareValues(want, got):
			result.Passed = false
			result.WrongArgs[key] = fmt.Sprintf("expected %v, got %v", want, got)
		}
	}
	for _, name := range test.ForbiddenArgs {
		if _, ok := actual[name]; ok {
			result.Passed = false
			result.ForbiddenHit = append(result.ForbiddenHit, name)
		}
	}
}

func (r ArgumentResult) describe() string {
	if r.Err != "" {
		return r.Err
	}
	var parts []string
	if len(r.MissingArgs) > 0 {
		parts = append(parts, fmt.Sprintf("missing: %v", r.MissingArgs))
	}
	for _, k := range sortedKeys(r.WrongArgs) {
		parts = append(parts, fmt.Sprintf("%s: %s", k, r.WrongArgs[k]))
	}
	if len(r.ForbiddenHit) > 0 {
		parts = append(parts, fmt.Sprintf("forbidden: %v", r.ForbiddenHit))
	}
	return strings.Join(parts, "; ")
}

// CoverageReport compares the tools named by the suites with a registry
type CoverageReport struct {
	Covered   []string // registered and exercised
	Uncovered []string // registered but never expected by any test
	Unknown   []string // referenced by a suite but not registered
}

// Coverage checks the suites against the registered tool names
func Coverage(s *Suites, registered []string) CoverageReport {
	referenced := make(map[string]bool)
	if s.ToolSelection != nil {
		for _, t := range s.ToolSelection.Tests {
			referenced[t.ExpectedTool] = true
			for _, n := range t.NotTools {
				referenced[n] = true
			}
		}
	}
	if s.ConfusionPairs != nil {
		for _, p := range s.ConfusionPairs.Pairs {
			for _, n := range p.Tools {
				referenced[n] = true
			}
			for _, t := range p.Tests {
				referenced[t.Expected] = true
			}
		}
	}
	if s.Arguments != nil {
		for _, t := range s.Arguments.Tests {
			referenced[t.Tool] = true
		}
	}

	known := make(map[string]bool, len(registered))
	var report CoverageReport
	for _, name := range registered {
		known[name] = true
		if referenced[name] {
			report.Covered = append(report.Covered, name)
		} else {
			report.Uncovered = append(report.Uncovered, name)
		}
	}
	for name := range referenced {
		if !known[name] {
			report.Unknown = append(report.Unknown, name)
		}
	}
	sort.Strings(report.Covered)
	sort.Strings(report.Uncovered)
	sort.Strings(report.Unknown)
	return report
}

// compareValues compares expected and actual values across JSON number types
func compareValues(expected, actual any) bool {
	if expected == nil || actual == nil {
		return expected == nil && actual == nil
	}

	ev := reflect.ValueOf(expected)
	av := reflect.ValueOf(actual)

	if ef, ok := asFloat(ev); ok {
		if af, ok := asFloat(av); ok {
			return ef == af
		}
	}

	if ev.Kind() == reflect.Slice && av.Kind() == reflect.Slice {
		if ev.Len() != av.Len() {
			return false
		}
		for i := range ev.Len() {
			if !compareValues(ev.Index(i).Interface(), av.Index(i).Interface()) {
				return false
			}
		}
		return true
	}

	return reflect.DeepEqual(expected, actual)
}

func asFloat(v reflect.Value) (float64, bool) {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), true
	case reflect.Float32, reflect.Float64:
		return v.Float(), true
	}
	return 0, false
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// FormatMetrics returns a human-readable summary of evaluation metrics
func FormatMetrics(metrics *EvalMetrics, suiteName string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "\n=== %s ===\n", suiteName)
	fmt.Fprintf(&b, "Total: %d tests\n", metrics.TotalTests)
	fmt.Fprintf(&b, "Passed: %d (%.1f%%)\n", metrics.PassedTests, metrics.Accuracy*100)
	fmt.Fprintf(&b, "Failed: %d\n", metrics.FailedTests)

	if len(metrics.ByCategory) > 0 {
		b.WriteString("\nBy Category:\n")
		for _, cat := range sortedKeys(metrics.ByCategory) {
			m := metrics.ByCategory[cat]
			if m.Total > 0 {
				acc := float64(m.Passed) / float64(m.Total) * 100
				fmt.Fprintf(&b, "  %-28s: %d/%d (%.0f%%)\n", cat, m.Passed, m.Total, acc)
			}
		}
	}

	const maxShown = 10
	if n := len(metrics.FailedDetails); n > 0 {
		details := metrics.FailedDetails
		if n > maxShown {
			fmt.Fprintf(&b, "\nFailed Tests (showing first %d of %d):\n", maxShown, n)
			details = details[:maxShown]
		} else {
			b.WriteString("\nFailed Tests:\n")
		}
		for _, d := range details {
			fmt.Fprintf(&b, "  - %s\n", d)
		}
	}

	return b.String()
}
