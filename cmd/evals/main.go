// Command evals summarizes the MCP tool selection evaluation suites.
//
// Usage:
//
//	go run ./cmd/evals -suite all
//	go run ./cmd/evals -dir ./my-evals -verbose
//
// Without -dir the suites embedded in the evals package are used. The command
// reports suite contents and tool coverage against the registered tools. For
// model scoring, implement evals.ToolSelector in an LLM harness.
package main

import (
	"flag"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"github.com/olgasafonova/whatsonchain-mcp-server/evals"
	"github.com/olgasafonova/whatsonchain-mcp-server/tools"
)

func main() {
	dir := flag.String("dir", "", "Directory containing eval JSON files (default: builtin suites)")
	suite := flag.String("suite", "all", "Suite to show: tool_selection, confusion_pairs, arguments, or all")
	verbose := flag.Bool("verbose", false, "Show detailed test information")
	flag.Parse()

	fmt.Println("WhatsOnChain MCP Server - Evaluation Framework")
	fmt.Println("==============================================")
	fmt.Println()

	fsys := evals.Builtin()
	if *dir != "" {
		fsys = os.DirFS(*dir)
	}

	var err error
	switch *suite {
	case "tool_selection":
		err = showToolSelection(fsys, *verbose)
	case "confusion_pairs":
		err = showConfusionPairs(fsys, *verbose)
	case "arguments":
		err = showArguments(fsys, *verbose)
	case "all":
		err = showAll(fsys, *verbose)
	default:
		err = fmt.Errorf("unknown suite: %s", *suite)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printCounts(title string, counts map[string]int, width int) {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fmt.Println(title)
	for _, k := range keys {
		fmt.Printf("  %-*s: %d\n", width, k, counts[k])
	}
	fmt.Println()
}

func showToolSelection(fsys fs.FS, verbose bool) error {
	suite, err := evals.LoadToolSelectionSuite(fsys)
	if err != nil {
		return err
	}

	fmt.Printf("Tool Selection Suite: %s\n", suite.Name)
	fmt.Printf("Version: %s\n", suite.Version)
	fmt.Printf("Description: %s\n", suite.Description)
	fmt.Printf("Total Tests: %d\n", len(suite.Tests))
	fmt.Println()

	categories := make(map[string]int)
	byTool := make(map[string]int)
	for _, test := range suite.Tests {
		categories[test.Category]++
		byTool[test.ExpectedTool]++
	}
	printCounts("Tests by Category:", categories, 10)
	printCounts("Tests by Tool:", byTool, 24)

	if verbose {
		fmt.Println("Test Cases:")
		for _, test := range suite.Tests {
			fmt.Printf("  [%s] %s\n", test.ID, test.Input)
			fmt.Printf("    → %s\n", test.ExpectedTool)
			if len(test.NotTools) > 0 {
				fmt.Printf("    ✗ %v\n", test.NotTools)
			}
		}
	}
	return nil
}

func showConfusionPairs(fsys fs.FS, verbose bool) error {
	suite, err := evals.LoadConfusionPairSuite(fsys)
	if err != nil {
		return err
	}

	total := 0
	for _, pair := range suite.Pairs {
		total += len(pair.Tests)
	}

	fmt.Printf("Confusion Pairs Suite: %s\n", suite.Name)
	fmt.Printf("Version: %s\n", suite.Version)
	fmt.Printf("Total Pairs: %d\n", len(suite.Pairs))
	fmt.Printf("Total Tests: %d\n", total)

	for _, pair := range suite.Pairs {
		fmt.Printf("\n  %s:\n", pair.ID)
		fmt.Printf("    Tools: %v\n", pair.Tools)
		fmt.Printf("    Rule: %s\n", pair.Disambiguation)
		fmt.Printf("    Tests: %d\n", len(pair.Tests))

		if verbose {
			for _, test := range pair.Tests {
				fmt.Printf("      %q\n", test.Input)
				fmt.Printf("        → %s (%s)\n", test.Expected, test.Reason)
			}
		}
	}
	fmt.Println()
	return nil
}

func showArguments(fsys fs.FS, verbose bool) error {
	suite, err := evals.LoadArgumentSuite(fsys)
	if err != nil {
		return err
	}

	fmt.Printf("Argument Suite: %s\n", suite.Name)
	fmt.Printf("Version: %s\n", suite.Version)
	fmt.Printf("Total Tests: %d\n", len(suite.Tests))
	fmt.Println()

	byTool := make(map[string]int)
	for _, test := range suite.Tests {
		byTool[test.Tool]++
	}
	printCounts("Tests by Tool:", byTool, 24)

	rules := suite.ValidationRules
	fmt.Println("Validation Rules:")
	fmt.Printf("  Hash Format: %s\n", rules.HashFormat)
	fmt.Printf("  Address Format: %s\n", rules.AddressFormat)
	fmt.Printf("  Amount Handling: %s\n", rules.AmountHandling)
	fmt.Printf("  Bulk Limit: %s\n", rules.BulkLimit)
	fmt.Println()

	if verbose {
		fmt.Println("Test Cases:")
		for _, test := range suite.Tests {
			fmt.Printf("  [%s] %s\n", test.ID, test.Input)
			fmt.Printf("    Tool: %s\n", test.Tool)
			fmt.Printf("    Required: %v\n", test.RequiredArgs)
			fmt.Printf("    Expected: %v\n", test.ExpectedArgs)
			if len(test.ForbiddenArgs) > 0 {
				fmt.Printf("    Forbidden: %v\n", test.ForbiddenArgs)
			}
			if test.ArgNotes != "" {
				fmt.Printf("    Notes: %s\n", test.ArgNotes)
			}
		}
	}
	return nil
}

func showAll(fsys fs.FS, verbose bool) error {
	suites, err := evals.LoadAll(fsys)
	if err != nil {
		return err
	}

	confusionTests := 0
	for _, pair := range suites.ConfusionPairs.Pairs {
		confusionTests += len(pair.Tests)
	}
	total := len(suites.ToolSelection.Tests) + confusionTests + len(suites.Arguments.Tests)

	fmt.Println("Summary:")
	fmt.Println("--------")
	fmt.Printf("Tool Selection Tests:   %d\n", len(suites.ToolSelection.Tests))
	fmt.Printf("Confusion Pair Tests:   %d (across %d pairs)\n", confusionTests, len(suites.ConfusionPairs.Pairs))
	fmt.Printf("Argument Tests:         %d\n", len(suites.Arguments.Tests))
	fmt.Printf("──────────────────────────\n")
	fmt.Printf("Total Evaluation Tests: %d\n", total)
	fmt.Println()

	names := make([]string, 0, len(tools.AllTools))
	for _, spec := range tools.AllTools {
		names = append(names, spec.Name)
	}
	report := evals.Coverage(suites, names)

	fmt.Printf("Tool Coverage: %d of %d registered tools\n", len(report.Covered), len(names))
	for _, name := range report.Uncovered {
		fmt.Printf("  ✗ no eval case: %s\n", name)
	}
	for _, name := range report.Unknown {
		fmt.Printf("  ? not registered: %s\n", name)
	}
	if verbose {
		for _, name := range report.Covered {
			fmt.Printf("  ✓ %s\n", name)
		}
	}

	fmt.Println()
	fmt.Println("To score a model, implement the evals.ToolSelector interface")
	fmt.Println("and call EvaluateToolSelection, EvaluateConfusionPairs and EvaluateArguments")

	if len(report.Unknown) > 0 {
		return fmt.Errorf("%d suite references to unregistered tools", len(report.Unknown))
	}
	return nil
}
