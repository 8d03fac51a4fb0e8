// Package tools provides a metadata-driven registry for MCP tool definitions.
// It keeps main.go small by defining tools declaratively and
// using type-safe handlers to register them.
package tools

// ToolSpec defines a tool's metadata for declarative registration.
// Each spec maps to a woc.Client wrapper method with matching Args/Result types.
type ToolSpec struct {
	// Name is the MCP tool name (e.g., "woc_get_tx")
	Name string

	// Method is the client method name without the MCP suffix (e.g., "GetTx")
	Method string

	// Description is the tool description shown to LLMs
	Description string

	// Title is the human-readable tool title for annotations
	Title string

	// Category groups tools logically (chain, block, tx, address, ...)
	Category string

	// Legacy marks tools only the legacy endpoint profile serves
	Legacy bool

	// ReadOnly indicates the tool doesn't change chain state
	ReadOnly bool

	// Destructive indicates the tool can delete or overwrite data
	Destructive bool

	// Idempotent indicates repeated calls have the same effect
	Idempotent bool

	// OpenWorld indicates the tool accesses external resources
	OpenWorld bool
}

// ToolsByCategory returns the specs in category.
func ToolsByCategory(category string) []ToolSpec {
	var out []ToolSpec
	for _, spec := range AllTools {
		if spec.Category == category {
			out = append(out, spec)
		}
	}
	return out
}

// ToolsForProfile returns the specs a client on the given profile can serve.
func ToolsForProfile(legacy bool) []ToolSpec {
	out := make([]ToolSpec, 0, len(AllTools))
	for _, spec := range AllTools {
		if spec.Legacy && !legacy {
			continue
		}
		out = append(out, spec)
	}
	return out
}

// ptr is a helper to create a pointer to a value.
func ptr[T any](v T) *T {
	return &v
}
