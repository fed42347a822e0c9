package toolbox

import (
	"context"
	"fmt"
	"sort"

	"github.com/helioslabs/prodinfo/pkg/toolerr"
)

// ToolBox is the tool registry and dispatcher. It validates inbound arguments
// against each tool's declared parameters, applies defaults, and invokes the
// handler, returning the handler's payload unchanged. The ToolBox holds no
// per-call state; concurrent dispatches are independent.
type ToolBox struct {
	tools map[string]Tool
	mw    []Middleware
}

// New creates an empty ToolBox.
func New() *ToolBox {
	return &ToolBox{
		tools: make(map[string]Tool),
	}
}

// Use appends middleware applied to every dispatched handler. The first
// middleware passed is the outermost wrapper. Use must be called before
// serving traffic; it is not safe to interleave with Dispatch.
func (tb *ToolBox) Use(mw ...Middleware) {
	tb.mw = append(tb.mw, mw...)
}

// Register adds tools to the ToolBox. Registering a name that already exists
// is an error: the registry is assembled once at startup and a duplicate
// means two implementations are fighting over one name.
func (tb *ToolBox) Register(tools ...Tool) error {
	for _, t := range tools {
		if t.Name == "" {
			return fmt.Errorf("toolbox: tool name is required")
		}

		if t.Handler == nil {
			return fmt.Errorf("toolbox: tool %s has no handler", t.Name)
		}

		if _, dup := tb.tools[t.Name]; dup {
			return fmt.Errorf("toolbox: duplicate tool name %q", t.Name)
		}

		tb.tools[t.Name] = t
	}

	return nil
}

// Get returns a tool by name and whether it was found.
func (tb *ToolBox) Get(name string) (Tool, bool) {
	t, ok := tb.tools[name]
	return t, ok
}

// Tools returns all registered tools sorted by name, so protocol listings are
// stable across runs.
func (tb *ToolBox) Tools() []Tool {
	result := make([]Tool, 0, len(tb.tools))
	for _, t := range tb.tools {
		result = append(result, t)
	}

	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })

	return result
}

// Dispatch looks up the named tool, validates args against its parameters,
// and invokes its handler through the registered middleware. Dispatch itself
// only fails with unknown-tool or invalid-arguments errors; whatever the
// handler returns — payload or classified fault — passes through unchanged.
func (tb *ToolBox) Dispatch(ctx context.Context, name string, args Args) (any, error) {
	t, ok := tb.tools[name]
	if !ok {
		return nil, toolerr.Newf(toolerr.KindUnknownTool, "tool not found: %s", name)
	}

	checked, err := t.checkArgs(args)
	if err != nil {
		return nil, err
	}

	h := t.Handler
	for i := len(tb.mw) - 1; i >= 0; i-- {
		h = tb.mw[i](name, h)
	}

	return h(ctx, checked)
}
