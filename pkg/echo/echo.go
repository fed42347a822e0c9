// Package echo provides the echo tool, a pure liveness probe that returns its
// input text unchanged.
package echo

import (
	"context"

	"github.com/helioslabs/prodinfo/pkg/tools/toolbox"
)

// Tool returns the echo tool.
func Tool() toolbox.Tool {
	return toolbox.Tool{
		Name:        "echo",
		Description: "Echo back the provided text unchanged.",
		Params: []toolbox.Param{
			{Name: "text", Type: toolbox.TypeString, Description: "Text to echo back", Required: true},
		},
		Handler: func(_ context.Context, args toolbox.Args) (any, error) {
			return args.String("text"), nil
		},
	}
}
