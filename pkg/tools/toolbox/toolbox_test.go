package toolbox

import (
	"context"
	"testing"

	"github.com/helioslabs/prodinfo/pkg/toolerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func echoTool() Tool {
	return Tool{
		Name:        "echo",
		Description: "Echoes text back",
		Params: []Param{
			{Name: "text", Type: TypeString, Required: true},
		},
		Handler: func(_ context.Context, args Args) (any, error) {
			return args.String("text"), nil
		},
	}
}

func convertTool(got *Args) Tool {
	return Tool{
		Name: "convert",
		Params: []Param{
			{Name: "source_currency", Type: TypeString, Required: true},
			{Name: "destination_currency", Type: TypeString, Required: true},
			{Name: "amount", Type: TypeNumber, Default: 1.0},
		},
		Handler: func(_ context.Context, args Args) (any, error) {
			*got = args
			return nil, nil
		},
	}
}

func TestRegisterAndGet(t *testing.T) {
	tb := New()
	require.NoError(t, tb.Register(echoTool()))

	got, ok := tb.Get("echo")
	assert.True(t, ok)
	assert.Equal(t, "echo", got.Name)
}

func TestRegisterDuplicateName(t *testing.T) {
	tb := New()
	require.NoError(t, tb.Register(echoTool()))

	err := tb.Register(echoTool())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `duplicate tool name "echo"`)
}

func TestRegisterRejectsInvalidTools(t *testing.T) {
	tb := New()

	err := tb.Register(Tool{Handler: func(context.Context, Args) (any, error) { return nil, nil }})
	assert.ErrorContains(t, err, "name is required")

	err = tb.Register(Tool{Name: "broken"})
	assert.ErrorContains(t, err, "has no handler")
}

func TestToolsSortedByName(t *testing.T) {
	tb := New()
	noop := func(context.Context, Args) (any, error) { return nil, nil }
	require.NoError(t, tb.Register(
		Tool{Name: "weather", Handler: noop},
		Tool{Name: "echo", Handler: noop},
		Tool{Name: "products", Handler: noop},
	))

	tools := tb.Tools()
	require.Len(t, tools, 3)
	assert.Equal(t, "echo", tools[0].Name)
	assert.Equal(t, "products", tools[1].Name)
	assert.Equal(t, "weather", tools[2].Name)
}

func TestDispatchUnknownTool(t *testing.T) {
	tb := New()

	_, err := tb.Dispatch(context.Background(), "missing", Args{})
	require.Error(t, err)
	assert.Equal(t, toolerr.KindUnknownTool, toolerr.KindOf(err))
	assert.Contains(t, err.Error(), "missing")
}

func TestDispatchEcho(t *testing.T) {
	tb := New()
	require.NoError(t, tb.Register(echoTool()))

	for _, text := range []string{"x", "", `{"nested":"json"}`, "line\nbreak"} {
		payload, err := tb.Dispatch(context.Background(), "echo", Args{"text": text})
		require.NoError(t, err)
		assert.Equal(t, text, payload)
	}
}

func TestDispatchMissingRequired(t *testing.T) {
	tb := New()
	var got Args
	require.NoError(t, tb.Register(convertTool(&got)))

	_, err := tb.Dispatch(context.Background(), "convert", Args{"amount": 5.0})
	require.Error(t, err)
	assert.Equal(t, toolerr.KindInvalidArguments, toolerr.KindOf(err))
	// Both offending fields are listed, sorted.
	assert.Contains(t, err.Error(), "destination_currency, source_currency")
}

func TestDispatchTypeMismatch(t *testing.T) {
	tb := New()
	var got Args
	require.NoError(t, tb.Register(convertTool(&got)))

	_, err := tb.Dispatch(context.Background(), "convert", Args{
		"source_currency":      "usd",
		"destination_currency": "eur",
		"amount":               "ten",
	})
	require.Error(t, err)
	assert.Equal(t, toolerr.KindInvalidArguments, toolerr.KindOf(err))
	assert.Contains(t, err.Error(), "amount")
}

func TestDispatchUndeclaredArgument(t *testing.T) {
	tb := New()
	require.NoError(t, tb.Register(echoTool()))

	_, err := tb.Dispatch(context.Background(), "echo", Args{"text": "hi", "volume": 11.0})
	require.Error(t, err)
	assert.Equal(t, toolerr.KindInvalidArguments, toolerr.KindOf(err))
	assert.Contains(t, err.Error(), "volume")
}

func TestDispatchAppliesDefault(t *testing.T) {
	tb := New()
	var got Args
	require.NoError(t, tb.Register(convertTool(&got)))

	_, err := tb.Dispatch(context.Background(), "convert", Args{
		"source_currency":      "usd",
		"destination_currency": "eur",
	})
	require.NoError(t, err)
	assert.Equal(t, 1.0, got.Float("amount"))
}

func TestDispatchCoercesIntToNumber(t *testing.T) {
	tb := New()
	var got Args
	require.NoError(t, tb.Register(convertTool(&got)))

	_, err := tb.Dispatch(context.Background(), "convert", Args{
		"source_currency":      "usd",
		"destination_currency": "eur",
		"amount":               10,
	})
	require.NoError(t, err)
	assert.Equal(t, 10.0, got.Float("amount"))
}

func TestDispatchOmittedOptionalWithoutDefault(t *testing.T) {
	tb := New()
	var got Args
	require.NoError(t, tb.Register(Tool{
		Name: "list",
		Params: []Param{
			{Name: "user_id", Type: TypeString, Required: true},
			{Name: "name", Type: TypeString},
		},
		Handler: func(_ context.Context, args Args) (any, error) {
			got = args
			return nil, nil
		},
	}))

	_, err := tb.Dispatch(context.Background(), "list", Args{"user_id": "u1"})
	require.NoError(t, err)

	_, present := got["name"]
	assert.False(t, present)
	assert.Equal(t, "", got.String("name"))
}

func TestDispatchPassesHandlerErrorThrough(t *testing.T) {
	tb := New()
	handlerErr := toolerr.Newf(toolerr.KindUpstreamUnavailable, "API request failed: timeout")
	require.NoError(t, tb.Register(Tool{
		Name: "fail",
		Handler: func(context.Context, Args) (any, error) {
			return nil, handlerErr
		},
	}))

	_, err := tb.Dispatch(context.Background(), "fail", Args{})
	assert.Same(t, handlerErr, err)
}
