package echo

import (
	"context"
	"testing"

	"github.com/helioslabs/prodinfo/pkg/tools/toolbox"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEchoReturnsInputVerbatim(t *testing.T) {
	tool := Tool()
	require.Equal(t, "echo", tool.Name)

	cases := []string{
		"x",
		"",
		`{"json":"looking"}`,
		"text with \"quotes\" and\nnewlines",
	}

	for _, text := range cases {
		payload, err := tool.Handler(context.Background(), toolbox.Args{"text": text})
		require.NoError(t, err)
		assert.Equal(t, text, payload)
	}
}
