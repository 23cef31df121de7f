package console

import (
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatUSD(t *testing.T) {
	cases := []struct {
		amount float64
		want   string
	}{
		{0, "$0.00"},
		{5, "$5.00"},
		{999.999, "$1,000.00"},
		{1234.5, "$1,234.50"},
		{1234567.891, "$1,234,567.89"},
		{-1234.5, "-$1,234.50"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatUSD(tc.amount), "amount %v", tc.amount)
	}
}

func TestLogMessagesDoNotWriteToStdout(t *testing.T) {
	origStdout := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w
	defer func() { os.Stdout = origStdout }()

	c := NewConsole()
	c.LogInfo("info %d", 1)
	c.LogWarning("warning")
	c.LogError("error")
	c.LogSuccess("success")

	require.NoError(t, w.Close())
	out, readErr := io.ReadAll(r)
	os.Stdout = origStdout
	require.NoError(t, readErr)

	// stdout fica reservado para a saída do relatório.
	assert.Empty(t, string(out))
}

func TestTableRender(t *testing.T) {
	table := NewConsole().CreateTable()
	table.AddColumn("Service")
	table.AddColumn("Cost")
	table.AddRow("EC2", "$10.00")
	table.AddRow("S3", 5)

	rendered := table.Render()

	assert.Contains(t, rendered, "Service")
	assert.Contains(t, rendered, "EC2")
	assert.Contains(t, rendered, "$10.00")
	assert.Contains(t, rendered, "5")
}
