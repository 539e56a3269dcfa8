package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func TestRunRejectsWrongArgumentCount(t *testing.T) {
	cases := []struct {
		name string
		args []string
	}{
		{name: "no arguments", args: []string{"unitysweep"}},
		{name: "missing log path", args: []string{"unitysweep", "localhost", "27017", "user", "pass"}},
		{name: "extra argument", args: []string{"unitysweep", "localhost", "27017", "user", "pass", "log.txt", "extra"}},
	}

	for _, c := range cases {
		a := newApp()
		a.ExitErrHandler = func(*cli.Context, error) {}

		err := a.Run(c.args)

		require.Error(t, err, c.name)
		var exit cli.ExitCoder
		require.ErrorAs(t, err, &exit, c.name)
		assert.Equal(t, 2, exit.ExitCode(), c.name)
	}
}

func TestDryRunIsTheDefault(t *testing.T) {
	for _, f := range newApp().Flags {
		if b, ok := f.(*cli.BoolFlag); ok && b.Name == "dry-run" {
			assert.True(t, b.Value)
			return
		}
	}
	t.Fatal("dry-run flag not found")
}
