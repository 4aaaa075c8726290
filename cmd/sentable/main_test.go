package main

import (
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func findCommand(t *testing.T, app *cli.App, name string) *cli.Command {
	t.Helper()
	for _, cmd := range app.Commands {
		if cmd.Name == name {
			return cmd
		}
	}
	t.Fatalf("command %s not found", name)
	return nil
}

func stringFlag(t *testing.T, cmd *cli.Command, name string) *cli.StringFlag {
	t.Helper()
	for _, flag := range cmd.Flags {
		if f, ok := flag.(*cli.StringFlag); ok && f.Name == name {
			return f
		}
	}
	t.Fatalf("string flag %s not found on %s", name, cmd.Name)
	return nil
}

func intFlag(t *testing.T, cmd *cli.Command, name string) *cli.IntFlag {
	t.Helper()
	for _, flag := range cmd.Flags {
		if f, ok := flag.(*cli.IntFlag); ok && f.Name == name {
			return f
		}
	}
	t.Fatalf("int flag %s not found on %s", name, cmd.Name)
	return nil
}

func TestRunCommandFlags(t *testing.T) {
	app := newApp()
	run := findCommand(t, app, "run")

	t.Run("db is required", func(t *testing.T) {
		dbFlag := stringFlag(t, run, "db")
		assert.True(t, dbFlag.Required)
		assert.Contains(t, dbFlag.Aliases, "d")
	})

	t.Run("input-data defaults to sentiment_data.json", func(t *testing.T) {
		assert.Equal(t, "sentiment_data.json", stringFlag(t, run, "input-data").Value)
	})

	t.Run("container-name defaults to data", func(t *testing.T) {
		assert.Equal(t, "data", stringFlag(t, run, "container-name").Value)
	})

	t.Run("table-name defaults to SentimentResults", func(t *testing.T) {
		assert.Equal(t, "SentimentResults", stringFlag(t, run, "table-name").Value)
	})

	t.Run("classifier-host has default value", func(t *testing.T) {
		assert.Equal(t, "http://localhost:11434/v1", stringFlag(t, run, "classifier-host").Value)
	})

	t.Run("model-name defaults to the reference model", func(t *testing.T) {
		assert.Equal(t, "cardiffnlp/twitter-roberta-base-sentiment-latest",
			stringFlag(t, run, "model-name").Value)
	})

	t.Run("text-field defaults to text", func(t *testing.T) {
		assert.Equal(t, "text", stringFlag(t, run, "text-field").Value)
	})

	t.Run("batch-size has default value of 16", func(t *testing.T) {
		assert.Equal(t, 16, intFlag(t, run, "batch-size").Value)
	})

	t.Run("pool-size has default value of 1", func(t *testing.T) {
		assert.Equal(t, 1, intFlag(t, run, "pool-size").Value)
	})

	t.Run("report-interval has default value of 100", func(t *testing.T) {
		assert.Equal(t, 100, intFlag(t, run, "report-interval").Value)
	})

	t.Run("missing db flag fails", func(t *testing.T) {
		err := app.Run([]string{"sentable", "run"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "db")
	})
}

func TestSummaryCommandFlags(t *testing.T) {
	app := newApp()
	summary := findCommand(t, app, "summary")

	t.Run("db is required", func(t *testing.T) {
		assert.True(t, stringFlag(t, summary, "db").Required)
	})

	t.Run("table-name defaults to SentimentResults", func(t *testing.T) {
		assert.Equal(t, "SentimentResults", stringFlag(t, summary, "table-name").Value)
	})

	t.Run("partition has no default", func(t *testing.T) {
		assert.Empty(t, stringFlag(t, summary, "partition").Value)
	})

	t.Run("missing db flag fails", func(t *testing.T) {
		err := app.Run([]string{"sentable", "summary"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "db")
	})
}

func TestSetupLogger(t *testing.T) {
	t.Run("valid log levels", func(t *testing.T) {
		testCases := []struct {
			input    string
			expected slog.Level
		}{
			{"debug", slog.LevelDebug},
			{"info", slog.LevelInfo},
			{"warn", slog.LevelWarn},
			{"error", slog.LevelError},
		}

		for _, tc := range testCases {
			t.Run(tc.input, func(t *testing.T) {
				app := &cli.App{
					Name: "test",
					Flags: []cli.Flag{
						&cli.StringFlag{
							Name:  "log-level",
							Value: "info",
						},
					},
					Before: setupLogger,
					Action: func(c *cli.Context) error {
						return nil
					},
				}

				err := app.Run([]string{"test", "--log-level", tc.input})
				require.NoError(t, err)
			})
		}
	})

	t.Run("case insensitive log levels", func(t *testing.T) {
		for _, tc := range []string{"DEBUG", "Info", "WaRn", "ERROR"} {
			t.Run(tc, func(t *testing.T) {
				app := &cli.App{
					Name: "test",
					Flags: []cli.Flag{
						&cli.StringFlag{
							Name:  "log-level",
							Value: "info",
						},
					},
					Before: setupLogger,
					Action: func(c *cli.Context) error {
						return nil
					},
				}

				err := app.Run([]string{"test", "--log-level", tc})
				require.NoError(t, err)
			})
		}
	})

	t.Run("invalid log level returns error", func(t *testing.T) {
		app := &cli.App{
			Name: "test",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "log-level",
					Value: "info",
				},
			},
			Before: setupLogger,
			Action: func(c *cli.Context) error {
				return nil
			},
		}

		err := app.Run([]string{"test", "--log-level", "invalid"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
	})
}

func TestMain(m *testing.M) {
	// Run tests
	code := m.Run()
	os.Exit(code)
}
