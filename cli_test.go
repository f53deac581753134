package zcli

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/versecafe/zcli/completion"
	"github.com/versecafe/zcli/help"
	"github.com/versecafe/zcli/schema"
	"github.com/versecafe/zcli/validation"
)

// testCLI returns a CLI writing to buffers, with an empty environment.
func testCLI(name string, opts ...Option) (*CLI, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer

	opts = append([]Option{WithOutput(&stdout, &stderr), WithEnv(map[string]string{})}, opts...)

	return New(name, opts...), &stdout, &stderr
}

func run(t *testing.T, cli *CLI, argv ...string) int {
	t.Helper()

	code, err := cli.Run(context.Background(), argv)
	require.NoError(t, err)

	return code
}

func TestRunGreeting(t *testing.T) {
	t.Parallel()

	var got Inputs

	cli, _, _ := testCLI("greet")
	cli.Inputs(Schema{
		"name":    schema.Positional(0, schema.String()),
		"verbose": schema.Flag(schema.Bool().Default(false)).Alias("v"),
	}).Action(func(_ context.Context, inv *Invocation) (any, error) {
		got = inv.Inputs
		return nil, nil
	})

	assert.Equal(t, 0, run(t, cli, "World", "-v"))
	assert.Equal(t, Inputs{"name": "World", "verbose": true}, got)
}

func TestRunNestedGlobals(t *testing.T) {
	t.Parallel()

	var got Inputs

	staging := NewCommand("staging").
		GlobalInputs(Schema{"region": schema.Flag(schema.String().Default("eu"))}).
		Action(func(_ context.Context, inv *Invocation) (any, error) {
			got = inv.Inputs
			return nil, nil
		})

	deploy := NewCommand("deploy").
		GlobalInputs(Schema{"force": schema.Flag(schema.Bool().Default(false))}).
		Command("staging", staging)

	cli, _, _ := testCLI("app")
	cli.GlobalInputs(Schema{"debug": schema.Flag(schema.Bool().Default(false))}).
		Command("deploy", deploy)

	assert.Equal(t, 0, run(t, cli, "deploy", "staging", "--debug"))
	assert.Equal(t, Inputs{"debug": true, "force": false, "region": "eu"}, got)
}

func TestRunMissingPositional(t *testing.T) {
	t.Parallel()

	cli, stdout, stderr := testCLI("greet")
	cli.Describe("Greet someone").
		Inputs(Schema{"name": schema.Positional(0, schema.String())}).
		Action(func(context.Context, *Invocation) (any, error) { return nil, nil })

	code := run(t, cli)

	assert.Equal(t, 1, code)
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "error: missing required argument: <name>")
	assert.Contains(t, stderr.String(), "Usage:")
	assert.Contains(t, stderr.String(), "greet <name>")
}

func TestRunEnvPrecedence(t *testing.T) {
	t.Parallel()

	var got Inputs

	build := func(env map[string]string) *CLI {
		cli, _, _ := testCLI("app", WithEnv(env))

		return cli.Inputs(Schema{
			"port":  schema.Flag(schema.Int()).FromEnv("APP_PORT"),
			"debug": schema.Flag(schema.Bool().Default(false)).FromEnv("APP_DEBUG"),
			"tags":  schema.Flag(schema.Array(schema.String()).Optional()).FromEnv("APP_TAGS"),
		}).Action(func(_ context.Context, inv *Invocation) (any, error) {
			got = inv.Inputs
			return nil, nil
		})
	}

	env := map[string]string{"APP_PORT": "8080", "APP_DEBUG": "yes", "APP_TAGS": "a,b"}

	assert.Equal(t, 0, run(t, build(env)))
	assert.Equal(t, Inputs{"port": 8080, "debug": true, "tags": []string{"a", "b"}}, got)

	assert.Equal(t, 0, run(t, build(env), "--port", "9090"))
	assert.Equal(t, 9090, got.Int("port"))
}

func TestRunTraits(t *testing.T) {
	t.Parallel()

	var order []string

	var got Values

	auth := Trait{
		Name:   "auth",
		Inputs: Schema{"token": schema.Flag(schema.String().Default("anonymous"))},
		Resolve: func(_ context.Context, in Inputs, _ Values) (Values, error) {
			order = append(order, "auth")
			return Values{"user": in.String("token")}, nil
		},
	}
	counter := Trait{
		Resolve: func(_ context.Context, _ Inputs, current Values) (Values, error) {
			order = append(order, "counter")
			n, _ := current["n"].(int)

			return Values{"n": n + 1}, nil
		},
	}

	list := NewCommand("list").
		Use(auth, counter, counter).
		Before(func(context.Context, *Invocation) error {
			order = append(order, "before")
			return nil
		}).
		Action(func(_ context.Context, inv *Invocation) (any, error) {
			got = inv.Context
			return nil, nil
		})

	cli, _, _ := testCLI("app")
	cli.Use(auth).Command("list", list)

	assert.Equal(t, 0, run(t, cli, "list", "--token", "alice"))
	assert.Equal(t, []string{"auth", "counter", "counter", "before"}, order)
	assert.Equal(t, Values{"user": "alice", "n": 2}, got)
}

func TestRunVersion(t *testing.T) {
	t.Parallel()

	called := false

	cli, stdout, _ := testCLI("app")
	cli.Version("1.2.3").Action(func(context.Context, *Invocation) (any, error) {
		called = true
		return nil, nil
	})

	assert.Equal(t, 0, run(t, cli, "--version"))
	assert.Equal(t, "app 1.2.3\n", stdout.String())

	stdout.Reset()
	assert.Equal(t, 0, run(t, cli, "-V"))
	assert.Equal(t, "app 1.2.3\n", stdout.String())
	assert.False(t, called)

	// Without a version, the flag is left to the command.
	cli, stdout, _ = testCLI("app")
	cli.Action(func(context.Context, *Invocation) (any, error) {
		called = true
		return nil, nil
	})

	assert.Equal(t, 0, run(t, cli, "--version"))
	assert.Empty(t, stdout.String())
	assert.True(t, called)
}

func TestRunHelp(t *testing.T) {
	t.Parallel()

	cli, stdout, stderr := testCLI("app")
	cli.Describe("An application").
		Command("deploy", NewCommand("deploy").Describe("Deploy it"))

	assert.Equal(t, 0, run(t, cli, "--help"))
	assert.Contains(t, stdout.String(), "An application")
	assert.Contains(t, stdout.String(), "deploy")
	assert.Empty(t, stderr.String())

	// Commands without action print their help.
	stdout.Reset()
	assert.Equal(t, 0, run(t, cli, "deploy"))
	assert.Contains(t, stdout.String(), "Deploy it")
}

func TestRunCompletions(t *testing.T) {
	t.Parallel()

	cli, stdout, _ := testCLI("app")
	cli.Command("deploy", NewCommand("deploy").Describe("Deploy it")).
		Command("destroy", NewCommand("destroy"))

	assert.Equal(t, 0, run(t, cli, "--get-completions", "0", "de"))
	assert.Equal(t, "deploy\tDeploy it\ndestroy\n", stdout.String())

	stdout.Reset()

	custom, out, _ := testCLI("app", WithCompleter(completion.Func(func(_ *Config, req completion.Request) []completion.Candidate {
		return []completion.Candidate{{Value: req.Current}, {Value: "fixed"}}
	})))

	assert.Equal(t, 0, run(t, custom, "--get-completions", "1", "a", "b"))
	assert.Equal(t, "b\nfixed\n", out.String())
}

func TestCompletionRequest(t *testing.T) {
	t.Parallel()

	words, index, found := completionRequest([]string{"--get-completions", "1", "deploy", "st"})
	assert.True(t, found)
	assert.Equal(t, []string{"deploy", "st"}, words)
	assert.Equal(t, 1, index)

	words, index, found = completionRequest([]string{"--get-completions", "x", "deploy"})
	assert.True(t, found)
	assert.Equal(t, []string{"deploy"}, words)
	assert.Equal(t, 1, index)

	_, _, found = completionRequest([]string{"deploy"})
	assert.False(t, found)

	_, _, found = completionRequest([]string{"run", "--", "--get-completions", "0", "x"})
	assert.False(t, found)
}

func TestRunPassthroughCompletionFlag(t *testing.T) {
	t.Parallel()

	var passthrough []string

	cli, stdout, _ := testCLI("app")
	cli.Action(func(_ context.Context, inv *Invocation) (any, error) {
		passthrough = inv.Passthrough
		return nil, nil
	})

	assert.Equal(t, 0, run(t, cli, "--", "--get-completions", "0", "x"))
	assert.Equal(t, []string{"--get-completions", "0", "x"}, passthrough)
	assert.Empty(t, stdout.String())
}

func TestRunVersionBeforeCompletions(t *testing.T) {
	t.Parallel()

	cli, stdout, _ := testCLI("app")
	cli.Version("1.2.3").Command("deploy", NewCommand("deploy"))

	assert.Equal(t, 0, run(t, cli, "--version", "--get-completions", "0", "de"))
	assert.Equal(t, "app 1.2.3\n", stdout.String())
}

func TestRunErrorHandler(t *testing.T) {
	t.Parallel()

	var event ErrorEvent

	cli, _, stderr := testCLI("app", WithStrictFlags())
	cli.Action(func(context.Context, *Invocation) (any, error) { return nil, nil }).
		Command("deploy", NewCommand("deploy").Action(func(context.Context, *Invocation) (any, error) {
			return nil, nil
		})).
		OnError(func(_ context.Context, ev ErrorEvent) bool {
			event = ev
			return true
		})

	assert.Equal(t, 0, run(t, cli, "deploy", "--nope"))
	assert.Empty(t, stderr.String())
	require.ErrorIs(t, event.Err, ErrUnknownFlag)
	assert.Equal(t, []string{"app", "deploy"}, event.Command)

	// Unhandled errors are reported.
	cli.OnError(func(context.Context, ErrorEvent) bool { return false })

	assert.Equal(t, 1, run(t, cli, "deploy", "--nope"))
	assert.Contains(t, stderr.String(), `error: unknown flag: --nope`)
}

func TestRunUserErrors(t *testing.T) {
	t.Parallel()

	cli, _, stderr := testCLI("app")
	cli.Action(func(context.Context, *Invocation) (any, error) {
		return nil, &UserError{Message: "quota exceeded", Code: 3}
	})

	assert.Equal(t, 3, run(t, cli))
	assert.Equal(t, "error: quota exceeded\n", stderr.String())
}

func TestRunOtherErrors(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	handled := false

	cli, _, stderr := testCLI("app")
	cli.Action(func(context.Context, *Invocation) (any, error) { return nil, boom }).
		OnError(func(context.Context, ErrorEvent) bool {
			handled = true
			return true
		})

	code, err := cli.Run(context.Background(), nil)

	assert.Equal(t, 1, code)
	assert.Same(t, boom, err)
	assert.False(t, handled)
	assert.Empty(t, stderr.String())
}

func TestRunUnknownCommand(t *testing.T) {
	t.Parallel()

	cli, _, stderr := testCLI("app")
	cli.Command("deploy", NewCommand("deploy"))

	assert.Equal(t, 1, run(t, cli, "deplyo"))
	assert.Contains(t, stderr.String(), `unknown command "deplyo" for "app" (did you mean "deploy"?)`)

	// Without strict commands, the words are positionals of the root.
	var got Inputs

	lax, _, _ := testCLI("app", WithStrictCommands(false))
	lax.Inputs(Schema{"words": schema.Positional(0, schema.Array(schema.String()))}).
		Action(func(_ context.Context, inv *Invocation) (any, error) {
			got = inv.Inputs
			return nil, nil
		}).
		Command("deploy", NewCommand("deploy"))

	assert.Equal(t, 0, run(t, lax, "deplyo", "now"))
	assert.Equal(t, []string{"deplyo", "now"}, got.Strings("words"))
}

func TestRunTokenizerOptions(t *testing.T) {
	t.Parallel()

	var got Inputs

	action := func(_ context.Context, inv *Invocation) (any, error) {
		got = inv.Inputs
		return nil, nil
	}

	negation := func(opts ...Option) *CLI {
		cli, _, _ := testCLI("app", opts...)

		return cli.Inputs(Schema{"noColor": schema.Flag(schema.Bool().Default(false))}).Action(action)
	}

	assert.Equal(t, 0, run(t, negation(), "--no-color"))
	assert.Equal(t, Inputs{"noColor": false}, got)

	assert.Equal(t, 0, run(t, negation(WithNegation(false)), "--no-color"))
	assert.Equal(t, Inputs{"noColor": true}, got)

	stopEarly := func(opts ...Option) *CLI {
		cli, _, _ := testCLI("app", opts...)

		return cli.Inputs(Schema{
			"cmd":  schema.Positional(0, schema.String()),
			"args": schema.Positional(1, schema.Array(schema.String()).Optional()),
			"v":    schema.Flag(schema.Bool().Default(false)),
			"l":    schema.Flag(schema.Bool().Default(false)),
		}).Action(action)
	}

	assert.Equal(t, 0, run(t, stopEarly(WithStopEarly()), "--v=true", "ls", "x", "-l"))
	assert.Equal(t, "ls", got.String("cmd"))
	assert.Equal(t, []string{"x", "-l"}, got.Strings("args"))
	assert.False(t, got.Bool("l"))

	assert.Equal(t, 0, run(t, stopEarly(), "--v=true", "ls", "x", "-l"))
	assert.Equal(t, []string{"x"}, got.Strings("args"))
	assert.True(t, got.Bool("l"))
}

func TestRunCustomCollaborators(t *testing.T) {
	t.Parallel()

	validator := validation.Func(func(map[string]any, []*schema.Field) (map[string]any, []Issue) {
		return nil, []Issue{{Path: "name", Message: "not allowed"}}
	})
	renderer := help.Func(func(_ *Config, path []string) string { return "custom help\n" })

	cli, _, stderr := testCLI("app", WithValidator(validator), WithHelp(renderer))
	cli.Action(func(context.Context, *Invocation) (any, error) { return nil, nil })

	assert.Equal(t, 1, run(t, cli))
	assert.Contains(t, stderr.String(), "name: not allowed")
	assert.Contains(t, stderr.String(), "custom help")
}

func TestRunLogs(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.DebugLevel)

	cli, _, _ := testCLI("app", WithLogger(zap.New(core)))
	cli.Action(func(context.Context, *Invocation) (any, error) { return nil, nil })

	assert.Equal(t, 0, run(t, cli))

	entries := logs.FilterMessage("run").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "app", entries[0].ContextMap()["cli"])
	assert.NotEmpty(t, entries[0].ContextMap()["invocation"])
	assert.NotEmpty(t, logs.FilterMessage("action").All())
}

func TestConsoleLogger(t *testing.T) {
	t.Parallel()

	logger, err := NewConsoleLogger(true)
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zap.DebugLevel))
}
