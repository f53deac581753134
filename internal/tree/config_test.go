package tree

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/versecafe/zcli/schema"
)

func mustGlobals(t *testing.T, c *Config, fields schema.Schema) *Config {
	t.Helper()

	dup, err := c.WithGlobals(fields)
	require.NoError(t, err)

	return dup
}

func mustSub(t *testing.T, c, sub *Config) *Config {
	t.Helper()

	dup, err := c.WithSubcommand(sub)
	require.NoError(t, err)

	return dup
}

func TestConfigIsImmutable(t *testing.T) {
	t.Parallel()

	base := New("app")
	described := base.WithMeta(Meta{Description: "an app", Aliases: []string{"a"}})
	hooked := described.WithBefore(func(context.Context, *Invocation) error { return nil })

	withInputs, err := hooked.WithInputs(schema.Schema{"name": schema.Positional(0, schema.String())})
	require.NoError(t, err)

	assert.Empty(t, base.Meta.Description)
	assert.Empty(t, described.Before)
	assert.Len(t, hooked.Before, 1)
	assert.Empty(t, hooked.Inputs)
	assert.Contains(t, withInputs.Inputs, "name")
	assert.Equal(t, "name", withInputs.Inputs["name"].Key)

	// Appending to one branch does not leak into a sibling branch.
	first := hooked.WithBefore(func(context.Context, *Invocation) error { return nil })
	second := hooked.WithAfter(func(context.Context, *Invocation, any) error { return nil })

	assert.Len(t, first.Before, 2)
	assert.Len(t, second.Before, 1)
	assert.Len(t, second.After, 1)
}

func TestWithInputsChecksPositionals(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		fields schema.Schema
	}{
		{"gap", schema.Schema{
			"a": schema.Positional(0, schema.String()),
			"b": schema.Positional(2, schema.String()),
		}},
		{"duplicate", schema.Schema{
			"a": schema.Positional(0, schema.String()),
			"b": schema.Positional(0, schema.String()),
		}},
		{"start", schema.Schema{
			"a": schema.Positional(1, schema.String()),
		}},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			_, err := New("app").WithInputs(test.fields)
			require.ErrorIs(t, err, schema.ErrPositionals)

			_, err = New("app").WithGlobals(test.fields)
			require.ErrorIs(t, err, schema.ErrPositionals)
		})
	}
}

func TestPositionalsAcrossGlobalsAndInputs(t *testing.T) {
	t.Parallel()

	root := mustGlobals(t, New("app"), schema.Schema{
		"target": schema.Positional(0, schema.String()),
	})

	_, err := root.WithInputs(schema.Schema{"file": schema.Positional(1, schema.String())})
	require.NoError(t, err)

	_, err = root.WithInputs(schema.Schema{"file": schema.Positional(0, schema.String())})
	require.ErrorIs(t, err, schema.ErrPositionals)
}

func TestGlobalsPropagateThroughSubtree(t *testing.T) {
	t.Parallel()

	staging := New("staging")
	deploy := mustGlobals(t, New("deploy"), schema.Schema{"region": schema.Flag(schema.String())})
	deploy = mustSub(t, deploy, staging)

	root := mustGlobals(t, New("app"), schema.Schema{"debug": schema.Flag(schema.Bool())})
	root = mustSub(t, root, deploy)

	node, ok := root.Find([]string{"deploy", "staging"})
	require.True(t, ok)
	assert.Contains(t, node.Schema(), "debug")
	assert.Contains(t, node.Schema(), "region")

	// Globals added after mounting reach existing subcommands.
	root = mustGlobals(t, root, schema.Schema{"quiet": schema.Flag(schema.Bool())})

	node, ok = root.Find([]string{"deploy", "staging"})
	require.True(t, ok)
	assert.Contains(t, node.Schema(), "quiet")

	// The standalone subtree is left untouched.
	assert.NotContains(t, staging.Schema(), "debug")
	assert.NotContains(t, deploy.Subcommands[0].Schema(), "debug")
}

func TestSubcommandPositionalConflict(t *testing.T) {
	t.Parallel()

	root := mustGlobals(t, New("app"), schema.Schema{"target": schema.Positional(0, schema.String())})

	leaf, err := New("leaf").WithInputs(schema.Schema{"file": schema.Positional(0, schema.String())})
	require.NoError(t, err)

	mid := mustSub(t, New("mid"), leaf)

	_, err = root.WithSubcommand(mid)
	require.ErrorIs(t, err, schema.ErrPositionals)

	var pathErr *PathError
	require.True(t, errors.As(err, &pathErr))
	assert.Equal(t, []string{"mid", "leaf"}, pathErr.Path)
}

func TestSubcommandReplaceAndFind(t *testing.T) {
	t.Parallel()

	root := mustSub(t, New("app"), New("deploy").WithMeta(Meta{Description: "old"}))
	root = mustSub(t, root, New("deploy").WithMeta(Meta{Description: "new", Aliases: []string{"d"}}))
	root = mustSub(t, root, New("secret").WithMeta(Meta{Hidden: true}))

	require.Len(t, root.Subcommands, 2)
	assert.Equal(t, "new", root.Sub("d").Meta.Description)
	assert.Equal(t, []string{"deploy"}, root.SubNames())

	node, ok := root.Find([]string{"deploy", "nope"})
	assert.False(t, ok)
	assert.Equal(t, "deploy", node.Name)
}

func TestNamedTraitDeduplication(t *testing.T) {
	t.Parallel()

	auth := Trait{Name: "auth", Inputs: schema.Schema{"token": schema.Flag(schema.String())}}

	once, err := ApplyTrait(New("app"), auth, false)
	require.NoError(t, err)
	require.NotNil(t, once)

	twice, err := ApplyTrait(once, auth, false)
	require.NoError(t, err)
	assert.Nil(t, twice)

	assert.Len(t, once.AllTraits(), 1)
	assert.Contains(t, once.Inputs, "token")
}

func TestUnnamedTraitsAreNotDeduplicated(t *testing.T) {
	t.Parallel()

	trait := Trait{Inputs: schema.Schema{"verbose": schema.Flag(schema.Bool())}}

	c, err := ApplyTrait(New("app"), trait, false)
	require.NoError(t, err)

	c, err = ApplyTrait(c, trait, false)
	require.NoError(t, err)

	assert.Len(t, c.AllTraits(), 2)
}

func TestTraitsPropagateToSubcommands(t *testing.T) {
	t.Parallel()

	auth := Trait{Name: "auth", Inputs: schema.Schema{"token": schema.Flag(schema.String())}}
	logs := Trait{Name: "logs", Inputs: schema.Schema{"level": schema.Flag(schema.String())}}

	leaf, err := ApplyTrait(New("leaf"), logs, false)
	require.NoError(t, err)

	root, err := ApplyTrait(New("app"), auth, false)
	require.NoError(t, err)

	root = mustSub(t, root, mustSub(t, New("mid"), leaf))

	node, ok := root.Find([]string{"mid", "leaf"})
	require.True(t, ok)

	names := make([]string, 0)
	for _, applied := range node.AllTraits() {
		names = append(names, applied.Trait.Name)
	}

	assert.Equal(t, []string{"auth", "logs"}, names)
	assert.Contains(t, node.Schema(), "token")
	assert.Contains(t, node.Schema(), "level")

	// A trait already inherited is not applied again below.
	again, err := ApplyTrait(node, auth, false)
	require.NoError(t, err)
	assert.Nil(t, again)

	// Traits are not duplicated when the tree is re-propagated.
	root = mustGlobals(t, root, schema.Schema{"debug": schema.Flag(schema.Bool())})
	node, _ = root.Find([]string{"mid", "leaf"})
	assert.Len(t, node.AllTraits(), 2)
}

func TestGlobalTrait(t *testing.T) {
	t.Parallel()

	trait := Trait{Name: "output", Inputs: schema.Schema{"json": schema.Flag(schema.Bool())}}

	root, err := ApplyTrait(mustSub(t, New("app"), New("list")), trait, true)
	require.NoError(t, err)

	assert.Contains(t, root.Globals, "json")
	assert.NotContains(t, root.Inputs, "json")
	assert.Contains(t, root.Sub("list").Schema(), "json")
}

func TestValuesMerge(t *testing.T) {
	t.Parallel()

	base := Values{"a": 1, "b": 2}
	merged := base.Merge(Values{"b": 3, "c": 4})

	assert.Equal(t, Values{"a": 1, "b": 3, "c": 4}, merged)
	assert.Equal(t, Values{"a": 1, "b": 2}, base)
}

func TestInputsAccessors(t *testing.T) {
	t.Parallel()

	in := Inputs{"name": "x", "on": true, "n": 3, "f": 1.5, "list": []string{"a"}, "none": nil}

	assert.True(t, in.Has("name"))
	assert.False(t, in.Has("none"))
	assert.False(t, in.Has("missing"))
	assert.Equal(t, "x", in.String("name"))
	assert.True(t, in.Bool("on"))
	assert.Equal(t, 3, in.Int("n"))
	assert.Equal(t, 1, in.Int("f"))
	assert.InDelta(t, 3.0, in.Float("n"), 0)
	assert.Equal(t, []string{"a"}, in.Strings("list"))
	assert.Empty(t, in.String("on"))
}
