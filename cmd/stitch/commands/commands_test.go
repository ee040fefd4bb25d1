package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/stitch/cmd/stitch/commands"
	"go.trai.ch/stitch/internal/app"
	"go.trai.ch/stitch/internal/build"
)

type mockApp struct {
	compileFunc func(ctx context.Context, paths []string, opts app.CompileOptions) error
	staleFunc   func(ctx context.Context, paths []string) (map[string]bool, error)
	watchFunc   func(ctx context.Context, paths []string, opts app.CompileOptions) error
	listFunc    func(ctx context.Context) ([]string, error)
	cleanFunc   func(ctx context.Context) error
}

func (m *mockApp) Compile(ctx context.Context, paths []string, opts app.CompileOptions) error {
	if m.compileFunc != nil {
		return m.compileFunc(ctx, paths, opts)
	}
	return nil
}

func (m *mockApp) Stale(ctx context.Context, paths []string) (map[string]bool, error) {
	if m.staleFunc != nil {
		return m.staleFunc(ctx, paths)
	}
	return map[string]bool{}, nil
}

func (m *mockApp) Watch(ctx context.Context, paths []string, opts app.CompileOptions) error {
	if m.watchFunc != nil {
		return m.watchFunc(ctx, paths, opts)
	}
	return nil
}

func (m *mockApp) List(ctx context.Context) ([]string, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil, nil
}

func (m *mockApp) Clean(ctx context.Context) error {
	if m.cleanFunc != nil {
		return m.cleanFunc(ctx)
	}
	return nil
}

func execute(t *testing.T, a commands.Application, args ...string) (string, error) {
	t.Helper()
	cli := commands.New(a)
	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs(args)
	err := cli.Execute(context.Background())
	return buf.String(), err
}

func TestCommands_Compile(t *testing.T) {
	t.Run("wires flags correctly", func(t *testing.T) {
		var capturedOpts app.CompileOptions
		var capturedPaths []string

		mock := &mockApp{
			compileFunc: func(_ context.Context, paths []string, opts app.CompileOptions) error {
				capturedOpts = opts
				capturedPaths = paths
				return nil
			},
		}

		_, err := execute(t, mock, "compile", "application.js", "styles.css", "--no-cache", "-o", "dist")
		require.NoError(t, err)
		assert.Equal(t, []string{"application.js", "styles.css"}, capturedPaths)
		assert.True(t, capturedOpts.NoCache)
		assert.Equal(t, "dist", capturedOpts.OutputDir)
		assert.Nil(t, capturedOpts.Stdout)
	})

	t.Run("stdout uses the command output", func(t *testing.T) {
		mock := &mockApp{
			compileFunc: func(_ context.Context, _ []string, opts app.CompileOptions) error {
				require.NotNil(t, opts.Stdout)
				_, err := opts.Stdout.Write([]byte("app();\n"))
				return err
			},
		}

		out, err := execute(t, mock, "compile", "--stdout", "application.js")
		require.NoError(t, err)
		assert.Equal(t, "app();\n", out)
	})

	t.Run("returns error on compile failure", func(t *testing.T) {
		mock := &mockApp{
			compileFunc: func(context.Context, []string, app.CompileOptions) error {
				return errors.New("simulated error")
			},
		}

		_, err := execute(t, mock, "compile", "application.js")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "simulated error")
	})

	t.Run("shows usage when no paths provided", func(t *testing.T) {
		mock := &mockApp{
			compileFunc: func(context.Context, []string, app.CompileOptions) error {
				panic("should not be called")
			},
		}

		out, err := execute(t, mock, "compile")
		require.NoError(t, err)
		assert.Contains(t, out, "Usage:")
	})
}

func TestCommands_Stale(t *testing.T) {
	mock := &mockApp{
		staleFunc: func(_ context.Context, paths []string) (map[string]bool, error) {
			assert.Equal(t, []string{"b.js", "a.js"}, paths)
			return map[string]bool{"a.js": true, "b.js": false}, nil
		},
	}

	out, err := execute(t, mock, "stale", "b.js", "a.js")
	require.NoError(t, err)
	assert.Equal(t, "✓ b.js\n~ a.js\n", out)

	_, err = execute(t, mock, "stale")
	require.Error(t, err)
}

func TestCommands_Watch(t *testing.T) {
	var capturedOpts app.CompileOptions
	mock := &mockApp{
		watchFunc: func(_ context.Context, paths []string, opts app.CompileOptions) error {
			assert.Equal(t, []string{"application.js"}, paths)
			capturedOpts = opts
			return nil
		},
	}

	_, err := execute(t, mock, "watch", "application.js", "--output", "dist")
	require.NoError(t, err)
	assert.Equal(t, "dist", capturedOpts.OutputDir)
}

func TestCommands_List(t *testing.T) {
	mock := &mockApp{
		listFunc: func(context.Context) ([]string, error) {
			return []string{"application.js", "styles.css"}, nil
		},
	}

	out, err := execute(t, mock, "list")
	require.NoError(t, err)
	assert.Equal(t, "application.js\nstyles.css\n", out)

	_, err = execute(t, &mockApp{
		listFunc: func(context.Context) ([]string, error) { return nil, errors.New("no config") },
	}, "list")
	require.EqualError(t, err, "no config")
}

func TestCommands_Clean(t *testing.T) {
	called := false
	mock := &mockApp{
		cleanFunc: func(context.Context) error {
			called = true
			return nil
		},
	}

	_, err := execute(t, mock, "clean")
	require.NoError(t, err)
	assert.True(t, called)
}

func TestCommands_Version(t *testing.T) {
	out, err := execute(t, &mockApp{}, "version")
	require.NoError(t, err)
	assert.Contains(t, out, build.Version)
	assert.Contains(t, out, "stitch version")
}
