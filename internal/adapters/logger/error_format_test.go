package logger_test

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/stitch/internal/adapters/logger"
	"go.trai.ch/stitch/internal/core/domain"
	"go.trai.ch/zerr"
)

func TestCollectErrorEntries(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want []logger.ErrorEntry
	}{
		{
			name: "sentinel",
			err:  domain.ErrCircularInclude,
			want: []logger.ErrorEntry{{Message: "circular include", Metadata: map[string]any{}}},
		},
		{
			name: "unresolved require",
			err:  unresolvedRequire(),
			want: []logger.ErrorEntry{
				{
					Message: "no file matches logical path",
					Metadata: map[string]any{
						"logical_path": "jquery.js",
						"required_by":  "/app/assets/application.js",
					},
				},
				{Message: "file not found", Metadata: map[string]any{}},
			},
		},
		{
			name: "transform failure over a stdlib cause",
			err: zerr.With(
				zerr.Wrap(errors.New("template: page:1: unexpected EOF"), "failed to apply engine"),
				"engine", "tmpl",
			),
			want: []logger.ErrorEntry{
				{Message: "failed to apply engine", Metadata: map[string]any{"engine": "tmpl"}},
				{Message: "template: page:1: unexpected EOF"},
			},
		},
		{
			name: "metadata on a stdlib error folds into it",
			err:  zerr.With(os.ErrNotExist, "path", "/app/assets/gone.js"),
			want: []logger.ErrorEntry{
				{Message: "file does not exist", Metadata: map[string]any{"path": "/app/assets/gone.js"}},
			},
		},
		{
			name: "joined errors stay one entry",
			err:  errors.Join(domain.ErrCompileFailed, errors.New("users.js: boom")),
			want: []logger.ErrorEntry{{Message: "compile failed\nusers.js: boom"}},
		},
		{
			name: "nil",
			err:  nil,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, logger.CollectErrorEntriesExported(tt.err))
		})
	}
}

func TestFormatErrorEntries(t *testing.T) {
	tests := []struct {
		name    string
		entries []logger.ErrorEntry
		want    string
	}{
		{
			name:    "main error only",
			entries: []logger.ErrorEntry{{Message: "no assets specified"}},
			want:    "Error: no assets specified",
		},
		{
			name: "metadata sorted on main and cause",
			entries: []logger.ErrorEntry{
				{
					Message:  "no file matches logical path",
					Metadata: map[string]any{"required_by": "/app/assets/application.js", "logical_path": "jquery.js"},
				},
				{Message: "file not found", Metadata: map[string]any{"root": "/app/assets"}},
			},
			want: "Error: no file matches logical path\n" +
				"       logical_path: jquery.js\n" +
				"       required_by: /app/assets/application.js\n\n" +
				"  Caused by:\n" +
				"    → file not found\n" +
				"      root: /app/assets",
		},
		{
			name: "multiline messages keep their indent",
			entries: []logger.ErrorEntry{
				{Message: "compile failed\nusers.js: boom"},
				{Message: "yaml: unmarshal errors:\n  line 3"},
			},
			want: "Error: compile failed\n" +
				"       users.js: boom\n\n" +
				"  Caused by:\n" +
				"    → yaml: unmarshal errors:\n" +
				"        line 3",
		},
		{
			name:    "no entries",
			entries: nil,
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, logger.FormatErrorEntriesExported(tt.entries))
		})
	}
}
