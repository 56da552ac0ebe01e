// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRun(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		wantExit   int
		wantStdout string
		wantStderr string
	}{
		{
			name:       "defaults",
			args:       nil,
			wantStdout: "//unpkg.com/vue@3.2.37/dist/vue.runtime.global.prod.js",
		},
		{
			name:       "jsdelivr dev build",
			args:       []string{"-cdn", "jsdelivr", "-version", "3.4.21", "-dev"},
			wantStdout: "//cdn.jsdelivr.net/npm/vue@3.4.21/dist/vue.runtime.global.js",
		},
		{
			name:       "cdnjs strips v prefix",
			args:       []string{"-library", "petitevue", "-cdn", "cdnjs", "-version", "v0.4.1"},
			wantStdout: "//cdnjs.cloudflare.com/ajax/libs/petite-vue/0.4.1/petite-vue.iife.js",
		},
		{
			name:       "local installation",
			args:       []string{"-library", "petitevue", "-installation", "local", "-dev"},
			wantStdout: "/libraries/petite-vue/dist/petite-vue.js",
		},
		{
			name:       "unknown cdn falls back to unpkg",
			args:       []string{"-cdn", "example", "-version", "3.3.0-rc.1"},
			wantStdout: "//unpkg.com/vue@3.3.0-rc.1/dist/vue.runtime.global.prod.js",
			wantStderr: "unknown CDN",
		},
		{
			name:       "bad version",
			args:       []string{"-version", "3.3"},
			wantExit:   1,
			wantStderr: "Version format is not correct.",
		},
		{
			name:       "unknown library",
			args:       []string{"-library", "react"},
			wantExit:   1,
			wantStderr: "unknown library",
		},
		{
			name:       "bad installation",
			args:       []string{"-installation", "bower"},
			wantExit:   2,
			wantStderr: "installation must be",
		},
		{
			name:     "unknown flag",
			args:     []string{"-nope"},
			wantExit: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			code := run(tt.args, &stdout, &stderr)

			assert.Equal(t, tt.wantExit, code, stderr.String())
			if tt.wantStdout != "" {
				assert.Equal(t, tt.wantStdout, strings.TrimSpace(stdout.String()))
			}
			if tt.wantStderr != "" {
				assert.Contains(t, stderr.String(), tt.wantStderr)
			}
		})
	}
}

func TestRun_All(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 0, run([]string{"-all"}, &stdout, &stderr))

	out := stdout.String()
	assert.Contains(t, out, "vue")
	assert.Contains(t, out, "//unpkg.com/vue@3.2.37/dist/vue.runtime.global.prod.js")
	assert.Contains(t, out, "//unpkg.com/petite-vue@0.4.1/dist/petite-vue.iife.js")
}
