package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSchemas = `
user:
  labels:
    email: E-mail
  properties:
    email: [Required, Email]
    age: [Optional, ToInt, {Min: 18}]
    address: [Optional, {nested: address}]
address:
  properties:
    city: [Required]
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

type output struct {
	File    string `json:"file"`
	Success bool   `json:"success"`
	Errors  []struct {
		Path    string `json:"path"`
		Message string `json:"message"`
	} `json:"errors"`
}

func decodeReports(t *testing.T, out *bytes.Buffer) []output {
	t.Helper()
	var reports []output
	dec := json.NewDecoder(out)
	for dec.More() {
		var r output
		require.NoError(t, dec.Decode(&r))
		reports = append(reports, r)
	}
	return reports
}

func TestRun(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")
	dir := t.TempDir()
	schemas := writeFile(t, dir, "schemas.yaml", testSchemas)
	valid := writeFile(t, dir, "valid.json", `{"email": "ada@example.com", "age": "36"}`)
	invalid := writeFile(t, dir, "invalid.json", `{"email": "nope", "age": 12, "address": {"city": ""}}`)

	t.Run("valid document", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		code := run(context.Background(), []string{"-schemas", schemas, "-schema", "user", valid}, nil, &stdout, &stderr)

		require.Equal(t, exitOK, code, stderr.String())
		reports := decodeReports(t, &stdout)
		require.Len(t, reports, 1)
		assert.True(t, reports[0].Success)
		assert.Equal(t, valid, reports[0].File)
	})

	t.Run("invalid document", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		code := run(context.Background(), []string{"-schemas", schemas, "-schema", "user", valid, invalid}, nil, &stdout, &stderr)

		require.Equal(t, exitInvalid, code)
		reports := decodeReports(t, &stdout)
		require.Len(t, reports, 2)
		assert.True(t, reports[0].Success)
		assert.False(t, reports[1].Success)

		var paths []string
		for _, e := range reports[1].Errors {
			paths = append(paths, e.Path)
		}
		assert.Equal(t, []string{"email", "age", "address.city"}, paths)
		assert.Equal(t, "E-mail must be a valid email address", reports[1].Errors[0].Message)
	})

	t.Run("stdin", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		stdin := strings.NewReader(`{"email": ""}`)
		code := run(context.Background(), []string{"-schemas", schemas, "-schema", "user"}, stdin, &stdout, &stderr)

		require.Equal(t, exitInvalid, code)
		reports := decodeReports(t, &stdout)
		require.Len(t, reports, 1)
		assert.Equal(t, "-", reports[0].File)
	})

	t.Run("translated messages", func(t *testing.T) {
		i18nDir := filepath.Join(dir, "translations")
		writeFile(t, i18nDir, "fr.yaml", "fr:\n  validation:\n    required: \"%{field} est obligatoire\"\n")

		var stdout, stderr bytes.Buffer
		stdin := strings.NewReader(`{"email": ""}`)
		code := run(context.Background(), []string{"-schemas", schemas, "-schema", "user", "-locale", "fr", "-i18n", i18nDir}, stdin, &stdout, &stderr)

		require.Equal(t, exitInvalid, code, stderr.String())
		reports := decodeReports(t, &stdout)
		require.Len(t, reports, 1)
		require.NotEmpty(t, reports[0].Errors)
		assert.Equal(t, "E-mail est obligatoire", reports[0].Errors[0].Message)
	})
}

func TestRun_UsageErrors(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")
	dir := t.TempDir()
	schemas := writeFile(t, dir, "schemas.yaml", testSchemas)

	tests := []struct {
		name string
		args []string
	}{
		{"missing schemas flag", []string{"doc.json"}},
		{"unknown flag", []string{"-nope"}},
		{"ambiguous schema", []string{"-schemas", schemas}},
		{"unknown schema", []string{"-schemas", schemas, "-schema", "order"}},
		{"missing schema file", []string{"-schemas", filepath.Join(dir, "missing.yaml"), "-schema", "user"}},
		{"missing document", []string{"-schemas", schemas, "-schema", "user", filepath.Join(dir, "missing.json")}},
		{"missing env file", []string{"-env", filepath.Join(dir, "missing.env"), "-schemas", schemas}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			code := run(context.Background(), tt.args, strings.NewReader("{}"), &stdout, &stderr)
			assert.Equal(t, exitUsage, code)
		})
	}
}

func TestRun_ListRules(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"-rules"}, nil, &stdout, &stderr)

	require.Equal(t, exitOK, code)
	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	assert.Contains(t, lines, "Required")
	assert.Contains(t, lines, "ValidateNested")
}
