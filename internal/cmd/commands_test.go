package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allanpk716/docx_standards/internal/config"
	"github.com/allanpk716/docx_standards/internal/domain"
)

func captureStdout(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := Stdout
	Stdout = &buf
	t.Cleanup(func() { Stdout = old })
	return &buf
}

func TestCLI_Parse(t *testing.T) {
	input := filepath.Join(t.TempDir(), "a.docx")
	require.NoError(t, os.WriteFile(input, []byte("x"), 0644))

	tests := []struct {
		name    string
		args    []string
		command string
	}{
		{"process single", []string{"process", "-i", "a.docx"}, "process"},
		{"process batch", []string{"-c", "cfg.json", "process", "--input-dir", "docs"}, "process"},
		{"analyze", []string{"analyze", input, "--json"}, "analyze <input>"},
		{"init config", []string{"init-config", "--template", "full"}, "init-config"},
		{"version", []string{"version"}, "version"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cli CLI
			parser, err := kong.New(&cli, kong.Name(AppName))
			require.NoError(t, err)

			ctx, err := parser.Parse(tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.command, ctx.Command())
		})
	}
}

func TestCLI_ParseInvalidTemplate(t *testing.T) {
	var cli CLI
	parser, err := kong.New(&cli, kong.Name(AppName))
	require.NoError(t, err)

	_, err = parser.Parse([]string{"init-config", "--template", "huge"})
	assert.Error(t, err)
}

func TestInitConfigCmd_Run(t *testing.T) {
	out := captureStdout(t)
	path := filepath.Join(t.TempDir(), "config.yaml")

	c := &InitConfigCmd{Output: path, Template: config.TemplateFull}
	require.NoError(t, c.Run())
	assert.Contains(t, out.String(), path)

	cfg, err := config.NewConfigManager().LoadConfig(path)
	require.NoError(t, err)
	assert.True(t, cfg.CommunicationsStandards.Branding.IsEnabled())

	assert.Error(t, c.Run(), "已存在的文件需要 --force")

	c.Force = true
	require.NoError(t, c.Run())
	matches, err := filepath.Glob(filepath.Join(filepath.Dir(path), "config_backup_*.yaml"))
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestProcessCmd_InvalidConfigAborts(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(`project_name: ""`), 0644))

	input := filepath.Join(dir, "a.docx")
	require.NoError(t, os.WriteFile(input, []byte("x"), 0644))

	c := &ProcessCmd{CommandLineArgs: CommandLineArgs{InputFile: input}}
	err := c.Run(&Globals{Config: configPath, LogMode: "prod"})

	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
	assert.NoFileExists(t, filepath.Join(dir, "a_processed.docx"))
}

func TestVersionCmd_Run(t *testing.T) {
	out := captureStdout(t)
	require.NoError(t, (&VersionCmd{}).Run())
	assert.Equal(t, AppName+" v"+AppVersion+"\n", out.String())
}
