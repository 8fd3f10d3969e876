package cmd

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateArgs(t *testing.T) {
	tests := []struct {
		name      string
		args      CommandLineArgs
		expected  CommandLineArgs
		expectErr bool
	}{
		{
			name:     "single file with generated output",
			args:     CommandLineArgs{InputFile: "docs/letter.docx"},
			expected: CommandLineArgs{InputFile: "docs/letter.docx", OutputFile: "docs/letter_processed.docx"},
		},
		{
			name:     "single file with explicit output",
			args:     CommandLineArgs{InputFile: "in.docx", OutputFile: "out.docx"},
			expected: CommandLineArgs{InputFile: "in.docx", OutputFile: "out.docx"},
		},
		{
			name:     "batch with generated output dir",
			args:     CommandLineArgs{InputDir: "docs/"},
			expected: CommandLineArgs{InputDir: "docs/", OutputDir: "docs_processed"},
		},
		{name: "nothing", args: CommandLineArgs{}, expectErr: true},
		{name: "mixed modes", args: CommandLineArgs{InputFile: "a.docx", InputDir: "docs"}, expectErr: true},
		{name: "output without input", args: CommandLineArgs{OutputFile: "out.docx"}, expectErr: true},
		{name: "output dir without input dir", args: CommandLineArgs{OutputDir: "out"}, expectErr: true},
		{name: "output overwrites input", args: CommandLineArgs{InputFile: "a.docx", OutputFile: "./a.docx"}, expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := tt.args
			err := ValidateArgs(&args, "_processed")
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, args)
		})
	}
}

func TestValidateArgs_DefaultSuffix(t *testing.T) {
	args := CommandLineArgs{InputFile: filepath.Join("dir", "a.docx")}
	require.NoError(t, ValidateArgs(&args, ""))
	assert.Equal(t, filepath.Join("dir", "a_processed.docx"), args.OutputFile)
}

func TestGenerateOutputFileName(t *testing.T) {
	assert.Equal(t, "report_v2.docx", GenerateOutputFileName("report.docx", "_v2"))
	assert.Equal(t, "noext_processed", GenerateOutputFileName("noext", "_processed"))
}
