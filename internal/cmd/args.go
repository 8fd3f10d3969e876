package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/allanpk716/docx_standards/internal/config"
)

// 应用信息
const (
	AppName    = "docx-standards"
	AppVersion = "1.0.0"
)

// Globals 所有子命令共享的参数
type Globals struct {
	Config  string `short:"c" default:"config.yaml" help:"配置文件路径 (.yaml/.yml/.json)" type:"path"`
	Verbose bool   `short:"v" help:"详细输出"`
	LogMode string `name:"log-mode" default:"dev" enum:"dev,prod" help:"日志格式：dev 为控制台，prod 为 JSON"`
}

// CLI 命令行定义
type CLI struct {
	Globals

	Process    ProcessCmd    `cmd:"" help:"校正单个文档或整个目录"`
	Analyze    AnalyzeCmd    `cmd:"" help:"只计算文档指标，不修改文档"`
	InitConfig InitConfigCmd `cmd:"" name:"init-config" help:"生成配置模板"`
	Version    VersionCmd    `cmd:"" help:"显示版本信息"`
}

// CommandLineArgs process 子命令的输入输出参数
type CommandLineArgs struct {
	InputFile  string `name:"input" short:"i" help:"输入 DOCX 文件路径" type:"path"`
	OutputFile string `name:"output" short:"o" help:"输出 DOCX 文件路径" type:"path"`
	InputDir   string `name:"input-dir" help:"输入目录路径（批量处理）" type:"path"`
	OutputDir  string `name:"output-dir" help:"输出目录路径（批量处理）" type:"path"`
}

// IsBatch 是否为批量模式
func (a *CommandLineArgs) IsBatch() bool {
	return a.InputDir != ""
}

// ValidateArgs 验证命令行参数，缺省的输出路径按 suffix 生成
func ValidateArgs(args *CommandLineArgs, suffix string) error {
	if suffix == "" {
		suffix = config.DefaultOutputSuffix
	}

	hasSingleFile := args.InputFile != "" || args.OutputFile != ""
	hasBatchMode := args.InputDir != "" || args.OutputDir != ""

	if !hasSingleFile && !hasBatchMode {
		return fmt.Errorf("必须指定输入文件或输入目录")
	}

	if hasSingleFile && hasBatchMode {
		return fmt.Errorf("不能同时指定单文件和批量处理模式")
	}

	if hasSingleFile {
		if args.InputFile == "" {
			return fmt.Errorf("单文件模式下必须指定输入文件")
		}
		if args.OutputFile == "" {
			args.OutputFile = GenerateOutputFileName(args.InputFile, suffix)
		}
		if filepath.Clean(args.OutputFile) == filepath.Clean(args.InputFile) {
			return fmt.Errorf("输出文件不能覆盖输入文件")
		}
	}

	if hasBatchMode {
		if args.InputDir == "" {
			return fmt.Errorf("批量模式下必须指定输入目录")
		}
		if args.OutputDir == "" {
			args.OutputDir = filepath.Clean(args.InputDir) + suffix
		}
	}

	return nil
}

// GenerateOutputFileName 生成输出文件名：report.docx -> report_processed.docx
func GenerateOutputFileName(inputFile, suffix string) string {
	ext := filepath.Ext(inputFile)
	base := strings.TrimSuffix(inputFile, ext)
	return base + suffix + ext
}
