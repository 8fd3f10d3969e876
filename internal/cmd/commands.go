package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/allanpk716/docx_standards/internal/config"
	"github.com/allanpk716/docx_standards/internal/logger"
	"github.com/allanpk716/docx_standards/internal/processor"
	"github.com/allanpk716/docx_standards/internal/rules"
)

// Stdout 命令输出位置
var Stdout io.Writer = os.Stdout

// ProcessCmd 校正文档
type ProcessCmd struct {
	CommandLineArgs `embed:""`
}

// Run 加载配置并编译规则，任何配置错误都在打开文档之前终止
func (c *ProcessCmd) Run(globals *Globals) error {
	log, err := globals.logger()
	if err != nil {
		return err
	}
	defer log.Sync()

	cfg, engine, err := loadEngine(globals.Config, log)
	if err != nil {
		return err
	}

	if err := ValidateArgs(&c.CommandLineArgs, cfg.Processing.OutputSuffix); err != nil {
		return fmt.Errorf("参数验证失败: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	proc := processor.New(cfg, engine, processor.WithLogger(log))

	if c.IsBatch() {
		result, err := ProcessBatchFiles(ctx, proc, c.InputDir, c.OutputDir, BatchOptions{
			MaxConcurrent:   cfg.Processing.MaxConcurrentFiles,
			ExcludePatterns: cfg.Processing.ExcludePatterns,
		}, log)
		if result != nil {
			fmt.Fprintf(Stdout, "处理完成: %d/%d 个文件成功，共 %d 处校正\n", result.Succeeded, result.Total, result.Corrections)
			for _, f := range result.Failures {
				fmt.Fprintf(Stdout, "  失败: %s: %v\n", f.Path, f.Err)
			}
		}
		return err
	}

	result, err := ProcessSingleFile(ctx, proc, c.InputFile, c.OutputFile, log)
	if err != nil {
		return err
	}
	fmt.Fprintf(Stdout, "%s -> %s\n\n%s", result.Input, result.Output, result.CorrectionLog.SummaryText())
	return nil
}

// AnalyzeCmd 只读分析
type AnalyzeCmd struct {
	Input string `arg:"" help:"输入 DOCX 文件路径" type:"existingfile"`
	JSON  bool   `help:"以 JSON 输出指标"`
}

func (c *AnalyzeCmd) Run(globals *Globals) error {
	log, err := globals.logger()
	if err != nil {
		return err
	}
	defer log.Sync()

	cfg, engine, err := loadEngine(globals.Config, log)
	if err != nil {
		return err
	}

	analysis, err := processor.New(cfg, engine, processor.WithLogger(log)).Analyze(context.Background(), c.Input)
	if err != nil {
		return fmt.Errorf("分析文档失败: %w", err)
	}

	if c.JSON {
		encoder := json.NewEncoder(Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(analysis)
	}
	if _, err := fmt.Fprintln(Stdout, analysis.Summary); err != nil {
		return err
	}
	if len(analysis.Links) > 0 {
		fmt.Fprintf(Stdout, "\nLINKS: %d\n", len(analysis.Links))
		for _, link := range analysis.BadLinks {
			fmt.Fprintf(Stdout, "  Invalid URL: %s -> %s\n", link.Anchor, link.URL)
		}
	}
	return nil
}

// InitConfigCmd 生成配置模板
type InitConfigCmd struct {
	Output   string `arg:"" optional:"" default:"config.yaml" help:"输出路径 (.yaml/.yml/.json)" type:"path"`
	Template string `short:"t" default:"basic" enum:"basic,full" help:"模板类型：basic 或 full"`
	Force    bool   `short:"f" help:"覆盖已存在的文件（会先备份）"`
}

func (c *InitConfigCmd) Run() error {
	if _, err := os.Stat(c.Output); err == nil && !c.Force {
		return fmt.Errorf("文件已存在: %s（使用 --force 覆盖）", c.Output)
	}

	manager := config.NewConfigManager()
	cfg, err := manager.GenerateTemplate(c.Template)
	if err != nil {
		return err
	}
	if err := manager.SaveConfig(cfg, c.Output); err != nil {
		return err
	}

	fmt.Fprintf(Stdout, "已生成 %s 配置模板: %s\n", c.Template, c.Output)
	return nil
}

// VersionCmd 显示版本信息
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Fprintf(Stdout, "%s v%s\n", AppName, AppVersion)
	return nil
}

func (g *Globals) logger() (*logger.Logger, error) {
	level := "info"
	if g.Verbose {
		level = "debug"
	}
	log, err := logger.New(g.LogMode, level)
	if err != nil {
		return nil, fmt.Errorf("初始化日志失败: %w", err)
	}
	return log, nil
}

// loadEngine 加载配置并编译规则
func loadEngine(configPath string, log *logger.Logger) (*config.Config, *rules.Engine, error) {
	cfg, err := config.NewConfigManager().LoadConfig(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("加载配置文件失败: %w", err)
	}

	engine, err := rules.NewEngine(cfg.CommunicationsStandards)
	if err != nil {
		return nil, nil, fmt.Errorf("编译规则失败: %w", err)
	}

	log.Info("成功加载配置文件",
		"config", configPath,
		"project", cfg.ProjectName,
		"rules", strings.Join(engine.Names(), ", "))
	return cfg, engine, nil
}
