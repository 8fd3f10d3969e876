package processor

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/allanpk716/docx_standards/internal/config"
	"github.com/allanpk716/docx_standards/internal/correction"
	"github.com/allanpk716/docx_standards/internal/domain"
	"github.com/allanpk716/docx_standards/internal/logger"
	"github.com/allanpk716/docx_standards/internal/metrics"
	"github.com/allanpk716/docx_standards/internal/rules"
	"github.com/allanpk716/docx_standards/pkg/docx"
)

// AuditSuffix JSON 审计文件后缀，追加在输出文件名之后
const AuditSuffix = ".corrections.json"

// Document 处理流程需要的文档能力
type Document interface {
	domain.Document
	Paragraphs() []domain.Paragraph
	DisclaimerParagraphs(markers domain.SectionMarkers) []domain.Paragraph
	SectionTableParagraphs(markers domain.SectionMarkers) []domain.Paragraph
	DisclaimerTableParagraphs(markers domain.SectionMarkers) []domain.Paragraph
	Modified() bool
}

// OpenFunc 打开文档
type OpenFunc func(path string) (Document, error)

// Result 一次处理运行的结果
type Result struct {
	RunID         string             `json:"run_id"`
	Input         string             `json:"input"`
	Output        string             `json:"output,omitempty"`
	AuditPath     string             `json:"audit_path,omitempty"`
	Paragraphs    int                `json:"paragraphs"`
	TableCells    int                `json:"table_paragraphs"`
	Changed       int                `json:"changed_paragraphs"`
	Modified      bool               `json:"modified"`
	Before        metrics.Snapshot   `json:"before"`
	After         metrics.Snapshot   `json:"after"`
	Comparison    metrics.Comparison `json:"comparison"`
	Corrections   int                `json:"corrections"`
	Summary       []domain.RuleCount `json:"summary"`
	Report        string             `json:"-"`
	Duration      time.Duration      `json:"duration"`
	CorrectionLog *correction.Log    `json:"-"`
}

// Processor 按配置处理单个文档，规则引擎只读共享，每次运行持有独立的校正记录
type Processor struct {
	cfg    *config.Config
	engine *rules.Engine
	log    *logger.Logger
	open   OpenFunc
}

// Option 处理器选项
type Option func(*Processor)

// WithOpener 替换文档打开方式
func WithOpener(open OpenFunc) Option {
	return func(p *Processor) {
		p.open = open
	}
}

// WithLogger 设置日志器
func WithLogger(l *logger.Logger) Option {
	return func(p *Processor) {
		if l != nil {
			p.log = l
		}
	}
}

// New 创建处理器，cfg 应已通过校验并填充默认值
func New(cfg *config.Config, engine *rules.Engine, opts ...Option) *Processor {
	p := &Processor{
		cfg:    cfg,
		engine: engine,
		log:    logger.NewNop(),
		open: func(path string) (Document, error) {
			return docx.Open(path)
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.cfg.Processing == nil {
		p.cfg.Processing = &config.ProcessingConfig{}
	}
	return p
}

// ProcessDocument 校正 inputPath 并写出 outputPath。失败时不留下输出文件与审计报告
func (p *Processor) ProcessDocument(ctx context.Context, inputPath, outputPath string) (*Result, error) {
	if inputPath == "" {
		return nil, fmt.Errorf("输入路径不能为空")
	}
	if outputPath == "" {
		return nil, fmt.Errorf("输出路径不能为空")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	started := time.Now()
	result := &Result{RunID: uuid.NewString(), Input: inputPath, CorrectionLog: correction.NewLog()}
	log := p.log.With("run_id", result.RunID, "document", inputPath)
	log.Info("开始处理文档", "output", outputPath)

	doc, err := p.open(inputPath)
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	proc := p.cfg.Processing
	section := p.collect(doc)
	result.Paragraphs = len(section.targets)
	result.Before = p.snapshot(section)
	log.Debug("定位待校正段落",
		"paragraphs", len(section.targets),
		"disclaimer", len(section.disclaimer))

	for i, para := range section.targets {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if p.correct(para, fmt.Sprintf("paragraph %d", i+1), result.CorrectionLog) {
			result.Changed++
		}
	}

	if proc.ProcessTables {
		changed, err := p.processTables(ctx, section.tables, result.CorrectionLog)
		if err != nil {
			return nil, err
		}
		result.TableCells = len(section.tables)
		result.Changed += changed
	}

	result.After = p.snapshot(section)
	_, bad := inventoryLinks(section.text())
	for _, link := range bad {
		log.Warn("链接目标不是有效网址", "anchor", link.Anchor, "url", link.URL)
	}
	analyzer := metrics.NewAnalyzer(section.text())
	result.Comparison = analyzer.CompareToTarget(p.targets())
	result.Corrections = result.CorrectionLog.Count()
	result.Summary = result.CorrectionLog.Summary()
	result.Report = analyzer.GenerateSummary(p.targets(), proc.EffectiveKeywords()) + "\n" + result.CorrectionLog.SummaryText()

	if proc.ShouldAppendReport() {
		if err := doc.AppendReportSection(result.Report); err != nil {
			return nil, fmt.Errorf("追加分析报告失败: %w", err)
		}
	}

	result.Modified = doc.Modified()
	if !result.Modified {
		log.Debug("文档内容未变化，按原样写出")
	}

	var audit bytes.Buffer
	if proc.WriteAuditJSON {
		if err := result.CorrectionLog.WriteJSON(&audit, result.RunID, inputPath); err != nil {
			return nil, err
		}
	}

	if err := save(doc, outputPath); err != nil {
		return nil, err
	}
	result.Output = outputPath

	if proc.WriteAuditJSON {
		result.AuditPath = outputPath + AuditSuffix
		if err := os.WriteFile(result.AuditPath, audit.Bytes(), 0644); err != nil {
			return nil, fmt.Errorf("写入审计文件失败: %w", err)
		}
	}

	result.Duration = time.Since(started)
	log.Info("文档处理完成",
		"output", outputPath,
		"paragraphs", result.Paragraphs,
		"changed", result.Changed,
		"corrections", result.Corrections,
		"words_before", result.Before.WordCount,
		"words_after", result.After.WordCount,
		"duration", result.Duration)
	return result, nil
}

// correct 校正单个段落，文本有变化时写回
func (p *Processor) correct(para domain.Paragraph, location string, log *correction.Log) bool {
	level := 0
	if h, ok := para.(domain.HeadingParagraph); ok {
		level = h.HeadingLevel()
	}

	original := para.Text()
	corrected := p.engine.ApplyHeading(original, level, location, log)
	if corrected == original {
		return false
	}
	para.SetText(corrected)
	return true
}

func (p *Processor) targets() metrics.Targets {
	t := p.cfg.Processing.Targets
	return metrics.Targets{WordCount: t.WordCount, ReadingLevel: t.ReadingLevel}
}

func (p *Processor) snapshot(s *sections) metrics.Snapshot {
	return metrics.NewAnalyzer(s.text()).Snapshot(p.cfg.Processing.EffectiveKeywords())
}

// save 先写同目录下的临时文件，成功后再重命名为输出文件
func save(doc domain.Document, outputPath string) error {
	dir := filepath.Dir(outputPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".docx-standards-*.docx")
	if err != nil {
		return fmt.Errorf("创建临时文件失败: %w", err)
	}
	tmpPath := tmp.Name()
	tmp.Close()

	if err := doc.SaveAs(tmpPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("保存文档失败: %w", err)
	}
	if err := os.Rename(tmpPath, outputPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("重命名输出文件失败: %w", err)
	}
	return nil
}
