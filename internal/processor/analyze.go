package processor

import (
	"context"
	"fmt"

	"github.com/allanpk716/docx_standards/internal/metrics"
	"github.com/allanpk716/docx_standards/internal/textfmt"
)

// Analysis 只读分析的结果，不修改也不写出文档
type Analysis struct {
	Input      string             `json:"input"`
	Paragraphs int                `json:"paragraphs"`
	Snapshot   metrics.Snapshot   `json:"metrics"`
	Comparison metrics.Comparison `json:"comparison"`
	Links      []textfmt.Link     `json:"links,omitempty"`
	BadLinks   []textfmt.Link     `json:"bad_links,omitempty"`
	Summary    string             `json:"-"`
}

// Analyze 计算文档待校正区域的指标并生成摘要
func (p *Processor) Analyze(ctx context.Context, inputPath string) (*Analysis, error) {
	if inputPath == "" {
		return nil, fmt.Errorf("输入路径不能为空")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := p.open(inputPath)
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	section := p.collect(doc)
	analyzer := metrics.NewAnalyzer(section.text())
	keywords := p.cfg.Processing.EffectiveKeywords()

	links, bad := inventoryLinks(section.text())
	p.log.Debug("分析文档", "document", inputPath, "paragraphs", len(section.targets), "links", len(links))
	return &Analysis{
		Input:      inputPath,
		Paragraphs: len(section.targets),
		Snapshot:   analyzer.Snapshot(keywords),
		Comparison: analyzer.CompareToTarget(p.targets()),
		Links:      links,
		BadLinks:   bad,
		Summary:    analyzer.GenerateSummary(p.targets(), keywords),
	}, nil
}

// inventoryLinks 提取 "~anchor~ [url]" 链接，bad 为目标不是 http(s):// 或 www. 开头的链接
func inventoryLinks(text string) (links, bad []textfmt.Link) {
	links = textfmt.ExtractLinks(text)
	for _, link := range links {
		if !textfmt.IsURL(link.URL) {
			bad = append(bad, link)
		}
	}
	return links, bad
}
