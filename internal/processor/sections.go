package processor

import (
	"strings"

	"github.com/allanpk716/docx_standards/internal/domain"
	"github.com/allanpk716/docx_standards/pkg/docx"
)

// sections 一次运行涉及的段落：targets 会被校正，disclaimer 只参与统计，
// tables 为校正区域内、免责声明之外的表格段落
type sections struct {
	targets    []domain.Paragraph
	disclaimer []domain.Paragraph
	tables     []domain.Paragraph
}

// collect 取校正区域内的段落，去掉免责声明区域与所有标记行
func (p *Processor) collect(doc Document) *sections {
	proc := p.cfg.Processing
	s := &sections{disclaimer: doc.DisclaimerParagraphs(proc.DisclaimerMarkers)}

	skip := make(map[domain.Paragraph]bool, len(s.disclaimer))
	for _, para := range s.disclaimer {
		skip[para] = true
	}

	markers := []string{
		proc.SectionMarkers.Start, proc.SectionMarkers.End,
		proc.DisclaimerMarkers.Start, proc.DisclaimerMarkers.End,
	}
	for _, para := range doc.SectionParagraphs(proc.SectionMarkers) {
		if skip[para] || isMarker(para.Text(), markers) {
			continue
		}
		s.targets = append(s.targets, para)
	}

	readOnly := make(map[domain.Paragraph]bool)
	for _, para := range doc.DisclaimerTableParagraphs(proc.DisclaimerMarkers) {
		readOnly[para] = true
	}
	for _, para := range doc.SectionTableParagraphs(proc.SectionMarkers) {
		if !readOnly[para] {
			s.tables = append(s.tables, para)
		}
	}
	return s
}

// text 统计用文本：校正段落在前，免责声明在后
func (s *sections) text() string {
	all := make([]domain.Paragraph, 0, len(s.targets)+len(s.disclaimer))
	all = append(all, s.targets...)
	all = append(all, s.disclaimer...)
	return docx.Text(all)
}

func isMarker(text string, markers []string) bool {
	if strings.TrimSpace(text) == "" {
		return false
	}
	for _, m := range markers {
		if docx.MatchesMarker(text, m) {
			return true
		}
	}
	return false
}
