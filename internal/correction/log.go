package correction

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/allanpk716/docx_standards/internal/domain"
)

// Log 一次处理运行的校正记录，只追加、保持顺序、不去重
type Log struct {
	entries []domain.Correction
}

// Report 校正记录的审计导出格式
type Report struct {
	RunID       string              `json:"run_id,omitempty"`
	Document    string              `json:"document,omitempty"`
	GeneratedAt time.Time           `json:"generated_at"`
	Total       int                 `json:"total"`
	Summary     []domain.RuleCount  `json:"summary"`
	Corrections []domain.Correction `json:"corrections"`
}

// NewLog 创建新的校正记录
func NewLog() *Log {
	return &Log{}
}

// Record 追加一条校正记录
func (l *Log) Record(rule, original, corrected, location string) {
	l.entries = append(l.entries, domain.Correction{
		Rule:      rule,
		Original:  original,
		Corrected: corrected,
		Location:  location,
	})
}

// Append 追加已有记录，保持传入顺序
func (l *Log) Append(entries ...domain.Correction) {
	l.entries = append(l.entries, entries...)
}

// Count 获取记录总数
func (l *Log) Count() int {
	if l == nil {
		return 0
	}
	return len(l.entries)
}

// Entries 获取全部记录的副本
func (l *Log) Entries() []domain.Correction {
	if l == nil {
		return nil
	}
	out := make([]domain.Correction, len(l.entries))
	copy(out, l.entries)
	return out
}

// Summary 按规则名汇总，顺序为规则名首次出现的顺序
func (l *Log) Summary() []domain.RuleCount {
	if l == nil {
		return nil
	}

	index := make(map[string]int)
	var summary []domain.RuleCount
	for _, entry := range l.entries {
		if i, exists := index[entry.Rule]; exists {
			summary[i].Count++
			continue
		}
		index[entry.Rule] = len(summary)
		summary = append(summary, domain.RuleCount{Rule: entry.Rule, Count: 1})
	}
	return summary
}

// SummaryText 生成报告中的校正统计段落
func (l *Log) SummaryText() string {
	var b strings.Builder
	separator := strings.Repeat("=", 50)

	b.WriteString(separator + "\n")
	fmt.Fprintf(&b, "CORRECTIONS APPLIED: %d\n", l.Count())
	b.WriteString(separator + "\n\n")
	for _, rc := range l.Summary() {
		fmt.Fprintf(&b, "%s: %d\n", rc.Rule, rc.Count)
	}
	return b.String()
}

// WriteJSON 将记录导出为 JSON 审计报告
func (l *Log) WriteJSON(w io.Writer, runID, document string) error {
	report := Report{
		RunID:       runID,
		Document:    document,
		GeneratedAt: time.Now().UTC(),
		Total:       l.Count(),
		Summary:     l.Summary(),
		Corrections: l.Entries(),
	}
	if report.Summary == nil {
		report.Summary = []domain.RuleCount{}
	}
	if report.Corrections == nil {
		report.Corrections = []domain.Correction{}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(report); err != nil {
		return fmt.Errorf("写入校正报告失败: %w", err)
	}
	return nil
}
