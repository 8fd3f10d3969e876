package metrics

import (
	"fmt"
	"strings"
)

// GenerateSummary 生成文本分析摘要，写入文档末尾的报告页
func (a *Analyzer) GenerateSummary(targets Targets, keywords []string) string {
	lines := []string{
		"DOCUMENT ANALYSIS",
		strings.Repeat("=", 50),
		"",
		"Basic Statistics:",
		fmt.Sprintf("  Word Count: %d", a.WordCount()),
		fmt.Sprintf("  Sentence Count: %d", a.SentenceCount()),
		fmt.Sprintf("  Paragraph Count: %d", a.ParagraphCount()),
		fmt.Sprintf("  Reading Level: %.1f grade", a.ReadingLevel()),
		fmt.Sprintf("  Reading Ease: %.1f", a.FleschReadingEase()),
		fmt.Sprintf("  Avg Sentence Length: %.1f words", a.AverageSentenceLength()),
		"",
	}

	comparison := a.CompareToTarget(targets)
	if comparison.WordCount != nil || comparison.ReadingLevel != nil {
		lines = append(lines, "Target Comparison:")
		if wc := comparison.WordCount; wc != nil {
			lines = append(lines, fmt.Sprintf("  Word Count: %d (target: %d, %s)", wc.Actual, wc.Target, wc.Status))
		}
		if rl := comparison.ReadingLevel; rl != nil {
			lines = append(lines, fmt.Sprintf("  Reading Level: %.1f (target: %.1f, %s)", rl.Actual, rl.Target, rl.Status))
		}
		lines = append(lines, "")
	}

	if stats := a.KeywordFrequency(keywords); len(stats) > 0 {
		lines = append(lines, "Keyword Analysis:")
		for _, s := range stats {
			line := fmt.Sprintf("  '%s': %d times (%.2f%% density)", s.Keyword, s.Count, s.Density)
			if !s.InRecommendedRange() {
				line += fmt.Sprintf(" - recommended %.0f-%.0f%%", RecommendedDensityMin, RecommendedDensityMax)
			}
			lines = append(lines, line)
		}
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n")
}
