// Package metrics 计算文本的字数、句数、可读性年级与关键词密度。
// 所有结果都由当前文本实时计算，校正前后各取一次快照互不影响。
package metrics

import (
	"math"
	"regexp"
	"strings"

	"github.com/jdkato/prose/summarize"

	"github.com/allanpk716/docx_standards/internal/matcher"
)

var sentenceSplitPattern = regexp.MustCompile(`[.!?]+`)

// 目标对比的容差
const (
	WordCountTolerance    = 50
	ReadingLevelTolerance = 1.0
)

// 目标对比状态
const (
	StatusOnTarget = "on_target"
	StatusOver     = "over"
	StatusUnder    = "under"
	StatusAbove    = "above"
	StatusBelow    = "below"
)

// 推荐的关键词密度区间（百分比）
const (
	RecommendedDensityMin = 3.0
	RecommendedDensityMax = 4.0
)

// Analyzer 对一段文本做统计，分词与分句结果在首次使用时缓存
type Analyzer struct {
	text      string
	words     []string
	sentences []string
}

// NewAnalyzer 创建文本分析器
func NewAnalyzer(text string) *Analyzer {
	return &Analyzer{text: text}
}

// Words 以空白分隔的词
func (a *Analyzer) Words() []string {
	if a.words == nil {
		a.words = strings.Fields(a.text)
	}
	return a.words
}

// Sentences 按连续的 . ! ? 切分后的非空句子
func (a *Analyzer) Sentences() []string {
	if a.sentences == nil {
		a.sentences = []string{}
		for _, s := range sentenceSplitPattern.Split(a.text, -1) {
			if s = strings.TrimSpace(s); s != "" {
				a.sentences = append(a.sentences, s)
			}
		}
	}
	return a.sentences
}

func (a *Analyzer) WordCount() int {
	return len(a.Words())
}

func (a *Analyzer) SentenceCount() int {
	return len(a.Sentences())
}

// ParagraphCount 按换行分隔的非空段落数
func (a *Analyzer) ParagraphCount() int {
	count := 0
	for _, line := range strings.Split(a.text, "\n") {
		if strings.TrimSpace(line) != "" {
			count++
		}
	}
	return count
}

// SyllableCount 全文音节数
func (a *Analyzer) SyllableCount() int {
	total := 0
	for _, word := range a.Words() {
		total += CountSyllables(word)
	}
	return total
}

// readability 以本包的分词分句结果构造 prose 的统计文档，公式由 prose 计算
func (a *Analyzer) readability() (*summarize.Document, bool) {
	words, sentences := a.WordCount(), a.SentenceCount()
	if words == 0 || sentences == 0 {
		return nil, false
	}
	return &summarize.Document{
		NumWords:     float64(words),
		NumSentences: float64(sentences),
		NumSyllables: float64(a.SyllableCount()),
	}, true
}

// ReadingLevel Flesch-Kincaid 年级，无词或无句时为 0
func (a *Analyzer) ReadingLevel() float64 {
	doc, ok := a.readability()
	if !ok {
		return 0
	}
	return doc.FleschKincaid()
}

// FleschReadingEase Flesch 易读度，越高越易读
func (a *Analyzer) FleschReadingEase() float64 {
	doc, ok := a.readability()
	if !ok {
		return 0
	}
	return doc.FleschReadingEase()
}

// AverageSentenceLength 平均句长，无句子时为 0
func (a *Analyzer) AverageSentenceLength() float64 {
	if a.SentenceCount() == 0 {
		return 0
	}
	return float64(a.WordCount()) / float64(a.SentenceCount())
}

// AverageWordLength 平均词长（字符数）
func (a *Analyzer) AverageWordLength() float64 {
	words := a.Words()
	if len(words) == 0 {
		return 0
	}
	total := 0
	for _, w := range words {
		total += len([]rune(w))
	}
	return float64(total) / float64(len(words))
}

// KeywordStat 单个关键词的出现次数与密度
type KeywordStat struct {
	Keyword string  `json:"keyword"`
	Count   int     `json:"count"`
	Density float64 `json:"density"`
}

// InRecommendedRange 密度是否落在推荐区间内
func (k KeywordStat) InRecommendedRange() bool {
	return k.Density >= RecommendedDensityMin && k.Density <= RecommendedDensityMax
}

// KeywordFrequency 统计关键词整词出现次数（忽略大小写）与密度，
// 密度 = 次数 × 关键词词数 / 总词数 × 100，保留两位小数。空白关键词被忽略。
func (a *Analyzer) KeywordFrequency(keywords []string) []KeywordStat {
	total := a.WordCount()
	var stats []KeywordStat

	for _, keyword := range keywords {
		keyword = strings.TrimSpace(keyword)
		if keyword == "" {
			continue
		}

		count := 0
		if pattern, err := matcher.WordPattern(keyword, true); err == nil {
			count = matcher.CountMatches(a.text, pattern)
		}

		density := 0.0
		if total > 0 {
			density = round2(float64(count*len(strings.Fields(keyword))) / float64(total) * 100)
		}
		stats = append(stats, KeywordStat{Keyword: keyword, Count: count, Density: density})
	}
	return stats
}

// Targets 对比目标，零值表示不对比
type Targets struct {
	WordCount    int
	ReadingLevel float64
}

type WordCountComparison struct {
	Target     int    `json:"target"`
	Actual     int    `json:"actual"`
	Difference int    `json:"difference"`
	Status     string `json:"status"`
}

type ReadingLevelComparison struct {
	Target     float64 `json:"target"`
	Actual     float64 `json:"actual"`
	Difference float64 `json:"difference"`
	Status     string  `json:"status"`
}

// Comparison 与目标的对比结果，未设置的目标为 nil
type Comparison struct {
	WordCount    *WordCountComparison    `json:"word_count,omitempty"`
	ReadingLevel *ReadingLevelComparison `json:"reading_level,omitempty"`
}

// CompareToTarget 字数差在 50 以内、年级差在 1.0 以内视为达标
func (a *Analyzer) CompareToTarget(targets Targets) Comparison {
	var c Comparison

	if targets.WordCount > 0 {
		actual := a.WordCount()
		diff := actual - targets.WordCount
		status := StatusOnTarget
		if abs(diff) > WordCountTolerance {
			status = StatusUnder
			if diff > 0 {
				status = StatusOver
			}
		}
		c.WordCount = &WordCountComparison{
			Target:     targets.WordCount,
			Actual:     actual,
			Difference: diff,
			Status:     status,
		}
	}

	if targets.ReadingLevel > 0 {
		actual := a.ReadingLevel()
		diff := actual - targets.ReadingLevel
		status := StatusOnTarget
		if math.Abs(diff) > ReadingLevelTolerance {
			status = StatusBelow
			if diff > 0 {
				status = StatusAbove
			}
		}
		c.ReadingLevel = &ReadingLevelComparison{
			Target:     targets.ReadingLevel,
			Actual:     round1(actual),
			Difference: round1(diff),
			Status:     status,
		}
	}

	return c
}

// Snapshot 某一时刻的文本指标
type Snapshot struct {
	WordCount             int           `json:"word_count"`
	SentenceCount         int           `json:"sentence_count"`
	ParagraphCount        int           `json:"paragraph_count"`
	ReadingLevel          float64       `json:"reading_level"`
	ReadingEase           float64       `json:"reading_ease"`
	AverageSentenceLength float64       `json:"avg_sentence_length"`
	AverageWordLength     float64       `json:"avg_word_length"`
	Keywords              []KeywordStat `json:"keywords,omitempty"`
}

// Snapshot 计算全部指标
func (a *Analyzer) Snapshot(keywords []string) Snapshot {
	return Snapshot{
		WordCount:             a.WordCount(),
		SentenceCount:         a.SentenceCount(),
		ParagraphCount:        a.ParagraphCount(),
		ReadingLevel:          round1(a.ReadingLevel()),
		ReadingEase:           round1(a.FleschReadingEase()),
		AverageSentenceLength: round1(a.AverageSentenceLength()),
		AverageWordLength:     round1(a.AverageWordLength()),
		Keywords:              a.KeywordFrequency(keywords),
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
