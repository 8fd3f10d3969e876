package docx

import (
	"fmt"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
	nd "github.com/nguyenthenguyen/docx"

	"github.com/allanpk716/docx_standards/internal/domain"
)

var (
	bodyExpr            = xpath.MustCompile(`//*[local-name()='body']`)
	bodyParagraphsExpr  = xpath.MustCompile(`./*[local-name()='p']`)
	tableParagraphsExpr = xpath.MustCompile(`//*[local-name()='p'][ancestor::*[local-name()='tc']]`)
	sectPrExpr          = xpath.MustCompile(`./*[local-name()='sectPr']`)
	cellParagraphsExpr  = xpath.MustCompile(`.//*[local-name()='p']`)
)

// tableBlock 正文层级的一张表格，before 为表格之前的正文段落数
type tableBlock struct {
	before     int
	paragraphs []domain.Paragraph
}

// Document 基于 nguyenthenguyen/docx 读写 word/document.xml，
// 段落结构由 xmlquery 解析后的 DOM 维护
type Document struct {
	filePath string
	reader   *nd.ReplaceDocx
	editable *nd.Docx
	root     *xmlquery.Node
	body     *xmlquery.Node

	paragraphs []domain.Paragraph
	tables     []domain.Paragraph
	blocks     []tableBlock
	modified   bool
}

var _ domain.Document = (*Document)(nil)

// Open 打开 DOCX 文档，无法读取或解析时返回 domain.ErrUnsupportedDocument
func Open(filePath string) (*Document, error) {
	reader, err := nd.ReadDocxFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("%w: 打开文档 %s 失败: %v", domain.ErrUnsupportedDocument, filePath, err)
	}

	editable := reader.Editable()
	root, err := xmlquery.Parse(strings.NewReader(editable.GetContent()))
	if err != nil {
		reader.Close()
		return nil, fmt.Errorf("%w: 解析 %s 的文档 XML 失败: %v", domain.ErrUnsupportedDocument, filePath, err)
	}

	body := xmlquery.QuerySelector(root, bodyExpr)
	if body == nil {
		reader.Close()
		return nil, fmt.Errorf("%w: %s 缺少 w:body", domain.ErrUnsupportedDocument, filePath)
	}

	d := &Document{
		filePath: filePath,
		reader:   reader,
		editable: editable,
		root:     root,
		body:     body,
	}
	for _, n := range xmlquery.QuerySelectorAll(body, bodyParagraphsExpr) {
		d.paragraphs = append(d.paragraphs, &Paragraph{node: n, owner: d})
	}

	cells := make(map[*xmlquery.Node]domain.Paragraph)
	for _, n := range xmlquery.QuerySelectorAll(root, tableParagraphsExpr) {
		para := &Paragraph{node: n, owner: d}
		cells[n] = para
		d.tables = append(d.tables, para)
	}
	d.indexTables(cells)
	return d, nil
}

// indexTables 记录正文层级每张表格相对正文段落的位置
func (d *Document) indexTables(cells map[*xmlquery.Node]domain.Paragraph) {
	before := 0
	for child := d.body.FirstChild; child != nil; child = child.NextSibling {
		if child.Type != xmlquery.ElementNode {
			continue
		}
		switch child.Data {
		case "p":
			before++
		case "tbl":
			block := tableBlock{before: before}
			for _, n := range xmlquery.QuerySelectorAll(child, cellParagraphsExpr) {
				if para, ok := cells[n]; ok {
					block.paragraphs = append(block.paragraphs, para)
				}
			}
			d.blocks = append(d.blocks, block)
		}
	}
}

// Paragraphs 正文层级的全部段落（不含表格内段落），按文档顺序
func (d *Document) Paragraphs() []domain.Paragraph {
	return d.paragraphs
}

// SectionParagraphs 起始标记与其后第一个结束标记之间的段落，不含标记行本身。
// 任一标记缺失时返回全部正文段落
func (d *Document) SectionParagraphs(markers domain.SectionMarkers) []domain.Paragraph {
	from, to, ok := span(d.paragraphs, markers)
	if !ok {
		return d.paragraphs
	}
	return d.paragraphs[from+1 : to]
}

// DisclaimerParagraphs 免责声明区域的段落，标记不存在时为空
func (d *Document) DisclaimerParagraphs(markers domain.SectionMarkers) []domain.Paragraph {
	from, to, ok := span(d.paragraphs, markers)
	if !ok {
		return nil
	}
	return d.paragraphs[from+1 : to]
}

// TableParagraphs 表格单元格内的段落
func (d *Document) TableParagraphs() []domain.Paragraph {
	return d.tables
}

// SectionTableParagraphs 位于两个标记行之间的表格中的段落。
// 任一标记缺失时返回全部表格段落，与 SectionParagraphs 一致
func (d *Document) SectionTableParagraphs(markers domain.SectionMarkers) []domain.Paragraph {
	from, to, ok := span(d.paragraphs, markers)
	if !ok {
		return d.tables
	}
	return d.tablesBetween(from, to)
}

// DisclaimerTableParagraphs 免责声明区域内表格中的段落，标记不存在时为空
func (d *Document) DisclaimerTableParagraphs(markers domain.SectionMarkers) []domain.Paragraph {
	from, to, ok := span(d.paragraphs, markers)
	if !ok {
		return nil
	}
	return d.tablesBetween(from, to)
}

// tablesBetween 位于第 from 与第 to 个正文段落之间的表格段落
func (d *Document) tablesBetween(from, to int) []domain.Paragraph {
	var out []domain.Paragraph
	for _, block := range d.blocks {
		if block.before > from && block.before <= to {
			out = append(out, block.paragraphs...)
		}
	}
	return out
}

// MatchesMarker 判断段落文本是否为标记行（去除首尾空白，忽略大小写）
func MatchesMarker(text, marker string) bool {
	return marker != "" && strings.EqualFold(strings.TrimSpace(text), strings.TrimSpace(marker))
}

func span(paragraphs []domain.Paragraph, markers domain.SectionMarkers) (int, int, bool) {
	start := -1
	for i, p := range paragraphs {
		if MatchesMarker(p.Text(), markers.Start) {
			start = i
			break
		}
	}
	if start < 0 {
		return 0, 0, false
	}

	for i := start + 1; i < len(paragraphs); i++ {
		if MatchesMarker(paragraphs[i].Text(), markers.End) {
			return start, i, true
		}
	}
	return 0, 0, false
}

// Text 以换行连接段落文本
func Text(paragraphs []domain.Paragraph) string {
	texts := make([]string, 0, len(paragraphs))
	for _, p := range paragraphs {
		texts = append(texts, p.Text())
	}
	return strings.Join(texts, "\n")
}

// Modified 文档是否被修改过
func (d *Document) Modified() bool {
	return d.modified
}

// SaveAs 将 DOM 序列化回 document.xml 并写出新文件
func (d *Document) SaveAs(outputPath string) error {
	if d.editable == nil {
		return fmt.Errorf("文档未打开")
	}

	d.editable.SetContent(d.root.OutputXMLWithOptions(
		xmlquery.WithEmptyTagSupport(),
		xmlquery.WithPreserveSpace(),
	))
	if err := d.editable.WriteToFile(outputPath); err != nil {
		return fmt.Errorf("保存文档失败: %w", err)
	}
	return nil
}

// Close 关闭文档
func (d *Document) Close() error {
	if d.reader == nil {
		return nil
	}
	err := d.reader.Close()
	d.reader = nil
	d.editable = nil
	return err
}
