package docx

import (
	"fmt"
	"strings"

	"github.com/antchfx/xmlquery"
)

// 报告页标题样式
const (
	ReportHeading      = "Document Analysis Report"
	reportHeadingColor = "003366"
	reportHeadingSize  = "32" // 半磅，即 16pt
)

// AppendReportSection 在正文末尾追加分页符与报告页：加粗标题，随后每个非空行一个段落。
// 新段落插在 w:sectPr 之前，页面设置保持在正文最后
func (d *Document) AppendReportSection(text string) error {
	if d.body == nil {
		return fmt.Errorf("文档未打开")
	}

	sectPr := xmlquery.QuerySelector(d.body, sectPrExpr)
	if sectPr != nil {
		xmlquery.RemoveFromTree(sectPr)
	}

	xmlquery.AddChild(d.body, pageBreak())
	xmlquery.AddChild(d.body, reportTitle())
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		p := element("p")
		xmlquery.AddChild(p, textRun(line, nil))
		xmlquery.AddChild(d.body, p)
	}

	if sectPr != nil {
		xmlquery.AddChild(d.body, sectPr)
	}
	d.modified = true
	return nil
}

func pageBreak() *xmlquery.Node {
	p := element("p")
	r := element("r")
	xmlquery.AddChild(r, element("br", wAttr("type", "page")))
	xmlquery.AddChild(p, r)
	return p
}

func reportTitle() *xmlquery.Node {
	rPr := element("rPr")
	xmlquery.AddChild(rPr, element("b"))
	xmlquery.AddChild(rPr, element("color", wAttr("val", reportHeadingColor)))
	xmlquery.AddChild(rPr, element("sz", wAttr("val", reportHeadingSize)))

	p := element("p")
	xmlquery.AddChild(p, textRun(ReportHeading, rPr))
	return p
}

func textRun(text string, rPr *xmlquery.Node) *xmlquery.Node {
	r := element("r")
	if rPr != nil {
		xmlquery.AddChild(r, rPr)
	}
	t := element("t")
	setNodeText(t, text)
	xmlquery.AddChild(r, t)
	return r
}
