package docx

import (
	"encoding/xml"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"

	"github.com/allanpk716/docx_standards/internal/domain"
	"github.com/allanpk716/docx_standards/internal/textfmt"
)

var (
	textNodesExpr = xpath.MustCompile(`.//*[local-name()='t']`)
	runExpr       = xpath.MustCompile(`./*[local-name()='r']`)
	pStyleExpr    = xpath.MustCompile(`./*[local-name()='pPr']/*[local-name()='pStyle']`)
)

// Paragraph 一个 w:p 元素。文本按 run 拼接读取，写回时整段落入第一个 w:t，
// 第一个 run 的格式因此被保留
type Paragraph struct {
	node  *xmlquery.Node
	owner *Document
}

var _ domain.HeadingParagraph = (*Paragraph)(nil)

// Text 段落内全部 w:t 的文本
func (p *Paragraph) Text() string {
	var b strings.Builder
	for _, t := range xmlquery.QuerySelectorAll(p.node, textNodesExpr) {
		b.WriteString(t.InnerText())
	}
	return b.String()
}

// SetText 把整段文本写入第一个 w:t 并清空其余 w:t；没有 run 的段落会新建一个
func (p *Paragraph) SetText(text string) {
	texts := xmlquery.QuerySelectorAll(p.node, textNodesExpr)
	if len(texts) == 0 {
		run := xmlquery.QuerySelector(p.node, runExpr)
		if run == nil {
			run = element("r")
			xmlquery.AddChild(p.node, run)
		}
		t := element("t")
		xmlquery.AddChild(run, t)
		texts = []*xmlquery.Node{t}
	}

	setNodeText(texts[0], text)
	for _, t := range texts[1:] {
		setNodeText(t, "")
	}
	if p.owner != nil {
		p.owner.modified = true
	}
}

// HeadingLevel 由 w:pStyle 的样式名得出标题级别，正文为 0
func (p *Paragraph) HeadingLevel() int {
	style := xmlquery.QuerySelector(p.node, pStyleExpr)
	if style == nil {
		return 0
	}
	return textfmt.HeadingLevel(attr(style, "val"))
}

func setNodeText(t *xmlquery.Node, text string) {
	for child := t.FirstChild; child != nil; {
		next := child.NextSibling
		xmlquery.RemoveFromTree(child)
		child = next
	}
	if text == "" {
		return
	}
	t.SetAttr("xml:space", "preserve")
	xmlquery.AddChild(t, &xmlquery.Node{Type: xmlquery.TextNode, Data: text})
}

// element 创建 w 命名空间下的元素
func element(name string, attrs ...xmlquery.Attr) *xmlquery.Node {
	return &xmlquery.Node{
		Type:   xmlquery.ElementNode,
		Data:   name,
		Prefix: "w",
		Attr:   attrs,
	}
}

func wAttr(local, value string) xmlquery.Attr {
	return xmlquery.Attr{Name: xml.Name{Space: "w", Local: local}, Value: value}
}

// attr 按本地名读取属性，忽略前缀
func attr(n *xmlquery.Node, local string) string {
	for _, a := range n.Attr {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}
