package processor

import (
	"context"
	"fmt"

	"github.com/allanpk716/docx_standards/internal/correction"
	"github.com/allanpk716/docx_standards/internal/domain"
)

// processTables 校正校正区域内表格单元格中的段落，返回改动的段落数
func (p *Processor) processTables(ctx context.Context, cells []domain.Paragraph, log *correction.Log) (int, error) {
	changed := 0
	for i, para := range cells {
		if err := ctx.Err(); err != nil {
			return changed, err
		}
		if p.correct(para, fmt.Sprintf("table paragraph %d", i+1), log) {
			changed++
		}
	}
	return changed, nil
}
