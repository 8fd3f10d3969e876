package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/allanpk716/docx_standards/internal/logger"
	"github.com/allanpk716/docx_standards/internal/processor"
)

// ErrBatchFailed 批量处理中至少有一个文件失败
var ErrBatchFailed = errors.New("部分文件处理失败")

// DocumentProcessor 处理单个文档
type DocumentProcessor interface {
	ProcessDocument(ctx context.Context, inputPath, outputPath string) (*processor.Result, error)
}

// FileFailure 批量处理中失败的文件
type FileFailure struct {
	Path string
	Err  error
}

// BatchResult 批量处理统计
type BatchResult struct {
	Total       int
	Succeeded   int
	Corrections int
	Failures    []FileFailure
}

// BatchOptions 批量处理选项
type BatchOptions struct {
	MaxConcurrent   int
	ExcludePatterns []string
}

// ProcessSingleFile 处理单个文件
func ProcessSingleFile(ctx context.Context, dp DocumentProcessor, inputFile, outputFile string, log *logger.Logger) (*processor.Result, error) {
	log.Info("处理文件", "input", inputFile, "output", outputFile)

	if _, err := os.Stat(inputFile); err != nil {
		return nil, fmt.Errorf("输入文件不存在: %s", inputFile)
	}

	result, err := dp.ProcessDocument(ctx, inputFile, outputFile)
	if err != nil {
		return nil, fmt.Errorf("处理文件失败: %w", err)
	}

	log.Info("文件处理完成", "output", outputFile, "corrections", result.Corrections)
	return result, nil
}

// ProcessBatchFiles 批量处理目录下的 DOCX 文件，输出保持相对目录结构。
// 单个文件失败只记录并继续，全部结束后若有失败返回 ErrBatchFailed
func ProcessBatchFiles(ctx context.Context, dp DocumentProcessor, inputDir, outputDir string, opts BatchOptions, log *logger.Logger) (*BatchResult, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("创建输出目录失败: %w", err)
	}

	docxFiles, err := FindDocxFiles(inputDir, opts.ExcludePatterns)
	if err != nil {
		return nil, fmt.Errorf("查找 DOCX 文件失败: %w", err)
	}

	if len(docxFiles) == 0 {
		return nil, fmt.Errorf("在目录 %s 中没有找到 DOCX 文件", inputDir)
	}

	log.Info("找到 DOCX 文件", "count", len(docxFiles), "concurrency", max(opts.MaxConcurrent, 1))

	result := &BatchResult{Total: len(docxFiles)}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(opts.MaxConcurrent, 1))

	for i, inputFile := range docxFiles {
		i, inputFile := i, inputFile
		relPath, err := filepath.Rel(inputDir, inputFile)
		if err != nil {
			return nil, fmt.Errorf("计算相对路径失败: %w", err)
		}
		outputFile := filepath.Join(outputDir, relPath)

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			log.Info(fmt.Sprintf("[%d/%d] 处理文件", i+1, len(docxFiles)), "input", inputFile)

			res, err := dp.ProcessDocument(gctx, inputFile, outputFile)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if errors.Is(err, context.Canceled) {
					return err
				}
				log.Error("处理文件失败", "input", inputFile, "error", err)
				result.Failures = append(result.Failures, FileFailure{Path: inputFile, Err: err})
				return nil
			}
			result.Succeeded++
			result.Corrections += res.Corrections
			log.Info("文件处理完成", "output", outputFile, "corrections", res.Corrections)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return result, err
	}

	log.Info("批量处理完成",
		"total", result.Total,
		"succeeded", result.Succeeded,
		"failed", len(result.Failures),
		"corrections", result.Corrections)

	if len(result.Failures) > 0 {
		return result, fmt.Errorf("%w: %d/%d", ErrBatchFailed, len(result.Failures), result.Total)
	}
	return result, nil
}

// FindDocxFiles 查找目录中的所有 DOCX 文件，跳过 Word 临时文件与匹配排除模式的文件
func FindDocxFiles(dir string, excludePatterns []string) ([]string, error) {
	var docxFiles []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || strings.ToLower(filepath.Ext(path)) != ".docx" {
			return nil
		}

		filename := filepath.Base(path)
		if strings.HasPrefix(filename, "~$") || excluded(filename, excludePatterns) {
			return nil
		}
		docxFiles = append(docxFiles, path)
		return nil
	})

	return docxFiles, err
}

func excluded(filename string, patterns []string) bool {
	for _, pattern := range patterns {
		if ok, err := filepath.Match(pattern, filename); err == nil && ok {
			return true
		}
	}
	return false
}
