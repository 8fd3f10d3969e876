package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allanpk716/docx_standards/internal/domain"
	"github.com/allanpk716/docx_standards/internal/logger"
	"github.com/allanpk716/docx_standards/internal/processor"
)

type fakeProcessor struct {
	mu      sync.Mutex
	fail    map[string]bool
	outputs []string
	running int32
	peak    int32
}

func (f *fakeProcessor) ProcessDocument(ctx context.Context, inputPath, outputPath string) (*processor.Result, error) {
	current := atomic.AddInt32(&f.running, 1)
	defer atomic.AddInt32(&f.running, -1)
	for {
		peak := atomic.LoadInt32(&f.peak)
		if current <= peak || atomic.CompareAndSwapInt32(&f.peak, peak, current) {
			break
		}
	}
	time.Sleep(10 * time.Millisecond)

	if f.fail[filepath.Base(inputPath)] {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedDocument, inputPath)
	}

	f.mu.Lock()
	f.outputs = append(f.outputs, outputPath)
	f.mu.Unlock()
	return &processor.Result{Input: inputPath, Output: outputPath, Corrections: 2}, nil
}

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
}

func TestFindDocxFiles(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a.docx"))
	touch(t, filepath.Join(dir, "B.DOCX"))
	touch(t, filepath.Join(dir, "~$a.docx"))
	touch(t, filepath.Join(dir, "draft_old.docx"))
	touch(t, filepath.Join(dir, "notes.txt"))
	touch(t, filepath.Join(dir, "sub", "c.docx"))

	files, err := FindDocxFiles(dir, []string{"*_old.docx", "[invalid"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		filepath.Join(dir, "a.docx"),
		filepath.Join(dir, "B.DOCX"),
		filepath.Join(dir, "sub", "c.docx"),
	}, files)

	_, err = FindDocxFiles(filepath.Join(dir, "missing"), nil)
	assert.Error(t, err)
}

func TestProcessBatchFiles(t *testing.T) {
	inputDir := t.TempDir()
	outputDir := filepath.Join(t.TempDir(), "out")
	for _, name := range []string{"a.docx", "b.docx", "c.docx", "d.docx", filepath.Join("sub", "e.docx")} {
		touch(t, filepath.Join(inputDir, name))
	}

	fp := &fakeProcessor{fail: map[string]bool{"b.docx": true}}
	result, err := ProcessBatchFiles(context.Background(), fp, inputDir, outputDir, BatchOptions{MaxConcurrent: 2}, logger.NewNop())

	require.ErrorIs(t, err, ErrBatchFailed)
	require.NotNil(t, result)
	assert.Equal(t, 5, result.Total)
	assert.Equal(t, 4, result.Succeeded)
	assert.Equal(t, 8, result.Corrections)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, filepath.Join(inputDir, "b.docx"), result.Failures[0].Path)
	assert.ErrorIs(t, result.Failures[0].Err, domain.ErrUnsupportedDocument)

	assert.Contains(t, fp.outputs, filepath.Join(outputDir, "sub", "e.docx"))
	assert.LessOrEqual(t, atomic.LoadInt32(&fp.peak), int32(2))
	assert.DirExists(t, outputDir)
}

func TestProcessBatchFiles_AllSucceed(t *testing.T) {
	inputDir := t.TempDir()
	touch(t, filepath.Join(inputDir, "a.docx"))

	result, err := ProcessBatchFiles(context.Background(), &fakeProcessor{}, inputDir, t.TempDir(), BatchOptions{}, logger.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Succeeded)
	assert.Empty(t, result.Failures)
}

func TestProcessBatchFiles_Empty(t *testing.T) {
	_, err := ProcessBatchFiles(context.Background(), &fakeProcessor{}, t.TempDir(), t.TempDir(), BatchOptions{}, logger.NewNop())
	assert.Error(t, err)
}

func TestProcessSingleFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "a.docx")
	touch(t, input)

	result, err := ProcessSingleFile(context.Background(), &fakeProcessor{}, input, filepath.Join(dir, "a_processed.docx"), logger.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 2, result.Corrections)

	_, err = ProcessSingleFile(context.Background(), &fakeProcessor{}, filepath.Join(dir, "missing.docx"), "out.docx", logger.NewNop())
	assert.Error(t, err)

	fp := &fakeProcessor{fail: map[string]bool{"a.docx": true}}
	_, err = ProcessSingleFile(context.Background(), fp, input, filepath.Join(dir, "out.docx"), logger.NewNop())
	assert.ErrorIs(t, err, domain.ErrUnsupportedDocument)
}
