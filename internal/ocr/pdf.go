package ocr

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/dlifeofjay/payslip/internal/common"
)

// RenderPDF rasterizes every page of a PDF to PNG files in a temp dir and
// returns their paths in page order. Call cleanup() to remove them.
func (r *Recognizer) RenderPDF(ctx context.Context, path string) (pages []string, cleanup func(), err error) {
	tmpDir, err := os.MkdirTemp(r.cfg.ArtifactCacheDir, "payslip-pdf-*")
	if err != nil {
		return nil, nil, common.DecodeError("cannot create page render dir", err)
	}
	cleanup = func() { _ = os.RemoveAll(tmpDir) }

	prefix := filepath.Join(tmpDir, "page")
	// pdftoppm -r <dpi> -png <in.pdf> <tmp/page>
	_, errb, err := r.runner.Run(ctx, r.cfg.Pdftoppm, "-r", fmt.Sprintf("%d", r.cfg.DPI), "-png", path, prefix)
	if err != nil {
		r.logger.Error("ocr.render.failed", "path", path, "error", err, "stderr", truncate(string(errb), 2<<10))
		return nil, cleanup, common.DecodeError("pdftoppm failed", err)
	}

	// generated as prefix-1.png, prefix-2.png, ...
	matches, _ := filepath.Glob(prefix + "-*.png")
	sort.Strings(matches)
	if r.cfg.MaxPages > 0 && len(matches) > r.cfg.MaxPages {
		matches = matches[:r.cfg.MaxPages]
	}
	if len(matches) == 0 {
		return nil, cleanup, common.DecodeError("pdftoppm produced no pages", nil)
	}
	return matches, cleanup, nil
}
