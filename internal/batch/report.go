package batch

import (
	"time"

	"github.com/kpauljoseph/pagesplit/pkg/logger"
	"github.com/kpauljoseph/pagesplit/pkg/models"
)

type Failure struct {
	RelativePath string
	Err          error
}

type Report struct {
	StartTime time.Time
	EndTime   time.Time

	Documents int
	Split     int
	Skipped   int
	Failures  []Failure
	Pages     []models.SplitPage
	// Overwritten lists pages that replaced output written earlier in the
	// same run, e.g. scan.a.tiff and scan.b.tiff both producing scan_1.tiff.
	Overwritten []models.SplitPage

	sources map[string]string
}

// addPage records page. When an earlier page of this run went to the same
// output path, it returns that page's source.
func (r *Report) addPage(page models.SplitPage) (previousSource string, overwrote bool) {
	if r.sources == nil {
		r.sources = make(map[string]string)
	}

	previousSource, overwrote = r.sources[page.OutputPath]
	if overwrote {
		r.Overwritten = append(r.Overwritten, page)
	}
	r.sources[page.OutputPath] = page.SourcePath
	r.Pages = append(r.Pages, page)
	return previousSource, overwrote
}

func (r *Report) Failed() int {
	return len(r.Failures)
}

func (r *Report) TotalPages() int {
	return len(r.Pages)
}

func (r *Report) Duration() time.Duration {
	if r.EndTime.IsZero() {
		return time.Since(r.StartTime)
	}
	return r.EndTime.Sub(r.StartTime)
}

func (r *Report) Print(log *logger.Logger) {
	log.Info("Splitting complete:")
	log.Info("- Documents found: %d", r.Documents)
	log.Info("- Documents split: %d", r.Split)
	log.Info("- Documents skipped: %d", r.Skipped)
	log.Info("- Documents failed: %d", r.Failed())
	log.Info("- Pages written: %d", r.TotalPages())
	if len(r.Overwritten) > 0 {
		log.Warn("- Pages overwritten by a later document: %d", len(r.Overwritten))
	}
	log.Info("- Duration: %s", r.Duration().Round(time.Millisecond))

	for _, f := range r.Failures {
		log.Info("  failed: %s: %v", f.RelativePath, f.Err)
	}
}
