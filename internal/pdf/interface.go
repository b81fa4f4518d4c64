package pdf

import (
	"github.com/kpauljoseph/pagesplit/pkg/models"
)

type PageSplitter interface {
	Split(sourcePath, outputDir string) ([]models.SplitPage, error)
}
