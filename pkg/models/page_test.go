package models_test

import (
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kpauljoseph/pagesplit/pkg/models"
)

var _ = Describe("Page Models", func() {
	Context("SplitPage", func() {
		It("should properly store page information", func() {
			page := models.SplitPage{
				SourcePath: "/path/to/document.tiff",
				OutputPath: filepath.Join("/out", "document_2.tiff"),
				Page:       2,
			}

			Expect(page.SourcePath).To(Equal("/path/to/document.tiff"))
			Expect(page.Page).To(Equal(2))
			Expect(page.OutputName()).To(Equal("document_2.tiff"))
		})
	})

	Context("DocumentInfo", func() {
		It("should report an empty relative dir for root documents", func() {
			doc := models.DocumentInfo{RelativePath: "scan.tiff", Kind: models.KindTIFF}
			Expect(doc.RelativeDir()).To(BeEmpty())
		})

		It("should report the nested relative dir", func() {
			doc := models.DocumentInfo{RelativePath: filepath.Join("a", "b", "scan.pdf"), Kind: models.KindPDF}
			Expect(doc.RelativeDir()).To(Equal(filepath.Join("a", "b")))
		})
	})

	DescribeTable("DocumentKind.String",
		func(kind models.DocumentKind, expected string) {
			Expect(kind.String()).To(Equal(expected))
		},
		Entry("tiff", models.KindTIFF, "tiff"),
		Entry("pdf", models.KindPDF, "pdf"),
		Entry("unknown", models.KindUnknown, "unknown"),
	)
})
