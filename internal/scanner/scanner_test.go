package scanner_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kpauljoseph/pagesplit/internal/scanner"
	"github.com/kpauljoseph/pagesplit/pkg/logger"
	"github.com/kpauljoseph/pagesplit/pkg/models"
)

var _ = Describe("Scanner", func() {
	var (
		testDir    string
		testLogger *logger.Logger
		ctx        context.Context
	)

	BeforeEach(func() {
		var err error
		testDir, err = os.MkdirTemp("", "scanner-test-*")
		Expect(err).NotTo(HaveOccurred())

		testLogger = logger.New(logger.WithOutput(GinkgoWriter), logger.WithPrefix("[test] "))
		testLogger.SetLevel(logger.LevelTrace)
		ctx = context.Background()
	})

	AfterEach(func() {
		os.RemoveAll(testDir)
	})

	Context("when scanning an empty directory", func() {
		It("should return an error", func() {
			s := scanner.New(testLogger)
			_, err := s.FindDocuments(ctx, testDir)
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("no documents found"))
		})
	})

	Context("when scanning a directory with documents", func() {
		BeforeEach(func() {
			for i := 1; i <= 2; i++ {
				err := os.WriteFile(filepath.Join(testDir, fmt.Sprintf("scan%d.tiff", i)), []byte("dummy"), 0644)
				Expect(err).NotTo(HaveOccurred())
			}
			for _, name := range []string{"fax.TIF", "report.pdf", "notes.txt", "photo.png"} {
				err := os.WriteFile(filepath.Join(testDir, name), []byte("dummy"), 0644)
				Expect(err).NotTo(HaveOccurred())
			}
		})

		It("should find only the default document types", func() {
			s := scanner.New(testLogger)
			docs, err := s.FindDocuments(ctx, testDir)
			Expect(err).NotTo(HaveOccurred())

			var names []string
			for _, doc := range docs {
				names = append(names, doc.RelativePath)
				Expect(filepath.IsAbs(doc.AbsolutePath)).To(BeTrue())
			}
			Expect(names).To(ConsistOf("scan1.tiff", "scan2.tiff", "fax.TIF", "report.pdf"))
		})

		It("should honor a custom extension list", func() {
			s := scanner.New(testLogger, ".PNG")
			docs, err := s.FindDocuments(ctx, testDir)
			Expect(err).NotTo(HaveOccurred())
			Expect(docs).To(HaveLen(1))
			Expect(docs[0].RelativePath).To(Equal("photo.png"))
			Expect(docs[0].Kind).To(Equal(models.KindUnknown))
		})
	})

	Context("when scanning nested directories", func() {
		BeforeEach(func() {
			nestedDir := filepath.Join(testDir, "nested")
			err := os.MkdirAll(nestedDir, 0755)
			Expect(err).NotTo(HaveOccurred())

			files := []string{
				filepath.Join(testDir, "root.tiff"),
				filepath.Join(nestedDir, "nested.pdf"),
			}

			for _, file := range files {
				err := os.WriteFile(file, []byte("dummy"), 0644)
				Expect(err).NotTo(HaveOccurred())
			}
		})

		It("should find documents in all subdirectories", func() {
			s := scanner.New(testLogger)
			docs, err := s.FindDocuments(ctx, testDir)

			Expect(err).NotTo(HaveOccurred())
			Expect(docs).To(HaveLen(2))

			byName := map[string]models.DocumentInfo{}
			for _, doc := range docs {
				byName[filepath.Base(doc.RelativePath)] = doc
			}
			Expect(byName).To(HaveKey("root.tiff"))
			Expect(byName).To(HaveKey("nested.pdf"))
			Expect(byName["root.tiff"].Kind).To(Equal(models.KindTIFF))
			Expect(byName["root.tiff"].RelativeDir()).To(BeEmpty())
			Expect(byName["nested.pdf"].Kind).To(Equal(models.KindPDF))
			Expect(byName["nested.pdf"].RelativeDir()).To(Equal("nested"))
		})
	})

	Context("when context is cancelled", func() {
		It("should stop scanning", func() {
			deepDir := filepath.Join(testDir, "deep", "deeper", "deepest")
			err := os.MkdirAll(deepDir, 0755)
			Expect(err).NotTo(HaveOccurred())

			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			s := scanner.New(testLogger)
			_, err = s.FindDocuments(ctx, testDir)

			Expect(err).To(Equal(context.Canceled))
		})
	})

	DescribeTable("KindOf",
		func(path string, kind models.DocumentKind) {
			Expect(scanner.KindOf(path)).To(Equal(kind))
		},
		Entry("tiff", "a.tiff", models.KindTIFF),
		Entry("upper case tif", "A.TIF", models.KindTIFF),
		Entry("pdf", "b.pdf", models.KindPDF),
		Entry("other", "c.png", models.KindUnknown),
	)
})
