package acceptance_test

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/image/tiff"

	"github.com/kpauljoseph/pagesplit/internal/cli"
	"github.com/kpauljoseph/pagesplit/internal/imagefile/imagefiletest"
	"github.com/kpauljoseph/pagesplit/pkg/utils"
	"github.com/kpauljoseph/pagesplit/tests/acceptance"
)

var _ = Describe("tiffsplit End-to-End", Ordered, func() {
	var (
		fixtureDir string
		outputDir  string
		document   acceptance.Fixture
		scanPage   acceptance.Fixture
		photo      acceptance.Fixture
		stdout     *bytes.Buffer
		stderr     *bytes.Buffer
	)

	run := func(args ...string) int {
		stdout.Reset()
		stderr.Reset()
		code := cli.RunSplit(args, stdout, stderr)
		GinkgoWriter.Printf("tiffsplit %v -> %d\nstdout: %sstderr: %s\n", args, code, stdout, stderr)
		return code
	}

	BeforeAll(func() {
		var err error
		fixtureDir, err = os.MkdirTemp("", "pagesplit-acceptance-*")
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(os.RemoveAll, fixtureDir)

		document, err = acceptance.WriteTIFFFixture(fixtureDir, "document.tiff", binary.LittleEndian,
			imagefiletest.RGBFrame(40, 30, 1),
			imagefiletest.GrayFrame(25, 50, 2),
			imagefiletest.RGBFrame(12, 12, 3),
		)
		Expect(err).NotTo(HaveOccurred())

		scanPage, err = acceptance.WriteTIFFFixture(fixtureDir, "scan.page.tiff", binary.BigEndian,
			imagefiletest.GrayFrames(16, 16, 2)...,
		)
		Expect(err).NotTo(HaveOccurred())

		photo, err = acceptance.WritePNGFixture(fixtureDir, "photo.tiff", imagefiletest.RGBFrame(20, 20, 9))
		Expect(err).NotTo(HaveOccurred())

		stdout = &bytes.Buffer{}
		stderr = &bytes.Buffer{}
	})

	BeforeEach(func() {
		var err error
		outputDir, err = os.MkdirTemp("", "pagesplit-output-*")
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(os.RemoveAll, outputDir)
	})

	Context("Multi-page document", Label("happy-path"), func() {
		It("should split document.tiff into three pages", func() {
			By("Running tiffsplit on a three page TIFF")
			Expect(run(document.Path, outputDir)).To(Equal(cli.ExitOK))
			Expect(stdout.String()).To(Equal("Split 3 pages successfully.\n"))

			By("Checking the output directory")
			hashes, err := acceptance.FileHashes(outputDir)
			Expect(err).NotTo(HaveOccurred())
			Expect(acceptance.SortedNames(hashes)).To(Equal([]string{
				"document_1.tiff", "document_2.tiff", "document_3.tiff",
			}))

			By("Verifying every page decodes to the source pixels")
			for i, frame := range document.Frames {
				path := filepath.Join(outputDir, fmt.Sprintf("document_%d.tiff", i+1))
				f, err := os.Open(path)
				Expect(err).NotTo(HaveOccurred())
				got, err := tiff.Decode(f)
				f.Close()
				Expect(err).NotTo(HaveOccurred())

				want, _ := utils.GenerateImageHash(frame)
				have, _ := utils.GenerateImageHash(got)
				Expect(have).To(Equal(want), "page %d", i+1)
			}
		})

		It("should reproduce identical files on a re-run", func() {
			Expect(run(document.Path, outputDir)).To(Equal(cli.ExitOK))
			first, err := acceptance.FileHashes(outputDir)
			Expect(err).NotTo(HaveOccurred())

			Expect(run(document.Path, outputDir)).To(Equal(cli.ExitOK))
			second, err := acceptance.FileHashes(outputDir)
			Expect(err).NotTo(HaveOccurred())

			Expect(second).To(Equal(first))
		})
	})

	Context("File names with several dots", func() {
		It("should name pages after the text before the first dot", func() {
			Expect(run(scanPage.Path, outputDir)).To(Equal(cli.ExitOK))
			Expect(stdout.String()).To(Equal("Split 2 pages successfully.\n"))

			hashes, err := acceptance.FileHashes(outputDir)
			Expect(err).NotTo(HaveOccurred())
			Expect(acceptance.SortedNames(hashes)).To(Equal([]string{"scan_1.tiff", "scan_2.tiff"}))
		})
	})

	Context("Non-TIFF input", func() {
		It("should leave the output directory empty", func() {
			Expect(run(photo.Path, outputDir)).To(Equal(cli.ExitOK))
			Expect(stdout.String()).To(Equal("Not a multi-page TIFF.\n"))

			hashes, err := acceptance.FileHashes(outputDir)
			Expect(err).NotTo(HaveOccurred())
			Expect(hashes).To(BeEmpty())
		})
	})

	Context("Unreadable input", Label("error-path"), func() {
		It("should exit with an error", func() {
			Expect(run(filepath.Join(fixtureDir, "missing.tiff"), outputDir)).To(Equal(cli.ExitError))
			Expect(stdout.String()).To(BeEmpty())
			Expect(stderr.String()).NotTo(BeEmpty())
		})
	})
})
