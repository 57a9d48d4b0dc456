/*
Package epub packages one or more typeset pages into a minimal EPUB
(OCF) container: a mimetype entry, an OPF package document, an XHTML
file per page carrying each frame as an absolutely positioned, styled
box, and (optionally) a post-processing pass that strips zip data
descriptors for readers that choke on them.
*/
package epub

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path"

	"github.com/beevik/etree"
	"github.com/gosimple/slug"
	fixzip "github.com/hidez8891/zip"

	"github.com/zenpl/GPTrans/core/model"
)

const mimetypeContent = "application/epub+zip"
const oebpsDir = "OEBPS"

// Options controls EPUB generation.
type Options struct {
	Title string
	// FixZip, when true, re-writes the archive dropping zip data
	// descriptors, for readers that require entries to carry exact
	// sizes up front.
	FixZip bool
}

// Generate writes an EPUB containing one XHTML chapter per page to
// outputPath.
func Generate(pages []model.TypesetPage, outputPath string, opts Options) error {
	tmpPath := outputPath + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("unable to create output file: %w", err)
	}
	defer os.Remove(tmpPath)

	zw := zip.NewWriter(f)
	if err := writeMimetype(zw); err != nil {
		f.Close()
		return fmt.Errorf("unable to write mimetype: %w", err)
	}
	if err := writeContainer(zw); err != nil {
		f.Close()
		return fmt.Errorf("unable to write container: %w", err)
	}

	chapterFiles := make([]string, 0, len(pages))
	for i, page := range pages {
		name := fmt.Sprintf("%s-%03d.xhtml", slug.Make(nonEmpty(opts.Title, "page")), i)
		if err := writeChapter(zw, name, page); err != nil {
			f.Close()
			return fmt.Errorf("unable to write chapter %s: %w", name, err)
		}
		chapterFiles = append(chapterFiles, name)
	}

	if err := writePackageDocument(zw, opts, chapterFiles); err != nil {
		f.Close()
		return fmt.Errorf("unable to write package document: %w", err)
	}

	if err := zw.Close(); err != nil {
		f.Close()
		return fmt.Errorf("unable to close archive: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("unable to finalize output file: %w", err)
	}

	if opts.FixZip {
		return copyZipWithoutDataDescriptors(tmpPath, outputPath)
	}
	return copyFile(tmpPath, outputPath)
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func writeMimetype(zw *zip.Writer) error {
	w, err := zw.CreateHeader(&zip.FileHeader{Name: "mimetype", Method: zip.Store})
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, mimetypeContent)
	return err
}

func writeContainer(zw *zip.Writer) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	container := doc.CreateElement("container")
	container.CreateAttr("version", "1.0")
	container.CreateAttr("xmlns", "urn:oasis:names:tc:opendocument:xmlns:container")
	rootfiles := container.CreateElement("rootfiles")
	rootfile := rootfiles.CreateElement("rootfile")
	rootfile.CreateAttr("full-path", path.Join(oebpsDir, "content.opf"))
	rootfile.CreateAttr("media-type", "application/oebps-package+xml")
	return writeXMLToZip(zw, "META-INF/container.xml", doc)
}

func writeChapter(zw *zip.Writer, name string, page model.TypesetPage) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	html := doc.CreateElement("html")
	html.CreateAttr("xmlns", "http://www.w3.org/1999/xhtml")
	body := html.CreateElement("body")
	body.CreateAttr("style", fmt.Sprintf("position:relative;width:%gpx;height:%gpx", page.Width, page.Height))

	for _, frame := range page.Frames {
		div := body.CreateElement("div")
		div.CreateAttr("id", frame.BlockID)
		div.CreateAttr("style", absolutePositionCSS(frame))
		div.SetText(frame.Content)
	}
	return writeXMLToZip(zw, path.Join(oebpsDir, name), doc)
}

func absolutePositionCSS(frame model.TypesetFrame) string {
	css := fmt.Sprintf("position:absolute;left:%gpx;top:%gpx;width:%gpx;height:%gpx;",
		frame.BBox.X, frame.BBox.Y, frame.BBox.W, frame.BBox.H)
	for k, v := range frame.Style.CSS() {
		css += fmt.Sprintf("%s:%s;", k, v)
	}
	return css
}

func writePackageDocument(zw *zip.Writer, opts Options, chapterFiles []string) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	pkg := doc.CreateElement("package")
	pkg.CreateAttr("xmlns", "http://www.idpf.org/2007/opf")
	pkg.CreateAttr("version", "3.0")
	pkg.CreateAttr("unique-identifier", "bookid")

	metadata := pkg.CreateElement("metadata")
	metadata.CreateAttr("xmlns:dc", "http://purl.org/dc/elements/1.1/")
	title := metadata.CreateElement("dc:title")
	title.SetText(nonEmpty(opts.Title, "Untitled"))

	manifest := pkg.CreateElement("manifest")
	for i, name := range chapterFiles {
		item := manifest.CreateElement("item")
		item.CreateAttr("id", fmt.Sprintf("chapter-%d", i))
		item.CreateAttr("href", name)
		item.CreateAttr("media-type", "application/xhtml+xml")
	}

	spine := pkg.CreateElement("spine")
	for i := range chapterFiles {
		itemref := spine.CreateElement("itemref")
		itemref.CreateAttr("idref", fmt.Sprintf("chapter-%d", i))
	}
	return writeXMLToZip(zw, path.Join(oebpsDir, "content.opf"), doc)
}

func writeXMLToZip(zw *zip.Writer, name string, doc *etree.Document) error {
	w, err := zw.Create(name)
	if err != nil {
		return err
	}
	doc.Indent(2)
	_, err = doc.WriteTo(w)
	return err
}

func copyZipWithoutDataDescriptors(from, to string) error {
	out, err := os.Create(to)
	if err != nil {
		return fmt.Errorf("unable to create target file (%s): %w", to, err)
	}
	defer out.Close()

	r, err := fixzip.OpenReader(from)
	if err != nil {
		return fmt.Errorf("unable to read archive file (%s): %w", from, err)
	}
	defer r.Close()

	w := fixzip.NewWriter(out)
	defer w.Close()

	for _, file := range r.File {
		file.Flags &= ^fixzip.FlagDataDescriptor
		if err := w.CopyFile(file); err != nil {
			return fmt.Errorf("unable to write target file (%s): %w", to, err)
		}
	}
	return nil
}

func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open source file: %w", err)
	}
	defer sourceFile.Close()

	destFile, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create destination file: %w", err)
	}
	defer destFile.Close()

	if _, err = io.Copy(destFile, sourceFile); err != nil {
		return fmt.Errorf("failed to copy file contents: %w", err)
	}
	return destFile.Close()
}
