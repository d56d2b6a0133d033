package reader

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	pdfmodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	_ "golang.org/x/image/tiff"
)

var disableConfigDir sync.Once

// PageImage is a raster image embedded in a page.
type PageImage struct {
	Page  int    // zero-based page index
	Name  string // file name pdfcpu assigned on extraction
	Image image.Image
}

// Width returns the image width in pixels
func (img PageImage) Width() int {
	return img.Image.Bounds().Dx()
}

// Height returns the image height in pixels
func (img PageImage) Height() int {
	return img.Image.Bounds().Dy()
}

// ToPNG encodes the image as PNG, the format handed to the OCR engine.
func (img PageImage) ToPNG() ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img.Image); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// PageImages extracts and decodes the images on the page with the given
// zero-based index. Images in formats the standard decoders (plus TIFF)
// cannot read, such as JPEG 2000, are skipped.
func PageImages(path string, index int) ([]PageImage, error) {
	disableConfigDir.Do(func() {
		pdfmodel.ConfigPath = "disable"
	})

	outDir, err := os.MkdirTemp("", "finextract-images-")
	if err != nil {
		return nil, fmt.Errorf("failed to create image dir: %w", err)
	}
	defer os.RemoveAll(outDir)

	conf := pdfmodel.NewDefaultConfiguration()
	conf.ValidationMode = pdfmodel.ValidationRelaxed

	selected := []string{strconv.Itoa(index + 1)}
	if err := api.ExtractImagesFile(path, outDir, selected, conf); err != nil {
		return nil, fmt.Errorf("failed to extract images from page %d: %w", index, err)
	}

	entries, err := os.ReadDir(outDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read image dir: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	var images []PageImage
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		img, err := decodeFile(filepath.Join(outDir, entry.Name()))
		if err != nil {
			continue
		}
		images = append(images, PageImage{Page: index, Name: entry.Name(), Image: img})
	}
	return images, nil
}

func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	return img, err
}
