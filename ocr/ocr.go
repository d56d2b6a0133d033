//go:build ocr

// Package ocr recognises text in scanned page images.
//
// This package wraps the Tesseract OCR engine via gosseract. It requires
// Tesseract to be installed on the system. On macOS, install via:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr
package ocr

import (
	"fmt"
	"image"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// Client wraps Tesseract for OCR operations.
type Client struct {
	client *gosseract.Client
}

// New creates a client for the given language(s), "+" separated
// ("eng+fra"). An empty lang means DefaultLanguage.
// The client should be closed when no longer needed to release resources.
func New(lang string) (*Client, error) {
	if lang == "" {
		lang = DefaultLanguage
	}
	client := gosseract.NewClient()
	if err := client.SetLanguage(lang); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set language %q: %w", lang, err)
	}
	// Statements are laid out in columns; automatic segmentation keeps
	// each line together.
	if err := client.SetPageSegMode(gosseract.PSM_AUTO); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set page segmentation: %w", err)
	}
	return &Client{client: client}, nil
}

// Close releases OCR resources.
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	err := c.client.Close()
	c.client = nil
	return err
}

// RecognizeImage performs OCR on encoded image data (PNG, TIFF, JPEG).
// Returns the recognized text with leading/trailing whitespace trimmed.
func (c *Client) RecognizeImage(imageData []byte) (string, error) {
	if err := c.client.SetImageFromBytes(imageData); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}

	text, err := c.client.Text()
	if err != nil {
		return "", fmt.Errorf("OCR failed: %w", err)
	}

	return strings.TrimSpace(text), nil
}

// RecognizeLines prepares img for Tesseract and returns the non-blank
// lines it reads, top to bottom.
func (c *Client) RecognizeLines(img image.Image) ([]string, error) {
	data, err := encodePNG(Prepare(img, MinWidth))
	if err != nil {
		return nil, err
	}
	text, err := c.RecognizeImage(data)
	if err != nil {
		return nil, err
	}
	return SplitLines(text), nil
}
