//go:build !ocr

// Package ocr recognises text in scanned page images.
//
// This is the stub implementation used when the "ocr" build tag is not set.
// New returns ErrOCRNotEnabled; image preparation still works.
//
// To enable OCR, rebuild with the "ocr" build tag:
//
//	go build -tags ocr
//
// This requires Tesseract to be installed. On macOS:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr
package ocr

import "image"

// Client is a stub OCR client that returns errors for all operations.
type Client struct{}

// New returns an error indicating OCR support is not enabled.
// To enable OCR, rebuild with: go build -tags ocr
func New(lang string) (*Client, error) {
	return nil, ErrOCRNotEnabled
}

// Close is a no-op for the stub client.
// It is safe to call on a nil client.
func (c *Client) Close() error {
	return nil
}

// RecognizeImage returns an error indicating OCR support is not enabled.
func (c *Client) RecognizeImage(imageData []byte) (string, error) {
	return "", ErrOCRNotEnabled
}

// RecognizeLines returns an error indicating OCR support is not enabled.
func (c *Client) RecognizeLines(img image.Image) ([]string, error) {
	return nil, ErrOCRNotEnabled
}
