//go:build ocr

package ocr

import (
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// Client wraps Tesseract for OCR operations.
type Client struct {
	client *gosseract.Client
	lang   string
}

// New creates an OCR client for the given language(s). Multiple languages
// are separated by "+", e.g. "eng+fra"; an empty string means
// DefaultLanguage. The client should be closed when no longer needed.
func New(lang string) (*Client, error) {
	if lang == "" {
		lang = DefaultLanguage
	}
	client := gosseract.NewClient()
	if err := client.SetLanguage(strings.Split(lang, "+")...); err != nil {
		client.Close()
		return nil, fmt.Errorf("setting OCR language %q: %w", lang, err)
	}
	return &Client{client: client, lang: lang}, nil
}

// Language returns the configured recognition language(s).
func (c *Client) Language() string {
	if c == nil {
		return ""
	}
	return c.lang
}

// Close releases OCR resources. It is safe to call on a nil client.
func (c *Client) Close() error {
	if c != nil && c.client != nil {
		err := c.client.Close()
		c.client = nil
		return err
	}
	return nil
}

// Recognize performs OCR on image data (PNG, TIFF, JPEG, etc.).
// Returns the recognized text with leading/trailing whitespace trimmed.
func (c *Client) Recognize(imageData []byte) (string, error) {
	if err := c.client.SetImageFromBytes(imageData); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}

	text, err := c.client.Text()
	if err != nil {
		return "", fmt.Errorf("OCR failed: %w", err)
	}

	return strings.TrimSpace(text), nil
}
