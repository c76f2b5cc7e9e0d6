//go:build !ocr

package ocr

// Client is a stub OCR client that returns errors for all operations.
type Client struct{}

// New returns ErrOCRNotEnabled.
// To enable OCR, rebuild with: go build -tags ocr
func New(lang string) (*Client, error) {
	return nil, ErrOCRNotEnabled
}

// Language returns "" for the stub client.
func (c *Client) Language() string {
	return ""
}

// Close is a no-op for the stub client.
// It is safe to call on a nil client.
func (c *Client) Close() error {
	return nil
}

// Recognize returns ErrOCRNotEnabled.
func (c *Client) Recognize(imageData []byte) (string, error) {
	return "", ErrOCRNotEnabled
}
