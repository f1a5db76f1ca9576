package storage

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path"
	"strings"
	"time"
)

// UploadResult is one stored image: the delivery URL and the key needed to
// delete it later.
type UploadResult struct {
	URL      string
	Filename string
}

// Uploader defines what handlers need from image storage.
type Uploader interface {
	Upload(ctx context.Context, filename string, r io.Reader) (*UploadResult, error)
	Destroy(ctx context.Context, publicID string) error
}

// CloudinaryClient is an Uploader backed by the Cloudinary HTTP API.
type CloudinaryClient struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
	BaseURL   string // override for tests; defaults to the Cloudinary API
	Client    *http.Client
}

var allowedFormats = map[string]bool{".jpeg": true, ".jpg": true, ".png": true}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	PublicID  string `json:"public_id"`
}

func (c *CloudinaryClient) endpoint(action string) (string, error) {
	if c.CloudName == "" || c.APIKey == "" || c.APISecret == "" {
		return "", fmt.Errorf("storage: CLOUDINARY_CLOUD_NAME, CLOUDINARY_KEY and CLOUDINARY_SECRET must be set")
	}
	base := c.BaseURL
	if base == "" {
		base = "https://api.cloudinary.com"
	}
	return fmt.Sprintf("%s/v1_1/%s/image/%s", strings.TrimRight(base, "/"), c.CloudName, action), nil
}

// sign produces Cloudinary's request signature: the sorted parameter string
// with the API secret appended, hashed with SHA-1.
func (c *CloudinaryClient) sign(params string) string {
	sum := sha1.Sum([]byte(params + c.APISecret))
	return fmt.Sprintf("%x", sum)
}

// Upload sends one image to storage and returns its URL and storage key.
func (c *CloudinaryClient) Upload(ctx context.Context, filename string, r io.Reader) (*UploadResult, error) {
	ext := strings.ToLower(path.Ext(filename))
	if !allowedFormats[ext] {
		return nil, fmt.Errorf("storage: unsupported format %q", ext)
	}
	url, err := c.endpoint("upload")
	if err != nil {
		return nil, err
	}

	timestamp := fmt.Sprintf("%d", time.Now().Unix())
	signature := c.sign(fmt.Sprintf("folder=%s&timestamp=%s", c.Folder, timestamp))

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range map[string]string{
		"api_key":   c.APIKey,
		"timestamp": timestamp,
		"folder":    c.Folder,
		"signature": signature,
	} {
		if err := w.WriteField(k, v); err != nil {
			return nil, err
		}
	}
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("storage: upload failed with status %d: %s", resp.StatusCode, string(b))
	}

	var out uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return &UploadResult{URL: out.SecureURL, Filename: out.PublicID}, nil
}

// Destroy removes one image from storage by its storage key.
func (c *CloudinaryClient) Destroy(ctx context.Context, publicID string) error {
	url, err := c.endpoint("destroy")
	if err != nil {
		return err
	}

	timestamp := fmt.Sprintf("%d", time.Now().Unix())
	signature := c.sign(fmt.Sprintf("public_id=%s&timestamp=%s", publicID, timestamp))

	form := fmt.Sprintf("public_id=%s&api_key=%s&timestamp=%s&signature=%s",
		publicID, c.APIKey, timestamp, signature)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(form))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("storage: destroy failed with status %d: %s", resp.StatusCode, string(b))
	}
	return nil
}

func (c *CloudinaryClient) httpClient() *http.Client {
	if c.Client == nil {
		c.Client = &http.Client{Timeout: 10 * time.Second}
	}
	return c.Client
}
