// Package cloudinary uploads base64 images to the Cloudinary REST API
// using signed requests.
package cloudinary

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/oatrn/brawlhq/internal/app"
)

const uploadURLFmt = "https://api.cloudinary.com/v1_1/%s/image/upload"

type Config struct {
	CloudName string
	APIKey    string
	APISecret string
}

type Client struct {
	cfg       Config
	client    *http.Client
	uploadURL string
	now       func() time.Time // test hook
}

func NewClient(cfg Config) *Client {
	return &Client{
		cfg:       cfg,
		client:    &http.Client{Timeout: 30 * time.Second},
		uploadURL: fmt.Sprintf(uploadURLFmt, cfg.CloudName),
		now:       time.Now,
	}
}

type uploadResponse struct {
	PublicID  string `json:"public_id"`
	SecureURL string `json:"secure_url"`
	Error     struct {
		Message string `json:"message"`
	} `json:"error"`
}

// UploadBase64 sends the image and returns the hosted URL. The input may be
// a bare base64 string or a full data URI; Cloudinary accepts data URIs, so
// bare input gets a generic prefix.
func (c *Client) UploadBase64(ctx context.Context, base64Image, folder string) (app.UploadedImage, error) {
	file := base64Image
	if !strings.HasPrefix(file, "data:") {
		file = "data:image/png;base64," + file
	}

	publicID := uuid.NewString()
	timestamp := strconv.FormatInt(c.now().Unix(), 10)

	form := url.Values{}
	form.Set("file", file)
	form.Set("folder", folder)
	form.Set("public_id", publicID)
	form.Set("timestamp", timestamp)
	form.Set("api_key", c.cfg.APIKey)
	form.Set("signature", c.sign(folder, publicID, timestamp))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.uploadURL, strings.NewReader(form.Encode()))
	if err != nil {
		return app.UploadedImage{}, fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return app.UploadedImage{}, fmt.Errorf("upload image: %w", err)
	}
	defer resp.Body.Close()

	var body uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return app.UploadedImage{}, fmt.Errorf("decode upload response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return app.UploadedImage{}, fmt.Errorf("cloudinary: %s (status %d)", body.Error.Message, resp.StatusCode)
	}

	return app.UploadedImage{PublicID: body.PublicID, URL: body.SecureURL}, nil
}

// sign builds the SHA-1 signature over the alphabetically ordered request
// parameters, per the Cloudinary signed-upload scheme.
func (c *Client) sign(folder, publicID, timestamp string) string {
	payload := fmt.Sprintf("folder=%s&public_id=%s&timestamp=%s%s", folder, publicID, timestamp, c.cfg.APISecret)
	sum := sha1.Sum([]byte(payload))
	return hex.EncodeToString(sum[:])
}
