package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"

	"helmetwatch/internal/model"
)

const (
	// MaxUploadSize mirrors the server's upload limit.
	MaxUploadSize = 5 * 1024 * 1024
	// maxResponseSize bounds how much of an annotated image is read.
	maxResponseSize = 32 * 1024 * 1024

	detectPath = "/detect"
	imageField = "image"
)

// Annotated is the image returned by the detection endpoint.
type Annotated struct {
	Data     []byte
	MIMEType string
}

// DetectClient uploads frames to the detection endpoint.
type DetectClient struct {
	url  string
	http *http.Client
}

// NewDetectClient creates a client for baseURL + "/detect".
func NewDetectClient(baseURL string, httpClient *http.Client) *DetectClient {
	if httpClient == nil {
		httpClient = NewHTTPClient(DefaultTimeout)
	}
	return &DetectClient{url: baseURL + detectPath, http: httpClient}
}

// Detect posts frame as the multipart field "image" and returns the
// annotated image. Any failure wraps ErrTransientRequest.
func (c *DetectClient) Detect(ctx context.Context, frame model.Frame) (Annotated, error) {
	if frame.Size() > MaxUploadSize {
		return Annotated{}, fmt.Errorf("%w: frame of %d bytes exceeds upload limit", ErrTransientRequest, frame.Size())
	}

	body, contentType, err := multipartFrame(frame)
	if err != nil {
		return Annotated{}, fmt.Errorf("failed to build multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, body)
	if err != nil {
		return Annotated{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.http.Do(req)
	if err != nil {
		return Annotated{}, fmt.Errorf("%w: %v", ErrTransientRequest, err)
	}
	defer resp.Body.Close()

	if !success(resp.StatusCode) {
		io.Copy(io.Discard, resp.Body)
		return Annotated{}, &StatusError{Endpoint: detectPath, StatusCode: resp.StatusCode}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return Annotated{}, fmt.Errorf("%w: failed to read response: %v", ErrTransientRequest, err)
	}

	mimeType := resp.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}
	return Annotated{Data: data, MIMEType: mimeType}, nil
}

func multipartFrame(frame model.Frame) (*bytes.Buffer, string, error) {
	var b bytes.Buffer
	w := multipart.NewWriter(&b)

	mimeType := frame.MIMEType
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="frame.jpg"`, imageField))
	h.Set("Content-Type", mimeType)

	fw, err := w.CreatePart(h)
	if err != nil {
		return nil, "", err
	}
	if _, err := fw.Write(frame.Data); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &b, w.FormDataContentType(), nil
}
