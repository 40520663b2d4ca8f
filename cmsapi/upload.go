package cmsapi

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"

	ds "github.com/gurbos/gcd/datastore"
)

// UPLOAD_PATH is the CMS endpoint that stores a file and binds it to a
// record field.
const UPLOAD_PATH = "/upload"

// Upload posts the attachment as multipart/form-data with the fields the
// CMS upload plugin reads: refId, ref, field and files.
func (c *Client) Upload(ctx context.Context, att ds.Attachment) error {
	var body bytes.Buffer
	form := multipart.NewWriter(&body)

	fields := [][2]string{
		{"refId", strconv.FormatInt(att.RefId, 10)},
		{"ref", string(att.Ref)},
		{"field", att.Field},
	}
	for _, f := range fields {
		if err := form.WriteField(f[0], f[1]); err != nil {
			return fmt.Errorf("cms: write upload field %s: %w", f[0], err)
		}
	}

	part, err := form.CreateFormFile("files", att.Filename)
	if err != nil {
		return fmt.Errorf("cms: create upload part: %w", err)
	}
	if _, err := part.Write(att.Data); err != nil {
		return fmt.Errorf("cms: write upload part: %w", err)
	}
	if err := form.Close(); err != nil {
		return fmt.Errorf("cms: close upload form: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, UPLOAD_PATH, &body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", form.FormDataContentType())
	return c.do(req, nil)
}
