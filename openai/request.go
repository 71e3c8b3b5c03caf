package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/petal-labs/openaikit/core"
)

// bodyEncoding selects how a request body is serialized.
type bodyEncoding int

const (
	encodeNone bodyEncoding = iota
	encodeJSON
	encodeMultipart
)

func (e bodyEncoding) String() string {
	switch e {
	case encodeJSON:
		return "json"
	case encodeMultipart:
		return "multipart"
	default:
		return "none"
	}
}

// requestDescriptor describes one call before it is built.
type requestDescriptor struct {
	path     string
	method   string // empty selects POST with a body and GET without
	body     any
	encoding bodyEncoding
}

func jsonRequest(path string, body any) requestDescriptor {
	return requestDescriptor{path: path, body: body, encoding: encodeJSON}
}

func formRequest(path string, body FormEncoder) requestDescriptor {
	return requestDescriptor{path: path, body: body, encoding: encodeMultipart}
}

func getRequest(path string) requestDescriptor {
	return requestDescriptor{path: path, method: http.MethodGet}
}

func (d requestDescriptor) resolvedMethod() string {
	if d.method != "" {
		return d.method
	}
	if d.body != nil {
		return http.MethodPost
	}
	return http.MethodGet
}

// url returns the absolute request URL. Requests always use HTTPS.
func (c *Client) url(path string) string {
	return "https://" + c.config.Host + path
}

// buildRequest turns a descriptor into a transport request carrying the
// credentials, the encoded body and the configured headers.
// Every failure is classified as core.ErrBuild.
func (c *Client) buildRequest(ctx context.Context, d requestDescriptor) (*http.Request, error) {
	body, contentType, err := encodeBody(d)
	if err != nil {
		return nil, core.BuildError(err)
	}

	req, err := http.NewRequestWithContext(ctx, d.resolvedMethod(), c.url(d.path), body)
	if err != nil {
		return nil, core.BuildError(err)
	}

	for key, values := range c.headers {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	req.Header.Set("Authorization", c.config.Token.Bearer())
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.config.OrganizationIdentifier != "" {
		req.Header.Set("OpenAI-Organization", c.config.OrganizationIdentifier)
	}

	return req, nil
}

// encodeBody serializes the descriptor body. A nil reader means no body.
func encodeBody(d requestDescriptor) (io.Reader, string, error) {
	if d.body == nil {
		return nil, "", nil
	}

	switch d.encoding {
	case encodeJSON:
		data, err := json.Marshal(d.body)
		if err != nil {
			return nil, "", fmt.Errorf("encode %s body: %w", d.path, err)
		}
		return bytes.NewReader(data), "application/json", nil

	case encodeMultipart:
		enc, ok := d.body.(FormEncoder)
		if !ok {
			return nil, "", fmt.Errorf("encode %s body: %T is not form encodable", d.path, d.body)
		}
		var buf bytes.Buffer
		w := newFormWriter(&buf)
		if err := enc.EncodeForm(w); err != nil {
			return nil, "", fmt.Errorf("encode %s form: %w", d.path, err)
		}
		if err := w.Close(); err != nil {
			return nil, "", fmt.Errorf("encode %s form: %w", d.path, err)
		}
		return &buf, w.ContentType(), nil

	default:
		return nil, "", fmt.Errorf("encode %s body: no encoding for %T", d.path, d.body)
	}
}
