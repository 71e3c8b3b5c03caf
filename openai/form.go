package openai

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"path/filepath"
	"strconv"
	"strings"
)

// FormEncoder is implemented by queries sent as multipart/form-data.
type FormEncoder interface {
	EncodeForm(w *FormWriter) error
}

// FormWriter writes the parts of a multipart/form-data body.
// The boundary is generated by the underlying multipart.Writer.
type FormWriter struct {
	mw *multipart.Writer
}

func newFormWriter(w io.Writer) *FormWriter {
	return &FormWriter{mw: multipart.NewWriter(w)}
}

// ContentType returns the Content-Type header value, including the boundary.
func (w *FormWriter) ContentType() string {
	return w.mw.FormDataContentType()
}

// Close writes the trailing boundary.
func (w *FormWriter) Close() error {
	return w.mw.Close()
}

// WriteField writes a text part. Empty values are skipped.
func (w *FormWriter) WriteField(name, value string) error {
	if value == "" {
		return nil
	}
	return w.mw.WriteField(name, value)
}

// WriteInt writes an integer part if v is set.
func (w *FormWriter) WriteInt(name string, v *int) error {
	if v == nil {
		return nil
	}
	return w.mw.WriteField(name, strconv.Itoa(*v))
}

// WriteFloat writes a float part if v is set.
func (w *FormWriter) WriteFloat(name string, v *float64) error {
	if v == nil {
		return nil
	}
	return w.mw.WriteField(name, strconv.FormatFloat(*v, 'f', -1, 64))
}

// WriteFile writes a file part. The content type is derived from the filename
// extension, falling back to sniffing the data.
func (w *FormWriter) WriteFile(name, filename string, data []byte) error {
	if filename == "" {
		return fmt.Errorf("file field %q has no filename", name)
	}
	if len(data) == 0 {
		return fmt.Errorf("file field %q is empty", name)
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		escapeQuotes(name), escapeQuotes(filename)))
	h.Set("Content-Type", detectMIME(filename, data))

	part, err := w.mw.CreatePart(h)
	if err != nil {
		return err
	}
	_, err = part.Write(data)
	return err
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}

// detectMIME maps known image and audio extensions, then sniffs.
func detectMIME(filename string, data []byte) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".webp":
		return "image/webp"
	case ".mp3", ".mpga", ".mpeg":
		return "audio/mpeg"
	case ".mp4", ".m4a":
		return "audio/mp4"
	case ".wav":
		return "audio/wav"
	case ".ogg":
		return "audio/ogg"
	case ".flac":
		return "audio/flac"
	case ".webm":
		return "audio/webm"
	}
	return http.DetectContentType(data)
}
