package openai

// Image response formats.
const (
	ImageFormatURL     = "url"
	ImageFormatB64JSON = "b64_json"
)

// ImagesQuery is the body of /v1/images/generations.
type ImagesQuery struct {
	Prompt         string `json:"prompt"`
	Model          string `json:"model,omitempty"`
	N              *int   `json:"n,omitempty"`
	Quality        string `json:"quality,omitempty"`
	ResponseFormat string `json:"response_format,omitempty"`
	Size           string `json:"size,omitempty"`
	Style          string `json:"style,omitempty"`
	User           string `json:"user,omitempty"`
}

// ImageEditsQuery is the form body of /v1/images/edits. Image must be a PNG;
// Mask, when set, marks the transparent area to edit.
type ImageEditsQuery struct {
	Image          []byte
	Mask           []byte
	Prompt         string
	Model          string
	N              *int
	ResponseFormat string
	Size           string
	User           string
}

// EncodeForm implements FormEncoder.
func (q ImageEditsQuery) EncodeForm(w *FormWriter) error {
	if err := w.WriteFile("image", "image.png", q.Image); err != nil {
		return err
	}
	if len(q.Mask) > 0 {
		if err := w.WriteFile("mask", "mask.png", q.Mask); err != nil {
			return err
		}
	}
	if err := writeFields(w,
		field{"prompt", q.Prompt},
		field{"model", q.Model},
		field{"response_format", q.ResponseFormat},
		field{"size", q.Size},
		field{"user", q.User},
	); err != nil {
		return err
	}
	return w.WriteInt("n", q.N)
}

// ImageVariationsQuery is the form body of /v1/images/variations.
type ImageVariationsQuery struct {
	Image          []byte
	Model          string
	N              *int
	ResponseFormat string
	Size           string
	User           string
}

// EncodeForm implements FormEncoder.
func (q ImageVariationsQuery) EncodeForm(w *FormWriter) error {
	if err := w.WriteFile("image", "image.png", q.Image); err != nil {
		return err
	}
	if err := writeFields(w,
		field{"model", q.Model},
		field{"response_format", q.ResponseFormat},
		field{"size", q.Size},
		field{"user", q.User},
	); err != nil {
		return err
	}
	return w.WriteInt("n", q.N)
}

// ImagesResult is returned by every image endpoint.
type ImagesResult struct {
	Created int64       `json:"created"`
	Data    []ImageData `json:"data"`
}

// ImageData holds one image as a URL or base64 data.
type ImageData struct {
	URL           string `json:"url,omitempty"`
	B64JSON       string `json:"b64_json,omitempty"`
	RevisedPrompt string `json:"revised_prompt,omitempty"`
}

// field is a named text part.
type field struct {
	name, value string
}

// writeFields writes text parts in order, stopping at the first error.
func writeFields(w *FormWriter, fields ...field) error {
	for _, f := range fields {
		if err := w.WriteField(f.name, f.value); err != nil {
			return err
		}
	}
	return nil
}
