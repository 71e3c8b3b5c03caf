package openai

import "encoding/json"

// EmbeddingsQuery is the body of /v1/embeddings.
type EmbeddingsQuery struct {
	Model          string          `json:"model"`
	Input          EmbeddingsInput `json:"input"`
	EncodingFormat string          `json:"encoding_format,omitempty"`
	Dimensions     *int            `json:"dimensions,omitempty"`
	User           string          `json:"user,omitempty"`
}

// EmbeddingsInput is a single text or a batch of texts.
type EmbeddingsInput struct {
	Texts []string
}

// SingleInput returns an input holding one text.
func SingleInput(text string) EmbeddingsInput {
	return EmbeddingsInput{Texts: []string{text}}
}

// MarshalJSON emits a string for one text and an array otherwise.
func (in EmbeddingsInput) MarshalJSON() ([]byte, error) {
	if len(in.Texts) == 1 {
		return json.Marshal(in.Texts[0])
	}
	if in.Texts == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(in.Texts)
}

// UnmarshalJSON accepts a string or an array of strings.
func (in *EmbeddingsInput) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		in.Texts = []string{text}
		return nil
	}
	return json.Unmarshal(data, &in.Texts)
}

// EmbeddingsResult is returned by /v1/embeddings.
type EmbeddingsResult struct {
	Object string      `json:"object"`
	Data   []Embedding `json:"data"`
	Model  string      `json:"model"`
	Usage  Usage       `json:"usage"`
}

// Embedding is the vector for one input, in input order by Index.
type Embedding struct {
	Object    string    `json:"object"`
	Embedding []float64 `json:"embedding"`
	Index     int       `json:"index"`
}
