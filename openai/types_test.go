package openai

import (
	"encoding/json"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatContentMarshal(t *testing.T) {
	tests := []struct {
		name    string
		content ChatContent
		want    string
	}{
		{name: "text", content: ChatContent{Text: "hi"}, want: `"hi"`},
		{name: "empty", content: ChatContent{}, want: `null`},
		{
			name: "parts win over text",
			content: ChatContent{Text: "ignored", Parts: []ChatContentPart{
				{Type: "text", Text: "look"},
				{Type: "image_url", ImageURL: &ImageURL{URL: "https://x/cat.png"}},
			}},
			want: `[{"type":"text","text":"look"},{"type":"image_url","image_url":{"url":"https://x/cat.png"}}]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.content)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(data))
		})
	}
}

func TestChatMessageUnmarshalContentForms(t *testing.T) {
	var msgs []ChatMessage
	err := json.Unmarshal([]byte(`[
		{"role":"assistant","content":"plain"},
		{"role":"user","content":[{"type":"text","text":"a"},{"type":"text","text":"b"}]},
		{"role":"assistant","content":null,"tool_calls":[{"id":"call_1","type":"function","function":{"name":"lookup","arguments":"{\"q\":1}"}}]}
	]`), &msgs)
	require.NoError(t, err)
	require.Len(t, msgs, 3)

	assert.Equal(t, "plain", msgs[0].Content.String())
	assert.Equal(t, "ab", msgs[1].Content.String())
	assert.Len(t, msgs[1].Content.Parts, 2)
	assert.Empty(t, msgs[2].Content.String())
	assert.Equal(t, "lookup", msgs[2].ToolCalls[0].Function.Name)
}

func TestToolChoiceForms(t *testing.T) {
	data, err := json.Marshal(ToolChoice{Mode: "auto"})
	require.NoError(t, err)
	assert.JSONEq(t, `"auto"`, string(data))

	data, err = json.Marshal(ToolChoice{Function: "lookup"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"function","function":{"name":"lookup"}}`, string(data))

	var tc ToolChoice
	require.NoError(t, json.Unmarshal([]byte(`{"type":"function","function":{"name":"f"}}`), &tc))
	assert.Equal(t, "f", tc.Function)
}

func TestEmbeddingsInput(t *testing.T) {
	data, err := json.Marshal(SingleInput("one"))
	require.NoError(t, err)
	assert.JSONEq(t, `"one"`, string(data))

	data, err = json.Marshal(EmbeddingsInput{Texts: []string{"a", "b"}})
	require.NoError(t, err)
	assert.JSONEq(t, `["a","b"]`, string(data))

	var in EmbeddingsInput
	require.NoError(t, json.Unmarshal([]byte(`"solo"`), &in))
	assert.Equal(t, []string{"solo"}, in.Texts)
}

func TestStreamableDoesNotMutate(t *testing.T) {
	q := CompletionsQuery{Model: "m"}
	s := q.Streamable()

	assert.True(t, s.Stream)
	assert.False(t, q.Stream)

	data, err := json.Marshal(q)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "stream")
}

func TestChatStreamResultText(t *testing.T) {
	var r ChatStreamResult
	require.NoError(t, json.Unmarshal([]byte(`{"choices":[{"index":0,"delta":{"role":"assistant"},"finish_reason":null}]}`), &r))
	assert.Empty(t, r.Text())
	assert.Nil(t, r.Choices[0].FinishReason)

	assert.Empty(t, ChatStreamResult{}.Text())
}

func TestModerationFlaggedCategories(t *testing.T) {
	r := ModerationResult{Categories: map[string]bool{"hate": true, "violence": false, "self-harm": true}}

	got := r.FlaggedCategories()
	sort.Strings(got)
	assert.Equal(t, []string{"hate", "self-harm"}, got)
}

func TestAudioFileType(t *testing.T) {
	for _, ft := range []AudioFileType{AudioFLAC, AudioMP3, AudioMPGA, AudioMP4, AudioM4A, AudioMPEG, AudioOGG, AudioWAV, AudioWEBM} {
		assert.True(t, ft.Valid(), ft)
	}
	assert.False(t, AudioFileType("aac").Valid())
	assert.Equal(t, "file.ogg", AudioOGG.filename())
}
