package anthropic

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestBlockHelpers(t *testing.T) {
	text := TextBlock("hello")
	assert.Equal(t, "text", text.Type)
	assert.Equal(t, "hello", text.Text)

	img := ImageBlock("image/png", []byte{0x89, 0x50})
	assert.Equal(t, "image", img.Type)
	assert.Equal(t, "image/png", img.MediaType)
	assert.Equal(t, []byte{0x89, 0x50}, img.Data)
}

func TestMessageResponseText(t *testing.T) {
	resp := &MessageResponse{
		Content: []ContentBlock{
			{Type: "text", Text: `{"email":`},
			{Type: "tool_use"},
			{Type: "text", Text: `"a@b.com"}`},
		},
	}
	assert.Equal(t, `{"email":"a@b.com"}`, resp.Text())

	empty := &MessageResponse{}
	assert.Equal(t, "", empty.Text())
}

func TestToSDKMessages(t *testing.T) {
	msgs := toSDKMessages([]Message{
		{Role: "user", Blocks: []ContentBlockParam{
			ImageBlock("image/jpeg", []byte("fake-image")),
			TextBlock("extract the sender's data"),
		}},
		{Role: "assistant", Blocks: []ContentBlockParam{TextBlock("{}")}},
	})

	require.Len(t, msgs, 2)
	require.Len(t, msgs[0].Content, 2)
	assert.Equal(t, "user", string(msgs[0].Role))
	assert.Equal(t, "assistant", string(msgs[1].Role))

	wire, err := json.Marshal(msgs[0])
	require.NoError(t, err)
	assert.Contains(t, string(wire), `"type":"image"`)
	assert.Contains(t, string(wire), base64.StdEncoding.EncodeToString([]byte("fake-image")))
	assert.Contains(t, string(wire), "extract the sender's data")
}

func TestMockClientRoundTrip(t *testing.T) {
	client := &MockClient{}
	client.On("CreateMessage", mock.Anything, mock.Anything).Return(&MessageResponse{
		Content: []ContentBlock{{Type: "text", Text: "{}"}},
	}, nil)

	resp, err := client.CreateMessage(context.Background(), MessageRequest{Model: "claude-haiku-4-5-20251001"})
	require.NoError(t, err)
	assert.Equal(t, "{}", resp.Text())
	client.AssertExpectations(t)
}
