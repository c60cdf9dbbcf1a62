package json_test

import (
	"bytes"
	"testing"

	"github.com/kart-io/docquery/pkg/utils/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chunkPayload struct {
	DocumentID int64  `json:"document_id"`
	ChunkIndex int64  `json:"chunk_index"`
	Content    string `json:"content"`
}

func TestMarshalUnmarshalRoundTrip(t *testing.T) {
	in := chunkPayload{DocumentID: 42, ChunkIndex: 3, Content: "中文内容 with ascii"}

	data, err := json.Marshal(in)
	require.NoError(t, err)

	var out chunkPayload
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in, out)
}

func TestEncoderDecoder(t *testing.T) {
	var buf bytes.Buffer
	in := map[string]interface{}{"question": "what is this?", "max_chunks": float64(3)}

	require.NoError(t, json.NewEncoder(&buf).Encode(in))

	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(&buf).Decode(&out))
	assert.Equal(t, in["question"], out["question"])
	assert.EqualValues(t, 3, out["max_chunks"])
}

func TestUnmarshalInvalidInput(t *testing.T) {
	var out chunkPayload
	assert.Error(t, json.Unmarshal([]byte("{not json"), &out))
}
