package textsplit_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/kart-io/docquery/internal/pkg/textsplit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitEmptyInput(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"空字符串", ""},
		{"仅空白", "   \n\t  \n\n  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, textsplit.Split(tt.text, textsplit.DefaultOptions()))
		})
	}
}

func TestSplitShortText(t *testing.T) {
	chunks := textsplit.Split("hello world", textsplit.DefaultOptions())
	require.Len(t, chunks, 1)
	assert.Equal(t, "hello world", chunks[0])
}

func TestSplitRespectsChunkSize(t *testing.T) {
	text := strings.Repeat("lorem ipsum dolor sit amet ", 200)
	opts := textsplit.Options{ChunkSize: 100, ChunkOverlap: 20}

	chunks := textsplit.Split(text, opts)
	require.NotEmpty(t, chunks)
	for i, c := range chunks {
		assert.LessOrEqual(t, utf8.RuneCountInString(c), 100, "chunk %d 超出大小限制", i)
		assert.NotEmpty(t, strings.TrimSpace(c))
	}
}

func TestSplitPrefersParagraphBoundaries(t *testing.T) {
	text := "first paragraph here.\n\nsecond paragraph here.\n\nthird paragraph here."
	chunks := textsplit.Split(text, textsplit.Options{ChunkSize: 30, ChunkOverlap: 0})

	require.Len(t, chunks, 3)
	assert.Equal(t, "first paragraph here.", chunks[0])
	assert.Equal(t, "second paragraph here.", chunks[1])
	assert.Equal(t, "third paragraph here.", chunks[2])
}

func TestSplitOverlapBetweenWindows(t *testing.T) {
	// 无分隔符的长文本走固定窗口路径，相邻窗口应共享 overlap 个字符。
	text := strings.Repeat("a", 95) + strings.Repeat("b", 95)
	chunks := textsplit.Split(text, textsplit.Options{ChunkSize: 100, ChunkOverlap: 20})

	require.Greater(t, len(chunks), 1)
	for i := 1; i < len(chunks); i++ {
		prev := []rune(chunks[i-1])
		cur := []rune(chunks[i])
		tail := string(prev[len(prev)-20:])
		assert.True(t, strings.HasPrefix(string(cur), tail),
			"chunk %d 应以前一块的尾部开头", i)
	}
}

func TestSplitCoversAllContent(t *testing.T) {
	words := []string{"alpha", "bravo", "charlie", "delta", "echo", "foxtrot", "golf", "hotel"}
	text := strings.Join(words, " ")
	chunks := textsplit.Split(text, textsplit.Options{ChunkSize: 12, ChunkOverlap: 3})

	joined := strings.Join(chunks, " ")
	for _, w := range words {
		assert.Contains(t, joined, w)
	}
}

func TestSplitDeterministic(t *testing.T) {
	text := strings.Repeat("some repeated sentence with punctuation. ", 80)
	opts := textsplit.Options{ChunkSize: 120, ChunkOverlap: 30}

	first := textsplit.Split(text, opts)
	second := textsplit.Split(text, opts)
	assert.Equal(t, first, second)
}

func TestSplitOversizedAtomicToken(t *testing.T) {
	// 分隔符列表不含空字符串兜底时，超长片段整体输出。
	long := strings.Repeat("x", 50)
	chunks := textsplit.Split("short "+long, textsplit.Options{
		ChunkSize:    20,
		ChunkOverlap: 0,
		Separators:   []string{" "},
	})

	require.Len(t, chunks, 2)
	assert.Equal(t, "short", chunks[0])
	assert.Equal(t, long, chunks[1])
}

func TestSplitUnicodeLengths(t *testing.T) {
	text := strings.Repeat("中文字符测试内容 ", 60)
	chunks := textsplit.Split(text, textsplit.Options{ChunkSize: 40, ChunkOverlap: 10})

	require.NotEmpty(t, chunks)
	for _, c := range chunks {
		assert.LessOrEqual(t, utf8.RuneCountInString(c), 40)
	}
}
