// Package textsplit 提供递归字符文本分割，用于文档入库前的切块。
package textsplit

import (
	"strings"
	"unicode/utf8"
)

const (
	// DefaultChunkSize 默认块大小（Unicode 字符数）。
	DefaultChunkSize = 1000
	// DefaultChunkOverlap 默认相邻块之间的重叠大小。
	DefaultChunkOverlap = 200
)

// DefaultSeparators 默认分隔符，按优先级从高到低排列。
// 空字符串表示按固定字符窗口兜底切分。
var DefaultSeparators = []string{"\n\n", "\n", " ", ""}

// Options 控制分割行为。零值字段使用默认值。
type Options struct {
	ChunkSize    int
	ChunkOverlap int
	Separators   []string
}

// DefaultOptions 返回默认分割配置。
func DefaultOptions() Options {
	return Options{
		ChunkSize:    DefaultChunkSize,
		ChunkOverlap: DefaultChunkOverlap,
		Separators:   DefaultSeparators,
	}
}

// Split 将文本分割成带重叠的块。
// 优先使用高优先级分隔符切分，超长片段递归使用后续分隔符。
// 分割结果确定且幂等；空白文本返回 nil。
func Split(text string, opts Options) []string {
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = DefaultChunkSize
	}
	if opts.ChunkOverlap < 0 {
		opts.ChunkOverlap = 0
	}
	if opts.ChunkOverlap >= opts.ChunkSize {
		opts.ChunkOverlap = opts.ChunkSize - 1
	}
	if len(opts.Separators) == 0 {
		opts.Separators = DefaultSeparators
	}
	if strings.TrimSpace(text) == "" {
		return nil
	}

	chunks := splitRecursive(text, opts.Separators, opts.ChunkSize, opts.ChunkOverlap)

	out := make([]string, 0, len(chunks))
	for _, c := range chunks {
		if strings.TrimSpace(c) != "" {
			out = append(out, c)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func splitRecursive(text string, separators []string, size, overlap int) []string {
	sep := separators[len(separators)-1]
	var rest []string
	for i, s := range separators {
		if s == "" || strings.Contains(text, s) {
			sep = s
			rest = separators[i+1:]
			break
		}
	}

	if sep == "" {
		return windowRunes(text, size, overlap)
	}

	var final []string
	var good []string
	for _, piece := range strings.Split(text, sep) {
		if utf8.RuneCountInString(piece) < size {
			good = append(good, piece)
			continue
		}
		if len(good) > 0 {
			final = append(final, mergePieces(good, sep, size, overlap)...)
			good = nil
		}
		if len(rest) == 0 {
			// 无更细分隔符可用时，超长片段作为整体输出
			final = append(final, piece)
		} else {
			final = append(final, splitRecursive(piece, rest, size, overlap)...)
		}
	}
	if len(good) > 0 {
		final = append(final, mergePieces(good, sep, size, overlap)...)
	}
	return final
}

// mergePieces 将小片段合并为不超过 size 的块，并保留 overlap 重叠。
func mergePieces(pieces []string, sep string, size, overlap int) []string {
	sepLen := utf8.RuneCountInString(sep)

	var chunks []string
	var current []string
	total := 0

	joinLen := func(n, pieceLen int) int {
		if n > 0 {
			return pieceLen + sepLen
		}
		return pieceLen
	}

	for _, p := range pieces {
		pl := utf8.RuneCountInString(p)
		if len(current) > 0 && total+joinLen(len(current), pl) > size {
			if c := strings.TrimSpace(strings.Join(current, sep)); c != "" {
				chunks = append(chunks, c)
			}
			for len(current) > 0 && (total > overlap || total+joinLen(len(current), pl) > size) {
				head := utf8.RuneCountInString(current[0])
				total -= joinLen(len(current)-1, head)
				current = current[1:]
			}
		}
		total += joinLen(len(current), pl)
		current = append(current, p)
	}
	if c := strings.TrimSpace(strings.Join(current, sep)); c != "" {
		chunks = append(chunks, c)
	}
	return chunks
}

// windowRunes 按固定字符窗口切分，相邻窗口重叠 overlap 个字符。
func windowRunes(text string, size, overlap int) []string {
	runes := []rune(text)
	if len(runes) <= size {
		return []string{text}
	}

	step := size - overlap
	var chunks []string
	for i := 0; i < len(runes); i += step {
		end := i + size
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[i:end]))
		if end == len(runes) {
			break
		}
	}
	return chunks
}
