// Package blob 提供上传文件的本地存储。
// 存储路径带 ULID 前缀，避免同名文件覆盖。
package blob

import (
	"context"
	"crypto/rand"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// Store 定义文件存储接口。
type Store interface {
	// Save 保存文件数据，返回存储路径。
	Save(ctx context.Context, fileName string, data []byte) (string, error)

	// Open 读取存储路径对应的文件数据。
	Open(ctx context.Context, path string) ([]byte, error)

	// Remove 删除存储路径对应的文件。文件不存在时不报错。
	Remove(ctx context.Context, path string) error
}

// FileStore 基于本地文件系统的实现。
type FileStore struct {
	root string
}

var _ Store = (*FileStore)(nil)

// NewFileStore 创建文件存储，必要时创建根目录。
func NewFileStore(root string) (*FileStore, error) {
	if root == "" {
		return nil, fmt.Errorf("存储根目录不能为空")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("创建存储目录失败: %w", err)
	}
	return &FileStore{root: root}, nil
}

// Root 返回存储根目录。
func (s *FileStore) Root() string {
	return s.root
}

// Save 以 "<ULID>_<文件名>" 的形式保存文件。
func (s *FileStore) Save(ctx context.Context, fileName string, data []byte) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	id := ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader)
	path := filepath.Join(s.root, id.String()+"_"+sanitize(fileName))

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("写入文件失败: %w", err)
	}
	return path, nil
}

// Open 读取文件数据。
func (s *FileStore) Open(ctx context.Context, path string) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取文件失败: %w", err)
	}
	return data, nil
}

// Remove 删除文件。文件不存在时静默成功。
func (s *FileStore) Remove(_ context.Context, path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("删除文件失败: %w", err)
	}
	return nil
}

// sanitize 过滤文件名中的路径分隔符等危险字符。
func sanitize(name string) string {
	name = filepath.Base(name)
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, name)
}
