package game

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/decker502/ticketquiz/pkg/config"
	"github.com/decker502/ticketquiz/pkg/embedded"
)

// AssetSource 按引用读取资源原始字节
// 引用可以是 URL、嵌入资源路径或本地文件路径
type AssetSource interface {
	Open(ctx context.Context, ref string) ([]byte, error)
}

// MultiSource 根据引用前缀选择读取方式：
//   - http:// / https:// 通过 HTTP 下载
//   - assets/ 从嵌入资源读取（embedded 未初始化时回退到磁盘）
//   - 其他路径从磁盘读取
type MultiSource struct {
	Client *http.Client
}

// NewMultiSource 创建默认资源来源
func NewMultiSource() *MultiSource {
	return &MultiSource{
		Client: &http.Client{Timeout: config.AssetFetchTimeout},
	}
}

// Open 读取资源
func (s *MultiSource) Open(ctx context.Context, ref string) ([]byte, error) {
	switch {
	case ref == "":
		return nil, fmt.Errorf("empty asset reference")
	case strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://"):
		return s.fetch(ctx, ref)
	case strings.HasPrefix(ref, "assets/") && embedded.IsInitialized():
		data, err := embedded.ReadFile(ref)
		if err != nil {
			return nil, fmt.Errorf("failed to read embedded asset %s: %w", ref, err)
		}
		return data, nil
	default:
		data, err := os.ReadFile(ref)
		if err != nil {
			return nil, fmt.Errorf("failed to read asset file %s: %w", ref, err)
		}
		return data, nil
	}
}

func (s *MultiSource) fetch(ctx context.Context, url string) ([]byte, error) {
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", url, err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch %s: unexpected status %s", url, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read body of %s: %w", url, err)
	}
	return data, nil
}
