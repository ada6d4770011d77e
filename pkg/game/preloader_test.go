package game

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// recordingFetcher 记录加载顺序，可让首页加载阻塞
type recordingFetcher struct {
	mu      sync.Mutex
	order   []string
	fail    map[string]bool
	release chan struct{} // 非 nil 时首页加载等待关闭
	first   string
}

func (f *recordingFetcher) FetchImage(ctx context.Context, ref string) error {
	if ref == f.first && f.release != nil {
		<-f.release
	}
	f.mu.Lock()
	f.order = append(f.order, ref)
	f.mu.Unlock()
	if f.fail[ref] {
		return errors.New("fetch failed")
	}
	return nil
}

func (f *recordingFetcher) fetched() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.order...)
}

func waitDone(t *testing.T, p *Preloader) {
	t.Helper()
	select {
	case <-p.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("preload did not finish")
	}
}

// TestPreloaderHomeFirst 首页完成前不加载其他图片，也不就绪
func TestPreloaderHomeFirst(t *testing.T) {
	f := &recordingFetcher{first: "home.png", release: make(chan struct{})}
	p := NewPreloader(f)

	p.Start(context.Background(), "home.png", []string{"home.png", "start.png", "name.png", "question_1.png"})

	time.Sleep(20 * time.Millisecond)
	if p.Ready() {
		t.Fatal("Ready() before home image settled")
	}
	if got := f.fetched(); len(got) != 0 {
		t.Fatalf("fetched %v before home image", got)
	}

	close(f.release)
	waitDone(t, p)

	if !p.Ready() {
		t.Error("Ready() should be true after preload")
	}
	got := f.fetched()
	if len(got) != 4 {
		t.Fatalf("fetched %d images, want 4: %v", len(got), got)
	}
	if got[0] != "home.png" {
		t.Errorf("first fetched = %s, want home.png", got[0])
	}
}

// TestPreloaderHomeFailureStillReady 首页失败也进入就绪状态
func TestPreloaderHomeFailureStillReady(t *testing.T) {
	f := &recordingFetcher{first: "home.png", fail: map[string]bool{"home.png": true, "end.png": true}}
	p := NewPreloader(f)

	p.Start(context.Background(), "home.png", []string{"start.png", "end.png", "question_1.png"})
	waitDone(t, p)

	if !p.Ready() {
		t.Error("Ready() should be true even when home image failed")
	}
	if got := f.fetched(); len(got) != 4 {
		t.Errorf("fetched %v, want all 4 attempted", got)
	}
}
