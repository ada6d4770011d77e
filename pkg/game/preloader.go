package game

import (
	"context"
	"log"
	"sync/atomic"

	"github.com/decker502/ticketquiz/pkg/config"
	"golang.org/x/sync/errgroup"
)

// ImageFetcher 预加载器依赖的最小接口
type ImageFetcher interface {
	FetchImage(ctx context.Context, ref string) error
}

// Preloader 图片预加载器
//
// 先加载首页图片；首页加载结束（无论成败）后标记就绪，
// 然后才在后台并发加载其余图片，不保证顺序、不重试，失败只记录日志。
type Preloader struct {
	fetcher ImageFetcher
	ready   atomic.Bool
	done    chan struct{}
}

// NewPreloader 创建预加载器
func NewPreloader(fetcher ImageFetcher) *Preloader {
	return &Preloader{
		fetcher: fetcher,
		done:    make(chan struct{}),
	}
}

// Start 开始预加载，立即返回
func (p *Preloader) Start(ctx context.Context, first string, rest []string) {
	go p.run(ctx, first, rest)
}

func (p *Preloader) run(ctx context.Context, first string, rest []string) {
	defer close(p.done)

	if err := p.fetcher.FetchImage(ctx, first); err != nil {
		// 首页失败也视为已加载，避免一直停在空白画面
		log.Printf("[Preloader] Warning: home image failed to load: %v", err)
	}
	p.ready.Store(true)
	log.Printf("[Preloader] Home image settled, rendering enabled")

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(config.PreloadConcurrency)
	for _, ref := range rest {
		if ref == first {
			continue
		}
		g.Go(func() error {
			if err := p.fetcher.FetchImage(gctx, ref); err != nil {
				log.Printf("[Preloader] Background load failed for %s: %v", ref, err)
			}
			// 单个失败不影响其余图片
			return nil
		})
	}
	_ = g.Wait()
	log.Printf("[Preloader] Background preload finished (%d images)", len(rest))
}

// Ready 首页图片是否已结束加载
func (p *Preloader) Ready() bool {
	return p.ready.Load()
}

// Done 所有预加载结束时关闭
func (p *Preloader) Done() <-chan struct{} {
	return p.done
}
