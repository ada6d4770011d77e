// Package watch 监视外部配置文件，修改后重新加载（--watch）
package watch

import (
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/decker502/ticketquiz/pkg/config"
	"github.com/fsnotify/fsnotify"
)

// debounceDelay 编辑器保存时往往连续触发多个事件，合并后只加载一次
const debounceDelay = 150 * time.Millisecond

// LoadFunc 加载配置文件
type LoadFunc func(path string) (*config.QuizConfig, error)

// ConfigWatcher 监视单个配置文件
//
// 监视的是文件所在目录：很多编辑器保存时先写临时文件再重命名，
// 直接监视文件会在第一次保存后丢失。
// 加载成功的配置通过 Configs 发出；加载失败只记录日志，保留旧配置。
type ConfigWatcher struct {
	path    string
	load    LoadFunc
	watcher *fsnotify.Watcher
	configs chan *config.QuizConfig
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// NewConfigWatcher 开始监视 path
func NewConfigWatcher(path string, load LoadFunc) (*ConfigWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	cw := &ConfigWatcher{
		path:    abs,
		load:    load,
		watcher: w,
		configs: make(chan *config.QuizConfig, 1),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go cw.run()
	log.Printf("[ConfigWatcher] Watching %s", abs)
	return cw, nil
}

// Configs 重新加载成功的配置
// 只保留最新的一份，消费方来不及读取时旧值被丢弃；Close 后关闭
func (w *ConfigWatcher) Configs() <-chan *config.QuizConfig {
	return w.configs
}

// Close 停止监视
func (w *ConfigWatcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
	})
	return err
}

func (w *ConfigWatcher) run() {
	defer close(w.done)
	defer close(w.configs)

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounceDelay)
			} else {
				timer.Reset(debounceDelay)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			w.reload()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("[ConfigWatcher] Watch error: %v", err)

		case <-w.closeCh:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

func (w *ConfigWatcher) reload() {
	cfg, err := w.load(w.path)
	if err != nil {
		log.Printf("[ConfigWatcher] Reload failed, keeping previous config: %v", err)
		return
	}
	log.Printf("[ConfigWatcher] Reloaded %s", w.path)

	// 丢弃尚未被消费的旧配置
	select {
	case <-w.configs:
	default:
	}
	w.configs <- cfg
}
