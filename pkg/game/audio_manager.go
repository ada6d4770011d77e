package game

import (
	"context"
	"log"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// TrackPlayer 音轨播放器（*audio.Player 满足此接口）
type TrackPlayer interface {
	Play()
	Pause()
	Rewind() error
	SetVolume(volume float64)
	IsPlaying() bool
}

// TrackLoader 按引用加载音轨
type TrackLoader func(ctx context.Context, ref string) (TrackPlayer, error)

// AudioManager 音频管理器
// 职责：
//   - 同一时间只播放一首音轨
//   - 播放新音轨前停止并重置当前音轨
//   - 音量与静音从 SettingsManager 读取
//
// 音轨在后台加载（可能需要下载），加载完成时如果已有更新的播放请求则丢弃。
// 播放失败只记录日志，不打扰玩家。
type AudioManager struct {
	ctx             context.Context
	load            TrackLoader
	settingsManager *SettingsManager

	mu         sync.Mutex
	current    TrackPlayer
	currentRef string
	generation int
	wg         sync.WaitGroup
}

// NewAudioManager 创建新的音频管理器
//
// 参数：
//   - ctx: 应用生命周期，取消后停止未完成的加载
//   - rm: ResourceManager 实例（用于加载音频文件）
//   - sm: SettingsManager 实例（可为 nil）
func NewAudioManager(ctx context.Context, rm *ResourceManager, sm *SettingsManager) *AudioManager {
	loader := func(ctx context.Context, ref string) (TrackPlayer, error) {
		player, err := rm.LoadTrack(ctx, ref)
		if err != nil {
			return nil, err
		}
		return player, nil
	}
	return newAudioManager(ctx, loader, sm)
}

func newAudioManager(ctx context.Context, loader TrackLoader, sm *SettingsManager) *AudioManager {
	return &AudioManager{
		ctx:             ctx,
		load:            loader,
		settingsManager: sm,
	}
}

// PlayTrack 停止当前音轨并从头播放 ref
func (am *AudioManager) PlayTrack(ref string) {
	if ref == "" {
		return
	}

	am.mu.Lock()
	am.stopLocked()
	am.generation++
	gen := am.generation
	am.mu.Unlock()

	am.wg.Add(1)
	go func() {
		defer am.wg.Done()

		player, err := am.load(am.ctx, ref)
		if err != nil {
			log.Printf("[AudioManager] Audio play failed for %s: %v", ref, err)
			return
		}

		am.mu.Lock()
		defer am.mu.Unlock()

		if gen != am.generation {
			// 加载期间有新的播放请求
			return
		}
		if am.muted() {
			log.Printf("[AudioManager] Muted, not playing %s", ref)
			return
		}

		player.SetVolume(am.volume())
		if err := player.Rewind(); err != nil {
			log.Printf("[AudioManager] Warning: Failed to rewind %s: %v", ref, err)
		}
		player.Play()

		am.current = player
		am.currentRef = ref
		log.Printf("[AudioManager] Playing track: %s (volume: %.2f)", ref, am.volume())
	}()
}

// Stop 停止当前音轨并取消尚未完成的播放请求
func (am *AudioManager) Stop() {
	am.mu.Lock()
	defer am.mu.Unlock()
	am.stopLocked()
	am.generation++
}

// stopLocked 暂停并重置当前音轨
func (am *AudioManager) stopLocked() {
	if am.current == nil {
		return
	}
	am.current.Pause()
	if err := am.current.Rewind(); err != nil {
		log.Printf("[AudioManager] Warning: Failed to rewind %s: %v", am.currentRef, err)
	}
	am.current = nil
	am.currentRef = ""
}

// CurrentTrack 返回正在播放的音轨引用
func (am *AudioManager) CurrentTrack() string {
	am.mu.Lock()
	defer am.mu.Unlock()
	if am.current == nil || !am.current.IsPlaying() {
		return ""
	}
	return am.currentRef
}

// ToggleMute 切换静音并保存设置，返回新的静音状态
func (am *AudioManager) ToggleMute() bool {
	if am.settingsManager == nil {
		return false
	}

	am.mu.Lock()
	muted := !am.settingsManager.GetSettings().Muted
	am.settingsManager.SetMuted(muted)
	if muted {
		am.stopLocked()
	}
	am.mu.Unlock()

	if err := am.settingsManager.Save(); err != nil {
		log.Printf("[AudioManager] Warning: Failed to save settings: %v", err)
	}
	return muted
}

// wait 等待所有后台加载结束（测试用）
func (am *AudioManager) wait() {
	am.wg.Wait()
}

func (am *AudioManager) muted() bool {
	return am.settingsManager != nil && am.settingsManager.GetSettings().Muted
}

func (am *AudioManager) volume() float64 {
	if am.settingsManager != nil {
		return am.settingsManager.GetSettings().MusicVolume
	}
	return 1.0
}

var _ TrackPlayer = (*audio.Player)(nil)
