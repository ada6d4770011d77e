package game

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"io"
	"path"
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// ResourceManager is responsible for centralized management of game resources.
// It loads images, audio tracks and fonts through an AssetSource and caches them
// by reference, so each asset is fetched at most once per session.
//
// Image loading is split in two phases:
//   - FetchImage downloads and decodes into a plain image.Image. It is safe to call
//     from background goroutines (the preloader does).
//   - GetImage converts the decoded image into an *ebiten.Image on first use.
//     It must be called from the game loop.
//
// Fetch failures are remembered so a missing asset is not requested again.
type ResourceManager struct {
	source       AssetSource
	audioContext *audio.Context

	mu         sync.Mutex
	decoded    map[string]image.Image   // ref -> decoded image awaiting GPU upload
	failed     map[string]error         // ref -> last fetch error
	inFlight   map[string]chan struct{} // ref -> closed when the running fetch finishes
	imageCache map[string]*ebiten.Image

	audioCache map[string]*audio.Player
	fontCache  map[string]*FontAsset
}

// FontAsset is a parsed font: the shaping source used by text/v2 plus the raw
// outlines, which are used to compose glyphs the font lacks.
type FontAsset struct {
	Source   *text.GoTextFaceSource
	Outlines *opentype.Font
}

// NewResourceManager creates a ResourceManager reading assets from source.
// audioContext may be nil, in which case audio loading always fails.
func NewResourceManager(source AssetSource, audioContext *audio.Context) *ResourceManager {
	return &ResourceManager{
		source:       source,
		audioContext: audioContext,
		decoded:      make(map[string]image.Image),
		failed:       make(map[string]error),
		inFlight:     make(map[string]chan struct{}),
		imageCache:   make(map[string]*ebiten.Image),
		audioCache:   make(map[string]*audio.Player),
		fontCache:    make(map[string]*FontAsset),
	}
}

// FetchImage downloads and decodes the image at ref.
// Concurrent calls for the same ref share one fetch.
//
// Returns nil if the image is already available.
func (rm *ResourceManager) FetchImage(ctx context.Context, ref string) error {
	rm.mu.Lock()
	if _, ok := rm.decoded[ref]; ok {
		rm.mu.Unlock()
		return nil
	}
	if _, ok := rm.imageCache[ref]; ok {
		rm.mu.Unlock()
		return nil
	}
	if err, ok := rm.failed[ref]; ok {
		rm.mu.Unlock()
		return err
	}
	if wait, ok := rm.inFlight[ref]; ok {
		rm.mu.Unlock()
		select {
		case <-wait:
		case <-ctx.Done():
			return ctx.Err()
		}
		return rm.imageError(ref)
	}
	done := make(chan struct{})
	rm.inFlight[ref] = done
	rm.mu.Unlock()

	img, err := rm.fetchAndDecode(ctx, ref)

	rm.mu.Lock()
	delete(rm.inFlight, ref)
	if err != nil {
		rm.failed[ref] = err
	} else {
		rm.decoded[ref] = img
	}
	rm.mu.Unlock()
	close(done)

	return err
}

func (rm *ResourceManager) fetchAndDecode(ctx context.Context, ref string) (image.Image, error) {
	data, err := rm.source.Open(ctx, ref)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", ref, err)
	}
	return img, nil
}

func (rm *ResourceManager) imageError(ref string) error {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	return rm.failed[ref]
}

// GetImage returns the ebiten image for ref, or nil if it has not been fetched
// (or failed to load). Callers draw nothing for a nil image.
func (rm *ResourceManager) GetImage(ref string) *ebiten.Image {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	if img, ok := rm.imageCache[ref]; ok {
		return img
	}
	decoded, ok := rm.decoded[ref]
	if !ok {
		return nil
	}
	img := ebiten.NewImageFromImage(decoded)
	rm.imageCache[ref] = img
	delete(rm.decoded, ref)
	return img
}

// ImageSettled reports whether ref has finished loading, successfully or not.
func (rm *ResourceManager) ImageSettled(ref string) bool {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	if _, ok := rm.decoded[ref]; ok {
		return true
	}
	if _, ok := rm.imageCache[ref]; ok {
		return true
	}
	_, failed := rm.failed[ref]
	return failed
}

// LoadTrack loads a one-shot (non-looping) audio player for ref.
// Supported formats: MP3 (.mp3) and OGG Vorbis (.ogg), detected by extension.
// Safe to call from a background goroutine.
func (rm *ResourceManager) LoadTrack(ctx context.Context, ref string) (*audio.Player, error) {
	rm.mu.Lock()
	if player, ok := rm.audioCache[ref]; ok {
		rm.mu.Unlock()
		return player, nil
	}
	rm.mu.Unlock()

	if rm.audioContext == nil {
		return nil, fmt.Errorf("no audio context for %s", ref)
	}

	data, err := rm.source.Open(ctx, ref)
	if err != nil {
		return nil, err
	}

	stream, err := rm.decodeAudio(ref, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	player, err := rm.audioContext.NewPlayer(stream)
	if err != nil {
		return nil, fmt.Errorf("failed to create audio player for %s: %w", ref, err)
	}

	rm.mu.Lock()
	if cached, ok := rm.audioCache[ref]; ok {
		rm.mu.Unlock()
		_ = player.Close()
		return cached, nil
	}
	rm.audioCache[ref] = player
	rm.mu.Unlock()

	return player, nil
}

func (rm *ResourceManager) decodeAudio(ref string, r io.Reader) (io.Reader, error) {
	ext := strings.ToLower(path.Ext(stripQuery(ref)))
	sampleRate := rm.audioContext.SampleRate()

	switch ext {
	case ".mp3":
		stream, err := mp3.DecodeWithSampleRate(sampleRate, r)
		if err != nil {
			return nil, fmt.Errorf("failed to decode MP3 audio %s: %w", ref, err)
		}
		return stream, nil
	case ".ogg":
		stream, err := vorbis.DecodeWithSampleRate(sampleRate, r)
		if err != nil {
			return nil, fmt.Errorf("failed to decode OGG audio %s: %w", ref, err)
		}
		return stream, nil
	default:
		return nil, fmt.Errorf("unsupported audio format: %s (supported: .mp3, .ogg)", ext)
	}
}

// LoadFont loads a TrueType/OpenType font from ref.
// An empty ref selects the bundled Go Regular font.
func (rm *ResourceManager) LoadFont(ctx context.Context, ref string) (*FontAsset, error) {
	if cached, exists := rm.fontCache[ref]; exists {
		return cached, nil
	}

	data := goregular.TTF
	if ref != "" {
		var err error
		data, err = rm.source.Open(ctx, ref)
		if err != nil {
			return nil, err
		}
	}

	source, err := text.NewGoTextFaceSource(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create font source for %q: %w", ref, err)
	}
	outlines, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font outlines for %q: %w", ref, err)
	}

	asset := &FontAsset{Source: source, Outlines: outlines}
	rm.fontCache[ref] = asset
	return asset, nil
}

// stripQuery removes ?query and #fragment so the extension can be read from URLs.
func stripQuery(ref string) string {
	if i := strings.IndexAny(ref, "?#"); i >= 0 {
		return ref[:i]
	}
	return ref
}
