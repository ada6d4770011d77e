package app

import (
	"context"
	"log"
	"strings"

	"github.com/decker502/ticketquiz/pkg/config"
	"github.com/decker502/ticketquiz/pkg/game"
	"github.com/decker502/ticketquiz/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/sfnt"
)

// fontCache 按字号缓存字体，所有字号共用同一个字体源
//
// 每个字号的字体由两部分组成：字体本身，以及在字体缺字时
// 用部件拼合的字形（utils.ComposedGlyphs）
type fontCache struct {
	asset *game.FontAsset
	faces map[float64]text.Face
}

// newFontCache 加载配置的字体，失败时退回内置字体
func newFontCache(ctx context.Context, rm *game.ResourceManager, ref string) (*fontCache, error) {
	asset, err := rm.LoadFont(ctx, ref)
	if err != nil && ref != "" {
		log.Printf("[App] Warning: font %s unavailable, using built-in font: %v", ref, err)
		asset, err = rm.LoadFont(ctx, "")
	}
	if err != nil {
		return nil, err
	}

	c := &fontCache{
		asset: asset,
		faces: make(map[float64]text.Face),
	}
	if missing := c.missingGlyphs(config.RequiredGlyphs); missing != "" {
		log.Printf("[App] Warning: font lacks glyphs %q, set fontPath to a CJK font", missing)
	}
	return c, nil
}

// Face 返回指定字号的字体（只在游戏循环中调用）
func (c *fontCache) Face(size float64) text.Face {
	if face, ok := c.faces[size]; ok {
		return face
	}

	var face text.Face = &text.GoTextFace{
		Source:    c.asset.Source,
		Size:      size,
		Direction: text.DirectionLeftToRight,
	}
	if composed, err := c.composedFace(size); err != nil {
		log.Printf("[App] Warning: composed glyphs unavailable at size %.0f: %v", size, err)
	} else if multi, err := text.NewMultiFace(face, text.NewGoXFace(composed)); err == nil {
		face = multi
	}

	c.faces[size] = face
	return face
}

// composedFace 创建同字号的拼合字体
func (c *fontCache) composedFace(size float64) (*utils.ComposedFace, error) {
	return utils.NewComposedFace(c.asset.Outlines, size, utils.ComposedGlyphs)
}

// hasGlyph 字体本身含有 r，或者 r 可以由字体中的部件拼合
func (c *fontCache) hasGlyph(buf *sfnt.Buffer, r rune) bool {
	if idx, err := c.asset.Outlines.GlyphIndex(buf, r); err == nil && idx != 0 {
		return true
	}
	parts, ok := utils.ComposedGlyphs[r]
	if !ok {
		return false
	}
	for _, part := range parts {
		if idx, err := c.asset.Outlines.GlyphIndex(buf, part.Rune); err != nil || idx == 0 {
			return false
		}
	}
	return true
}

// missingGlyphs 返回 s 中字体无法显示的字符
func (c *fontCache) missingGlyphs(s string) string {
	var buf sfnt.Buffer
	var missing strings.Builder
	for _, r := range s {
		if !c.hasGlyph(&buf, r) {
			missing.WriteRune(r)
		}
	}
	return missing.String()
}
