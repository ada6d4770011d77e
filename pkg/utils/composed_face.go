package utils

import (
	"image"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// GlyphPart 拼合字形的一个部件
// X0..X1、Y0..Y1 为部件在字身框中所占的比例（0..1，Y 从上往下）
type GlyphPart struct {
	Rune   rune
	X0, X1 float64
	Y0, Y1 float64
}

// ComposedGlyphs 字体缺字时用部件拼合的字形
//
// M+ 1p 不含「囉」，按「口」+「羅」左右结构拼合
var ComposedGlyphs = map[rune][]GlyphPart{
	'囉': {
		{Rune: '口', X0: 0, X1: 0.38, Y0: 0.24, Y1: 0.76},
		{Rune: '羅', X0: 0.30, X1: 1, Y0: 0, Y1: 1},
	},
}

// composedGlyph 拼合后的字形遮罩（坐标以基线原点为 (0,0)）
type composedGlyph struct {
	mask    *image.Alpha
	advance fixed.Int26_6
}

// ComposedFace 实现 font.Face，只提供 parts 中定义的拼合字形
//
// 与 text.NewMultiFace 配合使用：基础字体在前，ComposedFace 在后，
// 基础字体缺少的字才会落到这里。不可并发使用。
type ComposedFace struct {
	font   *opentype.Font
	buf    sfnt.Buffer
	base   font.Face
	parts  map[rune][]GlyphPart
	glyphs map[rune]*composedGlyph
}

// NewComposedFace 用 f 中的部件字形创建 size 像素的拼合字体
func NewComposedFace(f *opentype.Font, size float64, parts map[rune][]GlyphPart) (*ComposedFace, error) {
	// DPI 72 时字号单位即像素，与 text.GoTextFace 的 Size 一致
	base, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, err
	}
	return &ComposedFace{
		font:   f,
		base:   base,
		parts:  parts,
		glyphs: make(map[rune]*composedGlyph),
	}, nil
}

// HasPart 字体是否含有 r 的字形（缺字时 GlyphIndex 为 0）
func (f *ComposedFace) HasPart(r rune) bool {
	idx, err := f.font.GlyphIndex(&f.buf, r)
	return err == nil && idx != 0
}

// glyph 返回 r 的拼合字形，部件缺失时返回 nil
func (f *ComposedFace) glyph(r rune) *composedGlyph {
	if g, ok := f.glyphs[r]; ok {
		return g
	}
	parts, ok := f.parts[r]
	if !ok || len(parts) == 0 {
		return nil
	}
	for _, part := range parts {
		if !f.HasPart(part.Rune) {
			f.glyphs[r] = nil
			return nil
		}
	}

	// 字身框：宽度取最后一个部件的步进，高度为 ascent + descent
	advance, ok := f.base.GlyphAdvance(parts[len(parts)-1].Rune)
	if !ok {
		f.glyphs[r] = nil
		return nil
	}
	m := f.base.Metrics()
	ascent, descent := m.Ascent.Ceil(), m.Descent.Ceil()
	width := advance.Ceil()
	height := ascent + descent
	mask := image.NewAlpha(image.Rect(0, -ascent, width, descent))

	for _, part := range parts {
		// base 的遮罩在下一次 Glyph 调用时会被覆盖，必须立即绘制
		dr, src, srcp, _, ok := f.base.Glyph(fixed.Point26_6{}, part.Rune)
		if !ok {
			f.glyphs[r] = nil
			return nil
		}
		if dr.Empty() {
			continue
		}
		sx, sy := part.X1-part.X0, part.Y1-part.Y0
		ox := part.X0 * float64(width)
		oy := part.Y0*float64(height) - float64(ascent)
		target := image.Rect(
			int(math.Floor(ox+float64(dr.Min.X)*sx)),
			int(math.Floor(oy+float64(dr.Min.Y+ascent)*sy)),
			int(math.Ceil(ox+float64(dr.Max.X)*sx)),
			int(math.Ceil(oy+float64(dr.Max.Y+ascent)*sy)),
		)
		srcRect := image.Rectangle{Min: srcp, Max: srcp.Add(dr.Size())}
		xdraw.BiLinear.Scale(mask, target, src, srcRect, xdraw.Over, nil)
	}

	g := &composedGlyph{mask: mask, advance: advance}
	f.glyphs[r] = g
	return g
}

// Close 实现 font.Face
func (f *ComposedFace) Close() error {
	return f.base.Close()
}

// Glyph 实现 font.Face
func (f *ComposedFace) Glyph(dot fixed.Point26_6, r rune) (dr image.Rectangle, mask image.Image, maskp image.Point, advance fixed.Int26_6, ok bool) {
	g := f.glyph(r)
	if g == nil {
		return image.Rectangle{}, nil, image.Point{}, 0, false
	}
	b := g.mask.Bounds()
	return b.Add(image.Pt(dot.X.Floor(), dot.Y.Floor())), g.mask, b.Min, g.advance, true
}

// GlyphBounds 实现 font.Face
func (f *ComposedFace) GlyphBounds(r rune) (bounds fixed.Rectangle26_6, advance fixed.Int26_6, ok bool) {
	g := f.glyph(r)
	if g == nil {
		return fixed.Rectangle26_6{}, 0, false
	}
	b := g.mask.Bounds()
	return fixed.R(b.Min.X, b.Min.Y, b.Max.X, b.Max.Y), g.advance, true
}

// GlyphAdvance 实现 font.Face
func (f *ComposedFace) GlyphAdvance(r rune) (advance fixed.Int26_6, ok bool) {
	g := f.glyph(r)
	if g == nil {
		return 0, false
	}
	return g.advance, true
}

// Kern 实现 font.Face（拼合字形不做字距调整）
func (f *ComposedFace) Kern(r0, r1 rune) fixed.Int26_6 {
	return 0
}

// Metrics 实现 font.Face
func (f *ComposedFace) Metrics() font.Metrics {
	return f.base.Metrics()
}
