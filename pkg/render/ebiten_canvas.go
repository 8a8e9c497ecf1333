package render

import (
	"bytes"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"
)

// discRadius 预渲染圆盘的半径，椭圆通过缩放此圆盘得到
const discRadius = 32

// EbitenCanvas 将 Canvas 调用绘制到 ebiten.Image 上
//
// 旋转矩形和椭圆通过缩放预渲染的白色像素/圆盘并用 ColorScale 着色实现。
type EbitenCanvas struct {
	screen *ebiten.Image

	pixel *ebiten.Image
	disc  *ebiten.Image

	fontSource *text.GoTextFaceSource
	faces      map[float64]*text.GoTextFace
}

// NewEbitenCanvas 创建 ebiten 画布
// 字体加载失败时文本绘制退化为空操作
func NewEbitenCanvas() *EbitenCanvas {
	pixel := ebiten.NewImage(1, 1)
	pixel.Fill(color.White)

	disc := ebiten.NewImage(discRadius*2, discRadius*2)
	vector.DrawFilledCircle(disc, discRadius, discRadius, discRadius, color.White, true)

	source, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		log.Printf("[Render] Failed to load font, text disabled: %v", err)
	}

	return &EbitenCanvas{
		pixel:      pixel,
		disc:       disc,
		fontSource: source,
		faces:      make(map[float64]*text.GoTextFace),
	}
}

// SetTarget 设置本帧的绘制目标
func (c *EbitenCanvas) SetTarget(screen *ebiten.Image) {
	c.screen = screen
}

// Size 返回目标图像尺寸
func (c *EbitenCanvas) Size() (float64, float64) {
	if c.screen == nil {
		return 0, 0
	}
	b := c.screen.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

// Fill 填满整个目标
func (c *EbitenCanvas) Fill(clr color.Color) {
	if c.screen == nil {
		return
	}
	c.screen.Fill(clr)
}

// FillRect 填充轴对齐矩形
func (c *EbitenCanvas) FillRect(x, y, w, h float64, clr color.Color) {
	if c.screen == nil {
		return
	}
	vector.DrawFilledRect(c.screen, float32(x), float32(y), float32(w), float32(h), clr, false)
}

// FillRotatedRect 填充旋转矩形
func (c *EbitenCanvas) FillRotatedRect(cx, cy, w, h, angle float64, clr color.Color) {
	if c.screen == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(-w/2, -h/2)
	op.GeoM.Rotate(angle)
	op.GeoM.Translate(cx, cy)
	op.ColorScale.ScaleWithColor(clr)
	c.screen.DrawImage(c.pixel, op)
}

// FillEllipse 填充椭圆
func (c *EbitenCanvas) FillEllipse(cx, cy, rx, ry float64, clr color.Color) {
	if c.screen == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-discRadius, -discRadius)
	op.GeoM.Scale(rx/discRadius, ry/discRadius)
	op.GeoM.Translate(cx, cy)
	op.ColorScale.ScaleWithColor(clr)
	op.Filter = ebiten.FilterLinear
	c.screen.DrawImage(c.disc, op)
}

// StrokeLine 绘制线段
func (c *EbitenCanvas) StrokeLine(x0, y0, x1, y1, width float64, clr color.Color) {
	if c.screen == nil {
		return
	}
	vector.StrokeLine(c.screen, float32(x0), float32(y0), float32(x1), float32(y1), float32(width), clr, true)
}

// DrawText 绘制文本
func (c *EbitenCanvas) DrawText(s string, x, y, size float64, align TextAlign, clr color.Color) {
	if c.screen == nil || c.fontSource == nil {
		return
	}

	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	if align == AlignCenter {
		op.PrimaryAlign = text.AlignCenter
	}
	text.Draw(c.screen, s, c.face(size), op)
}

// face 按字号缓存字体 face
func (c *EbitenCanvas) face(size float64) *text.GoTextFace {
	if f, ok := c.faces[size]; ok {
		return f
	}
	f := &text.GoTextFace{
		Source:    c.fontSource,
		Size:      size,
		Direction: text.DirectionLeftToRight,
	}
	c.faces[size] = f
	return f
}
