package render

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Cell 终端中的一个字符格
type Cell struct {
	Rune rune
	Fg   color.RGBA
	Bg   color.RGBA
}

// CellCanvas 将逻辑像素坐标映射到终端字符网格
//
// 形状按格中心点是否落在形状内着色背景；比一格还窄的形状至少占据其中心所在的格。
// 绘制结果先写入内存网格，再由 Flush 一次性输出到 tcell.Screen。
type CellCanvas struct {
	width, height float64
	cols, rows    int
	cells         []Cell
}

// NewCellCanvas 创建 cols×rows 的字符网格，对应 width×height 的逻辑画布
func NewCellCanvas(cols, rows int, width, height float64) *CellCanvas {
	c := &CellCanvas{width: width, height: height}
	c.Resize(cols, rows)
	return c
}

// Resize 调整网格尺寸（终端窗口变化时调用）
func (c *CellCanvas) Resize(cols, rows int) {
	c.cols = max(cols, 1)
	c.rows = max(rows, 1)
	c.cells = make([]Cell, c.cols*c.rows)
	for i := range c.cells {
		c.cells[i].Rune = ' '
	}
}

// GridSize 返回网格列数和行数
func (c *CellCanvas) GridSize() (cols, rows int) {
	return c.cols, c.rows
}

// CellAt 返回指定格，越界时返回零值
func (c *CellCanvas) CellAt(col, row int) Cell {
	if col < 0 || col >= c.cols || row < 0 || row >= c.rows {
		return Cell{}
	}
	return c.cells[row*c.cols+col]
}

// Size 返回逻辑尺寸
func (c *CellCanvas) Size() (float64, float64) {
	return c.width, c.height
}

// Fill 清空网格并填充背景色
func (c *CellCanvas) Fill(clr color.Color) {
	bg, ok := toRGBA(clr)
	if !ok {
		return
	}
	for i := range c.cells {
		c.cells[i] = Cell{Rune: ' ', Bg: bg}
	}
}

// FillRect 填充轴对齐矩形
func (c *CellCanvas) FillRect(x, y, w, h float64, clr color.Color) {
	c.fillShape(x, y, x+w, y+h, x+w/2, y+h/2, clr, func(px, py float64) bool {
		return px >= x && px < x+w && py >= y && py < y+h
	})
}

// FillRotatedRect 填充旋转矩形
func (c *CellCanvas) FillRotatedRect(cx, cy, w, h, angle float64, clr color.Color) {
	sin, cos := math.Sincos(angle)
	// 旋转后的包围盒半宽/半高
	hw := (math.Abs(w*cos) + math.Abs(h*sin)) / 2
	hh := (math.Abs(w*sin) + math.Abs(h*cos)) / 2

	c.fillShape(cx-hw, cy-hh, cx+hw, cy+hh, cx, cy, clr, func(px, py float64) bool {
		// 逆旋转回矩形局部坐标
		dx, dy := px-cx, py-cy
		lx := dx*cos + dy*sin
		ly := -dx*sin + dy*cos
		return math.Abs(lx) <= w/2 && math.Abs(ly) <= h/2
	})
}

// FillEllipse 填充椭圆
func (c *CellCanvas) FillEllipse(cx, cy, rx, ry float64, clr color.Color) {
	if rx <= 0 || ry <= 0 {
		return
	}
	c.fillShape(cx-rx, cy-ry, cx+rx, cy+ry, cx, cy, clr, func(px, py float64) bool {
		dx, dy := (px-cx)/rx, (py-cy)/ry
		return dx*dx+dy*dy <= 1
	})
}

// StrokeLine 沿线段采样着色
func (c *CellCanvas) StrokeLine(x0, y0, x1, y1, _ float64, clr color.Color) {
	bg, ok := toRGBA(clr)
	if !ok {
		return
	}

	cw, ch := c.cellSize()
	stepLen := math.Min(cw, ch) / 2
	n := int(math.Hypot(x1-x0, y1-y0)/stepLen) + 1
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		col, row := c.cellOf(x0+(x1-x0)*t, y0+(y1-y0)*t)
		c.paint(col, row, bg)
	}
}

// DrawText 在文本位置所在的格写入字符，保留原背景色
func (c *CellCanvas) DrawText(s string, x, y, _ float64, align TextAlign, clr color.Color) {
	fg, ok := toRGBA(clr)
	if !ok {
		return
	}

	runes := []rune(s)
	col, row := c.cellOf(x, y)
	if align == AlignCenter {
		col -= len(runes) / 2
	}
	if row < 0 || row >= c.rows {
		return
	}
	for i, r := range runes {
		cc := col + i
		if cc < 0 || cc >= c.cols {
			continue
		}
		cell := &c.cells[row*c.cols+cc]
		cell.Rune = r
		cell.Fg = fg
	}
}

// Flush 将网格输出到终端
func (c *CellCanvas) Flush(screen tcell.Screen) {
	for row := 0; row < c.rows; row++ {
		for col := 0; col < c.cols; col++ {
			cell := c.cells[row*c.cols+col]
			style := tcell.StyleDefault.
				Background(toTcellColor(cell.Bg)).
				Foreground(toTcellColor(cell.Fg))
			screen.SetContent(col, row, cell.Rune, nil, style)
		}
	}
}

// fillShape 对包围盒内中心点命中 inside 的格着色
func (c *CellCanvas) fillShape(minX, minY, maxX, maxY, cx, cy float64, clr color.Color, inside func(px, py float64) bool) {
	bg, ok := toRGBA(clr)
	if !ok {
		return
	}

	cw, ch := c.cellSize()
	c0, r0 := c.cellOf(minX, minY)
	c1, r1 := c.cellOf(maxX, maxY)

	hit := false
	for row := max(r0, 0); row <= min(r1, c.rows-1); row++ {
		for col := max(c0, 0); col <= min(c1, c.cols-1); col++ {
			px := (float64(col) + 0.5) * cw
			py := (float64(row) + 0.5) * ch
			if inside(px, py) {
				c.paint(col, row, bg)
				hit = true
			}
		}
	}

	if !hit {
		col, row := c.cellOf(cx, cy)
		c.paint(col, row, bg)
	}
}

func (c *CellCanvas) paint(col, row int, bg color.RGBA) {
	if col < 0 || col >= c.cols || row < 0 || row >= c.rows {
		return
	}
	cell := &c.cells[row*c.cols+col]
	cell.Rune = ' '
	cell.Bg = bg
}

func (c *CellCanvas) cellSize() (float64, float64) {
	return c.width / float64(c.cols), c.height / float64(c.rows)
}

func (c *CellCanvas) cellOf(x, y float64) (int, int) {
	cw, ch := c.cellSize()
	return int(math.Floor(x / cw)), int(math.Floor(y / ch))
}

// toRGBA 转换为不透明 RGBA，完全透明的颜色返回 false
func toRGBA(clr color.Color) (color.RGBA, bool) {
	cf, ok := colorful.MakeColor(clr)
	if !ok {
		return color.RGBA{}, false
	}
	r, g, b := cf.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, true
}

func toTcellColor(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
