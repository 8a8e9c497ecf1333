// Package render 提供与后端无关的二维绘制接口
//
// 步骤和彩纸只通过 Canvas 绘制，窗口模式使用 EbitenCanvas，
// 终端模式使用 CellCanvas，测试中可使用任意记录实现。
// 所有坐标均为画布的逻辑像素坐标。
package render

import "image/color"

// TextAlign 文本水平对齐方式
type TextAlign int

const (
	// AlignLeft 以 (x, y) 为文本左上角
	AlignLeft TextAlign = iota
	// AlignCenter 以 (x, y) 为文本顶部中点
	AlignCenter
)

// Canvas 固定尺寸的绘制表面
type Canvas interface {
	// Size 返回逻辑尺寸
	Size() (width, height float64)

	// Fill 用纯色填满整个画布
	Fill(clr color.Color)

	// FillRect 填充轴对齐矩形，(x, y) 为左上角
	FillRect(x, y, w, h float64, clr color.Color)

	// FillRotatedRect 填充以 (cx, cy) 为中心、旋转 angle 弧度的矩形
	FillRotatedRect(cx, cy, w, h, angle float64, clr color.Color)

	// FillEllipse 填充以 (cx, cy) 为中心的椭圆
	FillEllipse(cx, cy, rx, ry float64, clr color.Color)

	// StrokeLine 绘制线段
	StrokeLine(x0, y0, x1, y1, width float64, clr color.Color)

	// DrawText 绘制单行文本
	DrawText(s string, x, y, size float64, align TextAlign, clr color.Color)
}
