package systems

import (
	"image/color"
	"math"
	"time"

	"github.com/gonewx/chainreact/pkg/components"
	"github.com/gonewx/chainreact/pkg/render"
)

// 步骤配色
var (
	ballColor   = color.RGBA{240, 200, 60, 255}
	rampColor   = color.RGBA{140, 140, 140, 255}
	dominoColor = color.RGBA{180, 180, 180, 255}
	railColor   = color.RGBA{120, 120, 120, 255}
	leverColor  = color.RGBA{200, 120, 90, 255}
	cartColor   = color.RGBA{90, 200, 160, 255}
	bookColor   = color.RGBA{140, 80, 200, 255}
	bellColor   = color.RGBA{220, 200, 60, 255}
	clapColor   = color.RGBA{180, 180, 180, 255}
	dingColor   = color.RGBA{255, 220, 120, 255}
)

// 步骤几何尺寸（逻辑像素）
const (
	rampWidth       = 3.0
	dominoWidth     = 8.0
	dominoHeight    = 30.0
	railWidth       = 4.0
	leverLength     = 60.0
	leverThickness  = 8.0
	cartWidth       = 40.0
	cartHeight      = 18.0
	bookWidth       = 60.0
	bookHeight      = 30.0
	bellRadiusX     = 24.0
	bellRadiusY     = 22.0
	dingTextSize    = 20.0
	dingTextOffsetY = 60.0
)

// StartStep 激活步骤（只执行一次）
//
// 激活时赋予各变体的初始动作：小球获得速度、第一块多米诺开始倒下、铃铛被敲响。
// 杠杆和书本的动作由激活后的触发延迟决定。
func StartStep(step *components.Step, now time.Duration) {
	if step == nil || step.Started {
		return
	}

	step.Started = true
	step.ActivatedAt = now

	switch step.Kind {
	case components.StepKindRollingBall:
		if step.Ball != nil {
			step.Ball.Velocity = step.Ball.Speed
		}
	case components.StepKindDominoTrain:
		if step.Domino != nil && len(step.Domino.Dominoes) > 0 {
			step.Domino.Dominoes[0].Falling = true
		}
	case components.StepKindBell:
		if step.Bell != nil {
			step.Bell.Rung = true
		}
	}
}

// UpdateStep 推进步骤一帧
//
// 在 now 到达 StartDelay 之前为空操作；之后先激活一次，再按每帧固定增量推进，
// 直到越过完成阈值并置 Done。Done 之后不再修改任何状态。
func UpdateStep(step *components.Step, now time.Duration) {
	if step == nil || step.Done {
		return
	}
	if !step.Started && now < step.StartDelay {
		return
	}

	justActivated := !step.Started
	StartStep(step, now)

	switch step.Kind {
	case components.StepKindRollingBall:
		updateRollingBall(step)
	case components.StepKindDominoTrain:
		updateDominoTrain(step)
	case components.StepKindLeverAndCart:
		updateLeverAndCart(step, now)
	case components.StepKindBookDrop:
		updateBookDrop(step, now)
	case components.StepKindBell:
		// 敲响后的下一帧完成
		if !justActivated && step.Bell != nil && step.Bell.Rung {
			step.Done = true
		}
	}
}

func updateRollingBall(step *components.Step) {
	ball := step.Ball
	if ball == nil {
		return
	}

	ball.BallX += ball.Velocity
	if ball.BallX > ball.FinishX {
		step.Done = true
	}
}

// updateDominoTrain 倾斜所有正在倒下的骨牌
// 越过 FallAngle 的骨牌推倒下一块；全部越过即完成
func updateDominoTrain(step *components.Step) {
	train := step.Domino
	if train == nil {
		return
	}

	allDown := true
	for i := range train.Dominoes {
		d := &train.Dominoes[i]
		if d.Falling && d.Angle < train.FallAngle {
			d.Angle += train.TiltStep + float64(i)*train.TiltBonus
		}
		if d.Falling && d.Angle >= train.FallAngle && i+1 < len(train.Dominoes) {
			train.Dominoes[i+1].Falling = true
		}
		if d.Angle < train.FallAngle {
			allDown = false
		}
	}

	if allDown {
		step.Done = true
	}
}

func updateLeverAndCart(step *components.Step, now time.Duration) {
	lever := step.Lever
	if lever == nil {
		return
	}

	if !lever.Triggered && now > step.ActivatedAt+lever.TriggerDelay {
		lever.Triggered = true
		lever.LeverAngle = -lever.LeverAngle
		lever.CartVelocity = lever.Speed
	}

	if lever.Triggered {
		lever.CartX += lever.CartVelocity
		lever.CartVelocity *= lever.Damping
		if lever.CartX > lever.FinishCartX {
			step.Done = true
		}
	}
}

func updateBookDrop(step *components.Step, now time.Duration) {
	book := step.Book
	if book == nil {
		return
	}

	if !book.Released && now > step.ActivatedAt+book.TriggerDelay {
		book.Released = true
	}

	if book.Released {
		book.BookY += book.Speed
		if book.BookY > book.FloorY {
			step.Done = true
		}
	}
}

// DrawStep 绘制步骤的完整外观（含所属的静态场景）
// 无论是否激活都会绘制，后续步骤因此始终可见
func DrawStep(canvas render.Canvas, step *components.Step) {
	if canvas == nil || step == nil {
		return
	}

	switch step.Kind {
	case components.StepKindRollingBall:
		drawRollingBall(canvas, step)
	case components.StepKindDominoTrain:
		drawDominoTrain(canvas, step)
	case components.StepKindLeverAndCart:
		drawLeverAndCart(canvas, step)
	case components.StepKindBookDrop:
		drawBookDrop(canvas, step)
	case components.StepKindBell:
		drawBell(canvas, step)
	}
}

func drawRollingBall(canvas render.Canvas, step *components.Step) {
	ball := step.Ball
	if ball == nil {
		return
	}

	canvas.FillEllipse(ball.BallX, step.Y, ball.Radius, ball.Radius, ballColor)
	// 斜坡
	canvas.StrokeLine(step.X-40, step.Y+20, step.X+60, step.Y+60, rampWidth, rampColor)
}

func drawDominoTrain(canvas render.Canvas, step *components.Step) {
	if step.Domino == nil {
		return
	}
	for _, d := range step.Domino.Dominoes {
		canvas.FillRotatedRect(d.X, d.Y, dominoWidth, dominoHeight, d.Angle, dominoColor)
	}
}

func drawLeverAndCart(canvas render.Canvas, step *components.Step) {
	lever := step.Lever
	if lever == nil {
		return
	}

	// 轨道
	canvas.StrokeLine(step.X-40, step.Y, step.X+60, step.Y, railWidth, railColor)

	// 杠杆以支点为一端旋转
	pivotX, pivotY := step.X-10, step.Y
	sin, cos := math.Sincos(lever.LeverAngle)
	hx, hy := leverLength/2, leverThickness/2
	cx := pivotX + hx*cos - hy*sin
	cy := pivotY + hx*sin + hy*cos
	canvas.FillRotatedRect(cx, cy, leverLength, leverThickness, lever.LeverAngle, leverColor)

	// 小车
	canvas.FillRotatedRect(lever.CartX, step.Y-12, cartWidth, cartHeight, 0, cartColor)
}

func drawBookDrop(canvas render.Canvas, step *components.Step) {
	if step.Book == nil {
		return
	}
	canvas.FillRotatedRect(step.X, step.Book.BookY, bookWidth, bookHeight, 0, bookColor)
}

func drawBell(canvas render.Canvas, step *components.Step) {
	canvas.FillEllipse(step.X, step.Y, bellRadiusX, bellRadiusY, bellColor)
	canvas.FillRect(step.X-6, step.Y+18, 12, 6, clapColor)

	if step.Done {
		canvas.DrawText("DING!", step.X, step.Y-dingTextOffsetY, dingTextSize, render.AlignCenter, dingColor)
	}
}
