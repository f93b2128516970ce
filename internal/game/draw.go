package game

import (
	"image"

	"chosenoffset.com/thurs/internal/core/raycast"
	"chosenoffset.com/thurs/internal/render"
	"chosenoffset.com/thurs/internal/render/projection"
	"chosenoffset.com/thurs/internal/ui/hud"
)

// Draw renders the game to the canvas: background halves, one wall strip per
// column, then the overlays.
func (g *Game) Draw(canvas render.Canvas) {
	w, h := canvas.Size()
	g.ScreenWidth, g.ScreenHeight = w, h

	canvas.Clear(g.Config.Render.Ceiling)
	canvas.FillRect(image.Rect(0, h/2, w, h), g.Config.Render.Floor)

	g.Counters = g.drawWalls(canvas, w, h)
	g.drawHUD(canvas)
	g.drawMessages(canvas)
}

// drawWalls casts one ray per column. Columns whose ray misses keep the
// background.
func (g *Game) drawWalls(canvas render.Canvas, w, h int) FrameCounters {
	var counters FrameCounters
	p := g.Player
	focal := float64(w) / 2 * g.Config.Render.VerticalScale

	for x := 0; x < w; x++ {
		rayDir := projection.RayDirection(p.Dir, p.Plane, projection.CameraX(x, w))
		res := raycast.Cast(p.Pos, rayDir, g.Grid)
		if !res.Ok() {
			counters.ColumnsOpen++
			continue
		}
		counters.ColumnsHit++

		tex := g.textureFor(res.Hit.Code)
		texW, _ := tex.Size()
		strip := projection.Project(res.Hit, rayDir, p.Dir, x, projection.View{
			ScreenHeight: h,
			Focal:        focal,
			TexWidth:     texW,
			MinDistance:  g.Config.Render.MinDistance,
		})
		if strip.Empty() {
			continue
		}

		canvas.DrawColumn(tex, render.Column{
			DstX:      x,
			DstTop:    float64(strip.Top),
			DstHeight: float64(strip.Bottom - strip.Top),
			SrcX:      strip.TexX,
			SrcV0:     strip.V0,
			SrcV1:     strip.V1,
			Shade:     g.LightingManager.Shade(strip.Distance, strip.Side),
		})
	}
	return counters
}

// textureFor selects the texture for a wall code. Codes wrap around the
// texture list, so a single texture serves every wall.
func (g *Game) textureFor(code int) render.Texture {
	n := len(g.Textures)
	i := (code - 1) % n
	if i < 0 {
		i += n
	}
	return g.Textures[i]
}

func (g *Game) drawHUD(canvas render.Canvas) {
	if g.GameHUD == nil {
		return
	}
	g.GameHUD.SetScreenSize(g.ScreenWidth, g.ScreenHeight)
	var fps float64
	if g.Stats != nil {
		fps = g.Stats.ActualFPS()
	}
	g.GameHUD.Draw(canvas, hud.Snapshot{
		Pos:         g.Player.Pos,
		Dir:         g.Player.Dir,
		FPS:         fps,
		ColumnsHit:  g.Counters.ColumnsHit,
		ColumnsOpen: g.Counters.ColumnsOpen,
		Grid:        g.Grid,
	})
}

// drawMessages stacks active messages above the bottom edge, newest lowest.
func (g *Game) drawMessages(canvas render.Canvas) {
	_, h := canvas.Size()
	y := h - 10
	for i := len(g.Messages) - 1; i >= 0; i-- {
		_, lh := canvas.MeasureText(g.Messages[i].Text)
		y -= lh
		canvas.DrawText(g.Messages[i].Text, 10, y)
	}
}
