package survival

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/moofield/internal/config"
	"github.com/vovakirdan/moofield/internal/core"
	"github.com/vovakirdan/moofield/internal/sim"
)

const (
	unitsPerCol = 10.0 // World units per screen column
	unitsPerRow = 20.0 // Terminal cells are about twice as tall as wide
	hudTop      = 2
	hudBottom   = 2
	minScreenW  = 40
	minScreenH  = 14
)

type glyph struct {
	r rune
	c core.Color
}

var resourceGlyphs = map[string]glyph{
	"tree":   {'♣', core.ColorGreen},
	"bush":   {'♠', core.ColorBrightGreen},
	"stone":  {'●', core.ColorGray},
	"gold":   {'◆', core.ColorYellow},
	"cactus": {'‡', core.ColorGreen},
}

var facing = []rune{'→', '↘', '↓', '↙', '←', '↖', '↑', '↗'}

// camera maps world coordinates to the map viewport.
type camera struct {
	center core.Vec2
	view   core.Rect
}

func (c camera) toScreen(p core.Vec2) (int, int) {
	x := c.view.X + c.view.W/2 + int(math.Floor((p.X-c.center.X)/unitsPerCol))
	y := c.view.Y + c.view.H/2 + int(math.Floor((p.Y-c.center.Y)/unitsPerRow))
	return x, y
}

func (c camera) toWorld(x, y int) core.Vec2 {
	return core.V(
		c.center.X+(float64(x-c.view.X-c.view.W/2)+0.5)*unitsPerCol,
		c.center.Y+(float64(y-c.view.Y-c.view.H/2)+0.5)*unitsPerRow,
	)
}

// ScreenToWorld converts a screen cell to world coordinates for aiming.
func (g *Game) ScreenToWorld(x, y, screenW, screenH int) core.Vec2 {
	if g.world == nil {
		return core.Vec2{}
	}
	return g.camera(screenW, screenH).toWorld(x, y)
}

func (g *Game) camera(w, h int) camera {
	return camera{
		center: g.world.Player().Pos,
		view:   core.NewRect(0, hudTop, w, h-hudTop-hudBottom),
	}
}

// Render draws the world, HUD and any open panel.
func (g *Game) Render(dst *core.Screen) {
	if g.world == nil {
		return
	}
	w, h := dst.Width(), dst.Height()
	if w < minScreenW || h < minScreenH {
		dst.DrawTextCentered(h/2, "Window too small")
		dst.DrawTextCentered(h/2+1, "Please resize terminal")
		return
	}

	snap := g.world.Snapshot()
	cam := g.camera(w, h)
	g.renderTerrain(dst, cam)
	g.renderEntities(dst, cam, &snap)
	g.renderHUD(dst, &snap)
	g.renderToolbar(dst, &snap)
	g.renderFeed(dst)

	switch {
	case snap.Final != nil:
		g.renderGameOver(dst, snap.Final)
	case g.panel == PanelAgeUp && snap.Pending != nil:
		g.renderAgeUp(dst, snap.Pending)
	case g.panel == PanelShop:
		g.renderShop(dst, &snap.Player)
	case g.paused:
		dst.DrawTextCentered(cam.view.Y+cam.view.H/2, " PAUSED ")
	}
}

func (g *Game) renderTerrain(dst *core.Screen, cam camera) {
	wc := g.world.Catalog().World
	riverX := wc.Width * wc.RiverX
	for y := cam.view.Y; y < cam.view.Bottom(); y++ {
		for x := cam.view.X; x < cam.view.Right(); x++ {
			p := cam.toWorld(x, y)
			switch {
			case p.X < 0 || p.Y < 0 || p.X > wc.Width || p.Y > wc.Height:
				dst.SetColored(x, y, '░', core.ColorGray)
			case wc.RiverEnabled && math.Abs(p.X-riverX) < wc.RiverWidth/2:
				dst.SetColored(x, y, '≈', core.ColorBlue)
			}
		}
	}
}

// disc fills the cells covered by a circle of radius r around p.
func disc(dst *core.Screen, cam camera, p core.Vec2, r float64, gl glyph) {
	cx, cy := cam.toScreen(p)
	rx, ry := int(r/unitsPerCol), int(r/unitsPerRow)
	for dy := -ry; dy <= ry; dy++ {
		for dx := -rx; dx <= rx; dx++ {
			ex, ey := float64(dx)*unitsPerCol, float64(dy)*unitsPerRow
			if ex*ex+ey*ey > r*r {
				continue
			}
			if x, y := cx+dx, cy+dy; cam.view.Contains(x, y) {
				dst.SetColored(x, y, gl.r, gl.c)
			}
		}
	}
}

func point(dst *core.Screen, cam camera, p core.Vec2, gl glyph) {
	if x, y := cam.toScreen(p); cam.view.Contains(x, y) {
		dst.SetColored(x, y, gl.r, gl.c)
	}
}

func (g *Game) renderEntities(dst *core.Screen, cam camera, snap *sim.Snapshot) {
	cat := g.world.Catalog()
	for _, r := range snap.Resources {
		if !r.Alive {
			continue
		}
		gl, ok := resourceGlyphs[r.Kind]
		if !ok {
			gl = glyph{'?', core.ColorWhite}
		}
		disc(dst, cam, r.Pos, r.Size*0.6, gl)
	}
	for _, b := range snap.Buildings {
		if !b.Alive {
			continue
		}
		def, _ := cat.Building(b.Kind)
		gl := buildingGlyph(&def, &b)
		disc(dst, cam, b.Pos, b.Size*0.4, gl)
	}
	for _, pr := range snap.Projectiles {
		point(dst, cam, pr.Pos, glyph{'•', core.ColorBrightWhite})
	}
	for _, e := range snap.Enemies {
		if !e.Alive {
			continue
		}
		def, _ := cat.Enemy(e.Kind)
		gl := enemyGlyph(&def, &e)
		if e.Boss {
			disc(dst, cam, e.Pos, e.Size*0.5, gl)
		}
		point(dst, cam, e.Pos, gl)
	}

	p := &snap.Player
	color := core.ColorBrightWhite
	if p.FlashTimer > 0 {
		color = core.ColorBrightRed
	}
	point(dst, cam, p.Pos, glyph{'@', color})
	oct := int(math.Round(p.Angle/(math.Pi/4))) % 8
	if oct < 0 {
		oct += 8
	}
	ahead := p.Pos.Add(core.FromAngle(p.Angle, unitsPerCol*1.5))
	if x, y := cam.toScreen(ahead); cam.view.Contains(x, y) && dst.Get(x, y) != '@' {
		dst.SetColored(x, y, facing[oct], core.ColorWhite)
	}
}

func buildingGlyph(def *config.BuildingDef, b *sim.Building) glyph {
	var gl glyph
	switch {
	case def.Traps:
		gl = glyph{'○', core.ColorBrown}
	case def.MineDamage > 0:
		gl = glyph{'×', core.ColorRed}
	case def.Turret != nil:
		gl = glyph{'╬', core.ColorCyan}
	case def.Heal != nil:
		gl = glyph{'+', core.ColorBrightGreen}
	case def.BoostForce > 0:
		gl = glyph{'»', core.ColorBrightBlue}
	case def.Teleports:
		gl = glyph{'◎', core.ColorPurple}
	case def.GrowMs > 0:
		gl = glyph{'↟', core.ColorGreen}
	case def.PassiveGold > 0:
		gl = glyph{'✱', core.ColorYellow}
		if int(b.SpinPhase*2)%2 == 1 {
			gl.r = '✳'
		}
	case def.Damage > 0:
		gl = glyph{'^', core.ColorWhite}
		if def.Poison != nil {
			gl.c = core.ColorMagenta
		} else if def.Burn != nil {
			gl.c = core.ColorOrange
		}
	case def.Cost.Stone > 0:
		gl = glyph{'█', core.ColorGray}
	default:
		gl = glyph{'█', core.ColorBrown}
	}
	if !b.Armed() {
		gl.c = core.ColorGray
	}
	return gl
}

func enemyGlyph(def *config.EnemyDef, e *sim.Enemy) glyph {
	r := 'e'
	for _, c := range strings.ToLower(def.Name) {
		r = c
		break
	}
	if e.Boss {
		r = []rune(strings.ToUpper(string(r)))[0]
	}
	c := core.ColorWhite
	switch {
	case e.FlashTimer > 0:
		c = core.ColorBrightWhite
	case e.State == sim.StateTrapped:
		c = core.ColorCyan
	case e.State == sim.StateCharge:
		c = core.ColorOrange
	case e.Boss || e.State == sim.StatePursue:
		c = core.ColorBrightRed
	case def.Aggressive:
		c = core.ColorRed
	}
	return glyph{r, c}
}

func (g *Game) renderHUD(dst *core.Screen, snap *sim.Snapshot) {
	p := &snap.Player
	cat := g.world.Catalog()
	xp := "max"
	if p.Age < cat.Ages.MaxAge {
		xp = fmt.Sprintf("%d/%d", p.XP, cat.Ages.XPNeeded(p.Age))
	}
	secs := int(p.TimeSurvived / 1000)
	line := fmt.Sprintf("Age %d  XP %s  Gold %.0f  Wood %.0f  Stone %.0f  Score %d  Kills %d  %d:%02d",
		p.Age, xp, p.Gold, p.Wood, p.Stone, int(p.Score), p.Kills, secs/60, secs%60)
	dst.DrawTextColored(0, 0, line, core.ColorBrightWhite)

	x := 0
	dst.DrawText(x, 1, "HP")
	dst.DrawBar(x+3, 1, 16, p.HealthFrac(), core.ColorBrightRed)
	x += 20
	dst.DrawText(x, 1, "Food")
	dst.DrawBar(x+5, 1, 16, p.Food/max(p.MaxFood, 1), core.ColorOrange)
	x += 23
	gear := fmt.Sprintf("%s / %s", cat.Hat(p.HatID).Name, cat.Accessory(p.AccessoryID).Name)
	if p.Poison.Active() {
		gear += "  poisoned"
	}
	dst.DrawTextColored(x, 1, gear, core.ColorGray)
}

func (g *Game) renderToolbar(dst *core.Screen, snap *sim.Snapshot) {
	cat := g.world.Catalog()
	y := dst.Height() - 2
	slotW := max(6, dst.Width()/core.SlotCount)
	for i := range core.SlotCount {
		item := g.world.SlotItem(i)
		name := "-"
		if item.ID != "" {
			name = cat.DisplayName(item.ID)
		}
		label := fmt.Sprintf("%d %s", i+1, name)
		if r := []rune(label); len(r) > slotW-1 {
			label = string(r[:slotW-1])
		}
		c := core.ColorGray
		if i == snap.Player.ActiveSlot {
			c = core.ColorBrightYellow
		}
		dst.DrawTextColored(i*slotW, y, label, c)
	}
	if g.notice.ttl > 0 {
		dst.DrawTextColored(0, y+1, g.notice.text, g.notice.color)
	}
}

func (g *Game) renderFeed(dst *core.Screen) {
	for i, l := range g.feed {
		x := dst.Width() - len([]rune(l.text)) - 1
		dst.DrawTextColored(max(0, x), hudTop+i, l.text, l.color)
	}
}
