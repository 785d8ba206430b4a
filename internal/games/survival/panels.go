package survival

import (
	"fmt"

	"github.com/vovakirdan/moofield/internal/config"
	"github.com/vovakirdan/moofield/internal/core"
	"github.com/vovakirdan/moofield/internal/sim"
)

// panelRect centres a box of at most w x h on the screen.
func panelRect(dst *core.Screen, w, h int) core.Rect {
	w = min(w, dst.Width()-2)
	h = min(h, dst.Height()-2)
	return core.NewRect((dst.Width()-w)/2, (dst.Height()-h)/2, w, h)
}

func clearRect(dst *core.Screen, r core.Rect) {
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			dst.Set(x, y, ' ')
		}
	}
}

func clip(s string, n int) string {
	r := []rune(s)
	if n <= 0 {
		return ""
	}
	if len(r) > n {
		return string(r[:n-1]) + "…"
	}
	return s
}

func (g *Game) renderAgeUp(dst *core.Screen, pc *sim.PendingChoice) {
	cat := g.world.Catalog()
	r := panelRect(dst, 56, len(pc.Options)+6)
	clearRect(dst, r)
	dst.DrawBox(r, core.ColorBrightYellow)
	dst.DrawTextColored(r.X+2, r.Y+1, fmt.Sprintf("Age %d: choose an unlock", pc.Age), core.ColorBrightYellow)

	for i, id := range pc.Options {
		y := r.Y + 3 + i
		if y >= r.Bottom()-2 {
			break
		}
		line := fmt.Sprintf("%s (%s) %s", cat.DisplayName(id), cat.Kind(id), itemDesc(cat, id))
		c := core.ColorWhite
		if i == g.cursor {
			dst.DrawTextColored(r.X+2, y, ">", core.ColorBrightYellow)
			c = core.ColorBrightWhite
		}
		dst.DrawTextColored(r.X+4, y, clip(line, r.W-6), c)
	}
	dst.DrawTextColored(r.X+2, r.Bottom()-2, clip("↑/↓ select  Enter take  Esc skip", r.W-4), core.ColorGray)
}

func itemDesc(cat *config.Catalog, id string) string {
	switch cat.Kind(id) {
	case config.ItemWeapon:
		return cat.Weapons[id].Desc
	case config.ItemBuilding:
		return cat.Buildings[id].Desc
	case config.ItemConsumable:
		return cat.Consumables[id].Desc
	}
	return ""
}

func (g *Game) renderShop(dst *core.Screen, p *sim.Player) {
	items := g.world.ShopListing(g.shopSlot)
	r := panelRect(dst, 64, 20)
	clearRect(dst, r)
	dst.DrawBox(r, core.ColorCyan)

	hats, accs := core.ColorGray, core.ColorGray
	if g.shopSlot == sim.GearHat {
		hats = core.ColorBrightWhite
	} else {
		accs = core.ColorBrightWhite
	}
	dst.DrawTextColored(r.X+2, r.Y+1, "[1] Hats", hats)
	dst.DrawTextColored(r.X+12, r.Y+1, "[2] Accessories", accs)
	gold := fmt.Sprintf("Gold %.0f", p.Gold)
	dst.DrawTextColored(r.Right()-len(gold)-2, r.Y+1, gold, core.ColorYellow)

	rows := r.H - 5
	first := 0
	if g.cursor >= rows {
		first = g.cursor - rows + 1
	}
	for i := first; i < len(items) && i-first < rows; i++ {
		it := items[i]
		y := r.Y + 3 + i - first
		state := fmt.Sprintf("%6.0f", it.Def.Cost)
		switch {
		case it.Equipped:
			state = "  worn"
		case it.Owned:
			state = "  own "
		case it.Def.Free:
			state = "  free"
		}
		c := core.ColorWhite
		if !it.Owned && !it.Def.Free && it.Def.Cost > p.Gold {
			c = core.ColorGray
		}
		if i == g.cursor {
			dst.DrawTextColored(r.X+2, y, ">", core.ColorBrightYellow)
			c = core.ColorBrightWhite
		}
		line := fmt.Sprintf("%s %-16s %s", state, clip(it.Def.Name, 16), it.Def.Desc)
		dst.DrawTextColored(r.X+4, y, clip(line, r.W-6), c)
	}
	dst.DrawTextColored(r.X+2, r.Bottom()-2, clip("↑/↓ select  Enter buy/wear  Esc close", r.W-4), core.ColorGray)
}

func (g *Game) renderGameOver(dst *core.Screen, f *core.RunStats) {
	r := panelRect(dst, 36, 10)
	clearRect(dst, r)
	dst.DrawBox(r, core.ColorBrightRed)
	dst.DrawTextColored(r.X+2, r.Y+1, "You died", core.ColorBrightRed)
	lines := []string{
		fmt.Sprintf("Score     %d", f.Score),
		fmt.Sprintf("Age       %d", f.Age),
		fmt.Sprintf("Kills     %d", f.Kills),
		fmt.Sprintf("Survived  %d:%02d", f.SurvivedSec/60, f.SurvivedSec%60),
	}
	for i, l := range lines {
		dst.DrawText(r.X+2, r.Y+3+i, l)
	}
	dst.DrawTextColored(r.X+2, r.Bottom()-2, "R restart  Q quit", core.ColorGray)
}
