package bomberman

import (
	"fmt"

	"github.com/mattn/go-runewidth"

	platformcore "github.com/vovakirdan/tui-bomberman/internal/core"
	"github.com/vovakirdan/tui-bomberman/internal/games/bomberman/core"
)

// hudHeight is the status line plus its separator.
const hudHeight = 2

// MinSize returns the smallest screen the board fits on.
func (g *Game) MinSize() (w, h int) {
	return g.rules.Width * CellWidth, g.rules.Height + hudHeight
}

// fits reports whether a w x h screen can show the board. A zero size
// means the terminal size is not known yet.
func (g *Game) fits(w, h int) bool {
	if w == 0 && h == 0 {
		return true
	}
	minW, minH := g.MinSize()
	return w >= minW && h >= minH
}

// Render draws the game to the screen.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()
	g.tooSmall = !g.fits(dst.Width(), dst.Height())
	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}
	if g.round == nil {
		return
	}

	snap := g.round.Snapshot()
	boardW, boardH := snap.Width*CellWidth, snap.Height
	ox := (dst.Width() - boardW) / 2
	oy := hudHeight + (dst.Height()-hudHeight-boardH)/2

	g.renderHUD(dst, snap, ox, boardW)
	g.renderBoard(dst, snap, ox, oy)

	board := platformcore.NewRect(ox, oy, boardW, boardH)
	switch {
	case g.paused:
		g.renderOverlay(dst, board, platformcore.ColorBrightWhite,
			"PAUSED", "P to resume")
	case snap.Phase == core.PhaseLevelIntro:
		g.renderOverlay(dst, board, platformcore.ColorBrightCyan,
			fmt.Sprintf("LEVEL %d", snap.Level),
			fmt.Sprintf("%d enemies", len(snap.Enemies)))
	case snap.Phase == core.PhaseLevelComplete:
		g.renderOverlay(dst, board, platformcore.ColorBrightGreen,
			fmt.Sprintf("LEVEL %d CLEAR", snap.Level),
			fmt.Sprintf("+%d bonus", g.rules.LifeBonus),
			fmt.Sprintf("Score %d", snap.Player.Score))
	case snap.Phase == core.PhaseGameOver:
		prompt := "Press any key"
		if snap.PhaseTicks > 0 {
			prompt = ""
		}
		g.renderOverlay(dst, board, platformcore.ColorBrightRed,
			"GAME OVER",
			fmt.Sprintf("Score %d  Best %d", snap.Player.Score, max(g.best, snap.Player.Score)),
			fmt.Sprintf("Reached level %d", snap.Level),
			prompt)
	}
}

// renderHUD draws the status line above the board.
func (g *Game) renderHUD(dst *platformcore.Screen, snap core.Snapshot, ox, width int) {
	hud := fmt.Sprintf("Lv %d  Score %d  Lives %d  Bombs %d  Enemies %d",
		snap.Level, snap.Player.Score, snap.Player.Lives, snap.Player.Bombs, snap.AliveEnemies())
	x := ox
	if runewidth.StringWidth(hud) > width {
		x = 0
	}
	dst.DrawTextColor(x, 0, hud, platformcore.ColorBrightWhite)
	for i := 0; i < width; i++ {
		dst.SetColor(ox+i, 1, '─', platformcore.ColorGray)
	}
}

// renderBoard draws tiles, then blasts, bombs, enemies and the player on top.
func (g *Game) renderBoard(dst *platformcore.Screen, snap core.Snapshot, ox, oy int) {
	put := func(p core.Point, gl Glyph) {
		for i, r := range gl.Text {
			dst.SetColor(ox+p.X*CellWidth+i, oy+p.Y, r, gl.Color)
		}
	}

	for y, row := range snap.Tiles {
		for x, t := range row {
			put(core.Point{X: x, Y: y}, g.theme.Glyph(tileGlyph(t)))
		}
	}

	for _, e := range snap.Explosions {
		gl := g.theme.Glyph(GlyphBlast)
		gl.Color = blastColor(e.Remaining)
		for _, p := range e.Tiles {
			put(p, gl)
		}
	}

	for _, b := range snap.Bombs {
		name := GlyphBomb
		if b.Fuse < 1.0/3 && snap.Tick%8 < 4 {
			name = GlyphBombFlash
		}
		put(b.Pos, g.theme.Glyph(name))
	}

	for _, e := range snap.Enemies {
		if !e.Alive {
			put(e.Pos, g.theme.Glyph(GlyphDead))
			continue
		}
		put(e.Pos, g.theme.Glyph(enemyGlyph(e.Kind)))
	}

	if snap.Player.Alive && snap.Player.Visible {
		put(snap.Player.Pos, g.theme.Glyph(GlyphPlayer))
	}
}

func tileGlyph(t core.Tile) string {
	switch t {
	case core.TileWall:
		return GlyphWall
	case core.TileBlock:
		return GlyphBlock
	}
	return GlyphFloor
}

func enemyGlyph(k core.EnemyKind) string {
	switch k {
	case core.KindGhost:
		return GlyphGhost
	case core.KindGoblin:
		return GlyphGoblin
	}
	return GlyphSlime
}

// blastColor fades an explosion from yellow through orange to red.
func blastColor(remaining float64) platformcore.Color {
	switch {
	case remaining > 0.6:
		return platformcore.ColorBrightYellow
	case remaining > 0.3:
		return platformcore.ColorOrange
	}
	return platformcore.ColorRed
}

// renderOverlay draws a boxed message centered on the board.
func (g *Game) renderOverlay(dst *platformcore.Screen, area platformcore.Rect, c platformcore.Color, lines ...string) {
	w := 0
	for _, l := range lines {
		w = max(w, runewidth.StringWidth(l))
	}
	box := area.CenterIn(w+4, len(lines)+2)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box, c)
	for i, l := range lines {
		lx := box.X + (box.W-runewidth.StringWidth(l))/2
		dst.DrawTextColor(lx, box.Y+1+i, l, c)
	}
}

func (g *Game) renderTooSmall(dst *platformcore.Screen) {
	minW, minH := g.MinSize()
	lines := []string{
		"Terminal too small",
		fmt.Sprintf("need %dx%d, have %dx%d", minW, minH, dst.Width(), dst.Height()),
	}
	y := (dst.Height() - len(lines)) / 2
	for i, l := range lines {
		dst.DrawTextCentered(y+i, l, platformcore.ColorYellow)
	}
}
