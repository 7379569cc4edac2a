package bomberman

import (
	"fmt"

	platformcore "github.com/vovakirdan/tui-bomberman/internal/core"
)

// CellWidth is how many terminal columns one tile takes.
const CellWidth = 2

// Glyph names accepted in display.glyphs overrides.
const (
	GlyphFloor     = "floor"
	GlyphWall      = "wall"
	GlyphBlock     = "block"
	GlyphPlayer    = "player"
	GlyphBomb      = "bomb"
	GlyphBombFlash = "bomb_flash"
	GlyphBlast     = "blast"
	GlyphSlime     = "slime"
	GlyphGhost     = "ghost"
	GlyphGoblin    = "goblin"
	GlyphDead      = "dead"
)

// Glyph is the two-column text and color used for one kind of tile.
type Glyph struct {
	Text  [CellWidth]rune
	Color platformcore.Color
}

func glyph(s string, c platformcore.Color) Glyph {
	g := Glyph{Text: [CellWidth]rune{' ', ' '}, Color: c}
	i := 0
	for _, r := range s {
		if i == CellWidth {
			break
		}
		g.Text[i] = r
		i++
	}
	return g
}

// Theme maps glyph names to glyphs.
type Theme struct {
	Name   string
	glyphs map[string]Glyph
}

// Glyph returns the named glyph, or a blank one.
func (t Theme) Glyph(name string) Glyph {
	if g, ok := t.glyphs[name]; ok {
		return g
	}
	return glyph("  ", platformcore.ColorDefault)
}

// UnicodeTheme uses block elements and geometric shapes.
func UnicodeTheme() Theme {
	return Theme{
		Name: "unicode",
		glyphs: map[string]Glyph{
			GlyphFloor:     glyph("  ", platformcore.ColorDefault),
			GlyphWall:      glyph("██", platformcore.ColorGray),
			GlyphBlock:     glyph("▒▒", platformcore.ColorBrown),
			GlyphPlayer:    glyph("◆◆", platformcore.ColorBrightCyan),
			GlyphBomb:      glyph("●●", platformcore.ColorWhite),
			GlyphBombFlash: glyph("●●", platformcore.ColorBrightRed),
			GlyphBlast:     glyph("░░", platformcore.ColorBrightYellow),
			GlyphSlime:     glyph("◎◎", platformcore.ColorGreen),
			GlyphGhost:     glyph("◇◇", platformcore.ColorBrightMagenta),
			GlyphGoblin:    glyph("▲▲", platformcore.ColorRed),
			GlyphDead:      glyph("××", platformcore.ColorGray),
		},
	}
}

// ASCIITheme works on terminals without Unicode fonts.
func ASCIITheme() Theme {
	return Theme{
		Name: "ascii",
		glyphs: map[string]Glyph{
			GlyphFloor:     glyph(" .", platformcore.ColorGray),
			GlyphWall:      glyph("##", platformcore.ColorWhite),
			GlyphBlock:     glyph("[]", platformcore.ColorYellow),
			GlyphPlayer:    glyph("P ", platformcore.ColorBrightCyan),
			GlyphBomb:      glyph("()", platformcore.ColorWhite),
			GlyphBombFlash: glyph("<>", platformcore.ColorBrightRed),
			GlyphBlast:     glyph("**", platformcore.ColorBrightYellow),
			GlyphSlime:     glyph("s ", platformcore.ColorGreen),
			GlyphGhost:     glyph("g ", platformcore.ColorBrightMagenta),
			GlyphGoblin:    glyph("G ", platformcore.ColorRed),
			GlyphDead:      glyph("x ", platformcore.ColorGray),
		},
	}
}

// ThemeByName returns the named theme with overrides applied. Overrides
// keep the base glyph's color.
func ThemeByName(name string, overrides map[string]string) (Theme, error) {
	var t Theme
	switch name {
	case "", "unicode":
		t = UnicodeTheme()
	case "ascii":
		t = ASCIITheme()
	default:
		return Theme{}, fmt.Errorf("bomberman: unknown theme %q", name)
	}

	for key, text := range overrides {
		base, ok := t.glyphs[key]
		if !ok {
			return Theme{}, fmt.Errorf("bomberman: unknown glyph %q", key)
		}
		t.glyphs[key] = glyph(text, base.Color)
	}
	return t, nil
}
