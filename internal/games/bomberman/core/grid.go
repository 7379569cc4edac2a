package core

import (
	"math/rand"
	"strings"
)

// Tile is the content of one grid cell.
type Tile uint8

const (
	TileEmpty Tile = iota
	TileWall       // indestructible
	TileBlock      // destructible
)

// String returns a one-character debug form of the tile.
func (t Tile) String() string {
	switch t {
	case TileWall:
		return "#"
	case TileBlock:
		return "+"
	default:
		return "."
	}
}

// Point is a tile coordinate.
type Point struct {
	X, Y int
}

// Add returns p shifted by d's unit vector.
func (p Point) Add(d Dir) Point {
	dx, dy := d.Delta()
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Dir is one of the four axis directions, or DirNone.
type Dir uint8

const (
	DirNone Dir = iota
	DirUp
	DirDown
	DirLeft
	DirRight
)

// Dirs lists the four axis directions in a fixed order.
var Dirs = [4]Dir{DirDown, DirUp, DirRight, DirLeft}

// Delta returns the unit vector of the direction.
func (d Dir) Delta() (dx, dy int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	case DirRight:
		return 1, 0
	}
	return 0, 0
}

func (d Dir) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	}
	return "none"
}

// Grid is a fixed-size tile map. Only explosions mutate it after generation.
type Grid struct {
	width  int
	height int
	tiles  []Tile
}

// NewGrid returns a grid of the given size with every tile Empty.
func NewGrid(width, height int) *Grid {
	return &Grid{
		width:  width,
		height: height,
		tiles:  make([]Tile, width*height),
	}
}

// GenerateGrid builds a level: wall border, wall lattice on even interior
// coordinates and random blocks outside the safe zone around spawn.
func GenerateGrid(width, height int, spawn Point, blockChance float64, rng *rand.Rand) *Grid {
	g := NewGrid(width, height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if g.IsBorder(x, y) || g.IsLattice(x, y) {
				g.set(x, y, TileWall)
			}
		}
	}

	for y := 1; y < height-1; y++ {
		for x := 1; x < width-1; x++ {
			if g.at(x, y) != TileEmpty {
				continue
			}
			// Always draw so the sequence does not depend on the safe zone.
			roll := rng.Float64()
			if inSafeZone(x, y, spawn) {
				continue
			}
			if roll < blockChance {
				g.set(x, y, TileBlock)
			}
		}
	}

	if g.InBounds(spawn) {
		g.set(spawn.X, spawn.Y, TileEmpty)
	}
	return g
}

// inSafeZone reports whether (x, y) lies in the 3x3 zone anchored at the
// spawn corner.
func inSafeZone(x, y int, spawn Point) bool {
	return x < spawn.X+2 && y < spawn.Y+2
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// InBounds reports whether p lies inside the grid.
func (g *Grid) InBounds(p Point) bool {
	return p.X >= 0 && p.X < g.width && p.Y >= 0 && p.Y < g.height
}

// At returns the tile at p. Out-of-bounds coordinates read as Wall.
func (g *Grid) At(p Point) Tile {
	if !g.InBounds(p) {
		return TileWall
	}
	return g.at(p.X, p.Y)
}

// IsOpen reports whether p is in bounds and Empty.
func (g *Grid) IsOpen(p Point) bool {
	return g.InBounds(p) && g.at(p.X, p.Y) == TileEmpty
}

// IsBorder reports whether (x, y) is on the outer ring.
func (g *Grid) IsBorder(x, y int) bool {
	return x == 0 || y == 0 || x == g.width-1 || y == g.height-1
}

// IsLattice reports whether (x, y) is one of the fixed interior pillars.
func (g *Grid) IsLattice(x, y int) bool {
	return x >= 2 && x <= g.width-3 && y >= 2 && y <= g.height-3 &&
		x%2 == 0 && y%2 == 0
}

// CountTiles returns how many tiles of kind t the grid holds.
func (g *Grid) CountTiles(t Tile) int {
	n := 0
	for _, tile := range g.tiles {
		if tile == t {
			n++
		}
	}
	return n
}

// Rows returns a copy of the tile matrix, indexed [y][x].
func (g *Grid) Rows() [][]Tile {
	rows := make([][]Tile, g.height)
	for y := range rows {
		rows[y] = make([]Tile, g.width)
		copy(rows[y], g.tiles[y*g.width:(y+1)*g.width])
	}
	return rows
}

// String renders the grid using Tile.String, one row per line.
func (g *Grid) String() string {
	var sb strings.Builder
	for y := 0; y < g.height; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < g.width; x++ {
			sb.WriteString(g.at(x, y).String())
		}
	}
	return sb.String()
}

func (g *Grid) at(x, y int) Tile {
	return g.tiles[y*g.width+x]
}

func (g *Grid) set(x, y int, t Tile) {
	g.tiles[y*g.width+x] = t
}

// destroyBlock turns a Block at p into Empty. Only explosions call it.
func (g *Grid) destroyBlock(p Point) bool {
	if g.At(p) != TileBlock {
		return false
	}
	g.set(p.X, p.Y, TileEmpty)
	return true
}
