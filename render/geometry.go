package render

import (
	"math"

	"github.com/lixenwraith/hydrate/hydration"
)

// Silhouette is a fixed 2D body outline; '#' cells belong to the body
type Silhouette struct {
	Variant hydration.BodyVariant
	Rows    []string
}

// Size returns the bounding box in cells
func (s Silhouette) Size() (w, h int) {
	for _, row := range s.Rows {
		if n := len(row); n > w {
			w = n
		}
	}
	return w, len(s.Rows)
}

// Body reports whether cell (x, y) is part of the body
func (s Silhouette) Body(x, y int) bool {
	if y < 0 || y >= len(s.Rows) || x < 0 || x >= len(s.Rows[y]) {
		return false
	}
	return s.Rows[y][x] == '#'
}

var silhouettes = [...]Silhouette{
	hydration.VariantGeneric: {
		Variant: hydration.VariantGeneric,
		Rows: []string{
			"      #####",
			"     #######",
			"     #######",
			"      #####",
			"       ###",
			"   ###########",
			"  #############",
			"  ## ####### ##",
			"  ## ####### ##",
			"  ## ####### ##",
			"  ## ####### ##",
			"  #  #######  #",
			"     #######",
			"     ### ###",
			"     ### ###",
			"     ### ###",
			"     ### ###",
			"    #### ####",
		},
	},
	hydration.VariantSlim: {
		Variant: hydration.VariantSlim,
		Rows: []string{
			"      #####",
			"     #######",
			"     #######",
			"      #####",
			"       ###",
			"    #########",
			"    #########",
			"    # ##### #",
			"    # ##### #",
			"    # ##### #",
			"    # ##### #",
			"    # ##### #",
			"      #####",
			"      ## ##",
			"      ## ##",
			"      ## ##",
			"      ## ##",
			"     ### ###",
		},
	},
	hydration.VariantMuscular: {
		Variant: hydration.VariantMuscular,
		Rows: []string{
			"       #####",
			"      #######",
			"      #######",
			"       #####",
			"      #######",
			" #################",
			"###################",
			"#### ######### ####",
			"#### ######### ####",
			"###   #######   ###",
			"###   #######   ###",
			"##    #######    ##",
			"      #######",
			"     ####  ####",
			"     ####  ####",
			"     ####  ####",
			"     ####  ####",
			"    #####  #####",
		},
	},
}

// SilhouetteFor returns the outline for a variant; unknown variants get generic
func SilhouetteFor(v hydration.BodyVariant) Silhouette {
	if !v.Valid() {
		v = hydration.VariantGeneric
	}
	return silhouettes[v]
}

// Mesh holds the body dimensions used by the volume render mode
// Units are terminal cells; rows are about twice as tall as columns are wide
type Mesh struct {
	HeadRadius    int
	NeckHeight    int
	ShoulderWidth int
	WaistWidth    int
	TorsoHeight   int
	ArmWidth      int
	ArmLength     int
	LegWidth      int
	LegGap        int
	LegHeight     int
}

var meshes = [...]Mesh{
	hydration.VariantGeneric: {
		HeadRadius: 2, NeckHeight: 1,
		ShoulderWidth: 11, WaistWidth: 9, TorsoHeight: 8,
		ArmWidth: 2, ArmLength: 7,
		LegWidth: 3, LegGap: 1, LegHeight: 6,
	},
	hydration.VariantSlim: {
		HeadRadius: 2, NeckHeight: 1,
		ShoulderWidth: 9, WaistWidth: 6, TorsoHeight: 8,
		ArmWidth: 1, ArmLength: 7,
		LegWidth: 2, LegGap: 1, LegHeight: 7,
	},
	hydration.VariantMuscular: {
		HeadRadius: 2, NeckHeight: 1,
		ShoulderWidth: 15, WaistWidth: 9, TorsoHeight: 8,
		ArmWidth: 3, ArmLength: 7,
		LegWidth: 4, LegGap: 2, LegHeight: 6,
	},
}

// MeshFor returns the dimensions for a variant; unknown variants get generic
func MeshFor(v hydration.BodyVariant) Mesh {
	if !v.Valid() {
		v = hydration.VariantGeneric
	}
	return meshes[v]
}

// Size returns the bounding box of the rasterized mesh
func (m Mesh) Size() (w, h int) {
	w = m.ShoulderWidth + 2*(m.ArmWidth+1)
	h = 2*m.HeadRadius + m.NeckHeight + m.TorsoHeight + m.LegHeight
	return w, h
}

// Rasterize returns per-cell shading in [0,1]; 0 is outside the body
// Shading approximates a lit cylinder (sphere for the head): brightest at the part's center line
func (m Mesh) Rasterize() [][]float64 {
	w, h := m.Size()
	grid := make([][]float64, h)
	for y := range grid {
		grid[y] = make([]float64, w)
	}
	cx := float64(w) / 2

	set := func(x, y int, v float64) {
		if y < 0 || y >= h || x < 0 || x >= w {
			return
		}
		if v > grid[y][x] {
			grid[y][x] = v
		}
	}

	// span shades a horizontal run of cells as a cylinder cross-section
	span := func(y int, left, width int) {
		if width <= 0 {
			return
		}
		half := float64(width) / 2
		mid := float64(left) + half
		for x := left; x < left+width; x++ {
			dx := (float64(x) + 0.5 - mid) / half
			set(x, y, shade(1-dx*dx))
		}
	}

	// Head: ellipse, horizontal radius doubled for cell aspect
	r := float64(m.HeadRadius)
	for y := 0; y < 2*m.HeadRadius; y++ {
		dy := (float64(y) + 0.5 - r) / r
		for x := 0; x < w; x++ {
			dx := (float64(x) + 0.5 - cx) / (2 * r)
			if d := 1 - dx*dx - dy*dy; d >= 0 {
				set(x, y, shade(d))
			}
		}
	}
	row := 2 * m.HeadRadius

	neckW := max(2, m.ShoulderWidth/4)
	for i := 0; i < m.NeckHeight; i++ {
		span(row, int(cx)-neckW/2, neckW)
		row++
	}

	torsoTop := row
	torsoLeft := m.ArmWidth + 1
	for i := 0; i < m.TorsoHeight; i++ {
		t := 0.0
		if m.TorsoHeight > 1 {
			t = float64(i) / float64(m.TorsoHeight-1)
		}
		width := int(math.Round(float64(m.ShoulderWidth) + t*float64(m.WaistWidth-m.ShoulderWidth)))
		span(row, torsoLeft+(m.ShoulderWidth-width)/2, width)
		row++
	}

	for i := 0; i < m.ArmLength; i++ {
		span(torsoTop+i, 0, m.ArmWidth)
		span(torsoTop+i, w-m.ArmWidth, m.ArmWidth)
	}

	legsWidth := 2*m.LegWidth + m.LegGap
	legLeft := int(cx) - legsWidth/2
	for i := 0; i < m.LegHeight; i++ {
		span(row, legLeft, m.LegWidth)
		span(row, legLeft+m.LegWidth+m.LegGap, m.LegWidth)
		row++
	}

	return grid
}

// shade maps a squared-normal term to a visible intensity, floor keeps edges drawn
func shade(d float64) float64 {
	if d <= 0 {
		return 0.2
	}
	return 0.2 + 0.8*math.Sqrt(d)
}

// FillLevel splits a fill percentage across height rows counted from the bottom
// Returns whole rows filled and whether the next row is half filled
// Any positive fill shows at least a half row
func FillLevel(height int, fill float64) (full int, half bool) {
	if height <= 0 || fill <= 0 {
		return 0, false
	}
	if fill >= 100 {
		return height, false
	}
	halves := int(math.Ceil(fill/100*float64(2*height) - 1e-9))
	if halves < 1 {
		halves = 1
	}
	return halves / 2, halves%2 == 1
}
