package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/hydrate/constants"
	"github.com/lixenwraith/hydrate/hydration"
)

// Level is the fill severity band
type Level uint8

const (
	LevelNormal Level = iota
	LevelWarning
	LevelAlert
)

func (l Level) String() string {
	switch l {
	case LevelWarning:
		return "warning"
	case LevelAlert:
		return "alert"
	default:
		return "normal"
	}
}

// Palette maps severity bands to colors
type Palette struct {
	Normal  tcell.Color
	Warning tcell.Color
	Alert   tcell.Color
}

// DefaultPalette is blue / amber / red
var DefaultPalette = Palette{
	Normal:  tcell.NewRGBColor(59, 130, 246),
	Warning: tcell.NewRGBColor(245, 158, 11),
	Alert:   tcell.NewRGBColor(239, 68, 68),
}

// Color returns the band color
func (p Palette) Color(l Level) tcell.Color {
	switch l {
	case LevelAlert:
		return p.Alert
	case LevelWarning:
		return p.Warning
	default:
		return p.Normal
	}
}

// LevelFor bands fill: <30 alert, <60 warning, else normal
// Exact thresholds belong to the higher band
func LevelFor(fill float64) Level {
	switch {
	case fill < constants.AlertThresholdPercent:
		return LevelAlert
	case fill < constants.WarningThresholdPercent:
		return LevelWarning
	default:
		return LevelNormal
	}
}

// Visual is everything the view needs to draw the body
type Visual struct {
	FillPercent float64
	Level       Level
	Color       tcell.Color
	Silhouette  Silhouette
	Mesh        Mesh
}

// Bind maps (fill, variant) to visual parameters; pure, no hidden state
func Bind(fill float64, variant hydration.BodyVariant) Visual {
	fill = hydration.ClampPercent(fill)
	level := LevelFor(fill)
	return Visual{
		FillPercent: fill,
		Level:       level,
		Color:       DefaultPalette.Color(level),
		Silhouette:  SilhouetteFor(variant),
		Mesh:        MeshFor(variant),
	}
}
