package host

import (
	"math"
	"sync"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/phanxgames/pie"
)

// goldenAngle spreads successive hues so neighbouring slices contrast.
const goldenAngle = 137.50776405003785

// Palette hands out one color per category, in order of first request. The
// same category always gets the same color for the palette's lifetime.
type Palette struct {
	mu        sync.Mutex
	colors    map[string]string
	overrides []string
	next      int

	// Chroma and Luminance of generated colors, in HCL space.
	Chroma    float64
	Luminance float64
	// HueOffset is the hue, in degrees, of the first generated color.
	HueOffset float64
}

// NewPalette returns a palette that uses overrides first, in order, and
// generates HCL colors after they run out. Overrides are parsed like
// pie.ParseColor and normalized to "#rrggbb".
func NewPalette(overrides []string) (*Palette, error) {
	p := &Palette{
		colors:    make(map[string]string),
		Chroma:    0.55,
		Luminance: 0.65,
		HueOffset: 200,
	}
	for i, s := range overrides {
		c, err := pie.ParseColor(s)
		if err != nil {
			return nil, pie.Wrap(pie.ErrCodeInvalidConfig, err, "palette[%d]", i)
		}
		p.overrides = append(p.overrides, c.Hex())
	}
	return p, nil
}

// Color returns the color for category.
func (p *Palette) Color(category string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if c, ok := p.colors[category]; ok {
		return c, nil
	}
	c := p.colorAt(p.next)
	p.next++
	p.colors[category] = c
	return c, nil
}

// Len returns the number of categories assigned so far.
func (p *Palette) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.colors)
}

func (p *Palette) colorAt(i int) string {
	if i < len(p.overrides) {
		return p.overrides[i]
	}
	i -= len(p.overrides)
	h := math.Mod(p.HueOffset+float64(i)*goldenAngle, 360)
	return colorful.Hcl(h, p.Chroma, p.Luminance).Clamped().Hex()
}
