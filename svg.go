package pie

import (
	"bytes"
	"encoding/xml"
	"fmt"
)

// RenderSVG draws vm as a standalone SVG document at its final angles. The
// output depends only on its inputs, so equal inputs give equal bytes.
func RenderSVG(vm ViewModel, vp Viewport, cfg Config) []byte {
	var b bytes.Buffer
	w, h := svgNum(vp.Width), svgNum(vp.Height)
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s">`, w, h, w, h)
	b.WriteByte('\n')
	if cfg.Background != "" {
		fmt.Fprintf(&b, `<rect width="%s" height="%s" fill="%s"/>`, w, h, svgAttr(cfg.Background))
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, `<g transform="translate(%s,%s)">`, svgNum(vp.Width/2), svgNum(vp.Height/2))
	b.WriteByte('\n')

	slices := Layout(vm.DataPoints)
	arc := RadiiForViewport(vp)
	for _, s := range slices {
		fmt.Fprintf(&b, `<g class="arc"><path d="%s" fill="%s" fill-opacity="%s" stroke="%s" stroke-width="%s"><title>`,
			arc.Path(s.StartAngle, s.EndAngle), svgAttr(s.Data.Color), svgNum(cfg.SolidOpacity),
			svgAttr(cfg.StrokeColor), svgNum(cfg.StrokeWidth))
		writeSVGText(&b, s.Data.Category+": "+FormatRaw(s.Data.Value))
		b.WriteString("</title></path></g>\n")
	}

	labelRadius := LabelRadius(arc.OuterRadius)
	for _, s := range slices {
		p := LabelAnchor(s, labelRadius)
		fmt.Fprintf(&b, `<text transform="translate(%s,%s)" text-anchor="middle" font-family="sans-serif" font-size="%spx" fill="%s">`,
			svgNum(p.X), svgNum(p.Y), svgNum(cfg.LabelFontSize), svgAttr(cfg.LabelColor))
		fmt.Fprintf(&b, `<tspan x="0" y="%sem">`, svgNum(categoryLineEm))
		writeSVGText(&b, s.Data.Category)
		b.WriteString("</tspan>")
		if showValueLabel(s, cfg.ValueLabelMinSpan) {
			fmt.Fprintf(&b, `<tspan x="0" y="%sem" fill-opacity="%s">`, svgNum(valueLineEm), svgNum(labelValueAlpha))
			writeSVGText(&b, FormatValue(s.Data.Value))
			b.WriteString("</tspan>")
		}
		b.WriteString("</text>\n")
	}
	b.WriteString("</g>\n</svg>\n")
	return b.Bytes()
}

func writeSVGText(b *bytes.Buffer, s string) {
	// EscapeText only fails when the writer does; bytes.Buffer never does.
	_ = xml.EscapeText(b, []byte(s))
}

func svgAttr(s string) string {
	var b bytes.Buffer
	writeSVGText(&b, s)
	return b.String()
}
