package imageplot

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"regexp"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/antmicro/servis/src/render"
)

const titleBand = 36

func (b *Backend) renderPNG(doc *render.Document, outPath string) error {
	plotW, histW, figH := doc.PaneSizes(b.cfg)
	top := 0
	if doc.Title != "" {
		top = titleBand
	}
	canvas := image.NewRGBA(image.Rect(0, 0, plotW+histW, top+figH*len(doc.Figures)))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	if doc.Title != "" {
		drawTitle(canvas, doc.Title, plotW+histW)
	}

	for i := range doc.Figures {
		plot, hist := b.figureCharts(doc, &doc.Figures[i])
		y := top + i*figH
		pastePNG(canvas, renderChartPNG(plot), 0, y, plotW, figH)
		pastePNG(canvas, renderBarChartPNG(hist), plotW, y, histW, figH)
	}

	f, err := os.Create(outPath + ".png")
	if err != nil {
		return fmt.Errorf("create png output: %w", err)
	}
	defer f.Close()
	if err := png.Encode(f, canvas); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return f.Close()
}

// pastePNG decodes a rendered pane and copies it into place. A nil or
// undecodable pane falls back to a blank fill so the document still renders.
func pastePNG(dst *image.RGBA, data []byte, x, y, w, h int) {
	rect := image.Rect(x, y, x+w, y+h)
	if data == nil {
		draw.Draw(dst, rect, image.NewUniform(color.RGBA{R: 245, G: 245, B: 245, A: 255}), image.Point{}, draw.Src)
		return
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		draw.Draw(dst, rect, image.NewUniform(color.RGBA{R: 245, G: 245, B: 245, A: 255}), image.Point{}, draw.Src)
		return
	}
	draw.Draw(dst, rect, img, img.Bounds().Min, draw.Over)
}

// drawTitle centers the document title in the top banner using the bundled
// bitmap face.
func drawTitle(dst *image.RGBA, text string, width int) {
	face := basicfont.Face7x13
	dr := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(color.RGBA{R: 20, G: 20, B: 20, A: 255}),
		Face: face,
	}
	tw := dr.MeasureString(text).Ceil()
	x := (width - tw) / 2
	if x < 8 {
		x = 8
	}
	y := titleBand/2 + face.Metrics().Ascent.Ceil()/2
	dr.Dot = fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)}
	dr.DrawString(text)
}

var svgOpenTag = regexp.MustCompile(`<svg[^>]*>`)

func (b *Backend) renderSVG(doc *render.Document, outPath string) error {
	plotW, histW, figH := doc.PaneSizes(b.cfg)
	top := 0
	if doc.Title != "" {
		top = titleBand
	}
	totalW := plotW + histW
	totalH := top + figH*len(doc.Figures)

	var out bytes.Buffer
	fmt.Fprintf(&out, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d">`, totalW, totalH)
	out.WriteByte('\n')
	if doc.Title != "" {
		fmt.Fprintf(&out, `<text x="%d" y="%d" text-anchor="middle" font-family="%s" font-size="18">%s</text>`,
			totalW/2, titleBand/2+6, doc.FontFamily, escapeXML(doc.Title))
		out.WriteByte('\n')
	}
	for i := range doc.Figures {
		plot, hist := b.figureCharts(doc, &doc.Figures[i])
		y := top + i*figH
		writeSVGPane(&out, renderChartSVG(plot), 0, y, plotW, figH)
		writeSVGPane(&out, renderBarChartSVG(hist), plotW, y, histW, figH)
	}
	out.WriteString("</svg>\n")

	f, err := os.Create(outPath + ".svg")
	if err != nil {
		return fmt.Errorf("create svg output: %w", err)
	}
	defer f.Close()
	if _, err := f.Write(out.Bytes()); err != nil {
		return fmt.Errorf("write svg: %w", err)
	}
	return f.Close()
}

// writeSVGPane nests a rendered pane as an inner <svg> element positioned at
// (x, y). The pane's own root tag is rewritten to carry the placement.
func writeSVGPane(out *bytes.Buffer, data []byte, x, y, w, h int) {
	if data == nil {
		return
	}
	s := string(data)
	if i := strings.Index(s, "<svg"); i >= 0 {
		s = s[i:]
	}
	s = svgOpenTag.ReplaceAllString(s,
		fmt.Sprintf(`<svg x="%d" y="%d" width="%d" height="%d" viewBox="0 0 %d %d">`, x, y, w, h, w, h))
	out.WriteString(s)
	out.WriteByte('\n')
}

func escapeXML(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}
