package imagepkg

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// Sheet layout constants. Cards land on a fixed grid, one cell per copy.
const (
	cellW   = 215
	cellH   = 300
	cellPad = 8
	cols    = 10
)

// SheetCard is one card to place on the deck sheet. Horizontal cards are
// rotated so they fill a cell the same way as everything else.
type SheetCard struct {
	Img        image.Image
	Qty        int
	Horizontal bool
}

// ComposeSheet renders the deck as a card grid in the order given, which the
// caller derives from the canonical grouping pass. Each copy of a card gets
// its own cell; the share QR, when present, takes the cell after the last
// card. Nil card images are skipped.
func ComposeSheet(deckCards []SheetCard, qr image.Image) image.Image {
	var cells []image.Image
	for _, c := range deckCards {
		if c.Img == nil {
			continue
		}
		img := c.Img
		if c.Horizontal {
			img = imaging.Rotate90(img)
		}
		img = imaging.Resize(img, cellW, cellH, imaging.Lanczos)
		for i := 0; i < c.Qty; i++ {
			cells = append(cells, img)
		}
	}
	if qr != nil {
		cells = append(cells, imaging.Fit(qr, cellW, cellH, imaging.Lanczos))
	}

	n := len(cells)
	if n == 0 {
		n = 1
	}
	rows := (n + cols - 1) / cols
	w := cols*(cellW+cellPad) + cellPad
	h := rows*(cellH+cellPad) + cellPad

	canvas := imaging.New(w, h, color.NRGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff})
	for i, cell := range cells {
		x := cellPad + (i%cols)*(cellW+cellPad)
		y := cellPad + (i/cols)*(cellH+cellPad)
		canvas = imaging.Paste(canvas, cell, image.Pt(x, y))
	}
	return canvas
}
