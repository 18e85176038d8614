// Package label renders printable item cards: a QR code whose payload is the
// item id, plus the name, SKU, and id in plain text. The card is what gets
// taped to a shelf or a machine so a handheld scanner can pull the item up.
package label

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"

	qrcode "github.com/skip2/go-qrcode"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/amevn/warehouse/internal/model"
)

// Card dimensions in pixels.
const (
	cardWidth  = 480
	cardHeight = 560
	qrSize     = 320
)

// Footer is printed at the bottom of every card.
const Footer = "ame.vn - Warehouse"

// QR returns a PNG of the QR code for the given item id. The payload is
// exactly the id string, so a scan resolves verbatim through FindByID.
func QR(itemID string, size int) ([]byte, error) {
	data, err := qrcode.Encode(itemID, qrcode.High, size)
	if err != nil {
		return nil, fmt.Errorf("encoding qr code: %w", err)
	}
	return data, nil
}

// Card renders the printable card for an item as a PNG.
func Card(item *model.Item) ([]byte, error) {
	qr, err := qrcode.New(item.ID, qrcode.High)
	if err != nil {
		return nil, fmt.Errorf("building qr code: %w", err)
	}
	qrImg := qr.Image(qrSize)

	card := image.NewRGBA(image.Rect(0, 0, cardWidth, cardHeight))
	draw.Draw(card, card.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	drawCentered(card, item.Name, 40)
	drawCentered(card, "SKU: "+item.SKU, 70)

	qrPos := image.Pt((cardWidth-qrSize)/2, 100)
	draw.Copy(card, qrPos, qrImg, qrImg.Bounds(), draw.Src, nil)

	drawCentered(card, "ID: "+item.ID, 100+qrSize+30)
	drawCentered(card, Footer, cardHeight-25)

	var buf bytes.Buffer
	if err := png.Encode(&buf, card); err != nil {
		return nil, fmt.Errorf("encoding card: %w", err)
	}
	return buf.Bytes(), nil
}

// drawCentered draws a line of text horizontally centered at baseline y.
func drawCentered(dst *image.RGBA, text string, y int) {
	face := basicfont.Face7x13
	width := font.MeasureString(face, text).Ceil()
	x := (dst.Bounds().Dx() - width) / 2
	if x < 4 {
		x = 4
	}

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(color.Black),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}
