package qrcode

import (
	qr "github.com/skip2/go-qrcode"
)

// modulePixels is the rendered size of one QR module. The library adds
// the standard 4-module quiet zone around the symbol.
const modulePixels = 10

// PNG renders the given URL as a PNG QR code with error-correction
// level L. Pure function: URL string in, image bytes out.
func PNG(url string) ([]byte, error) {
	code, err := qr.New(url, qr.Low)
	if err != nil {
		return nil, err
	}
	// A negative size renders each module at that many pixels instead of
	// scaling to a fixed image size.
	return code.PNG(-modulePixels)
}
