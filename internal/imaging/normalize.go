// Package imaging normalizes uploaded profile and contact photos: decode,
// flatten to RGB, resize or recompress, and re-encode as JPEG. It never
// checks file extensions; the allow-list runs earlier in validation.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	_ "image/png" // register PNG decoder

	xdraw "golang.org/x/image/draw"
)

const (
	// AvatarSize is the exact square dimension of stored profile images.
	AvatarSize = 400
	// AvatarJPEGQuality is the re-encode quality for profile images.
	AvatarJPEGQuality = 85
	// PhotoJPEGQuality is the re-encode quality for contact photos.
	PhotoJPEGQuality = 70
)

// ErrUndecodable is returned when uploaded bytes cannot be decoded as an
// image. This is fatal for the surrounding save operation.
var ErrUndecodable = errors.New("image bytes could not be decoded")

// NormalizeAvatar decodes raw image bytes, flattens to RGB, resizes to
// exactly AvatarSize x AvatarSize and re-encodes as JPEG. The output
// dimensions hold for any input size or aspect ratio.
func NormalizeAvatar(raw []byte) ([]byte, error) {
	src, err := decode(raw)
	if err != nil {
		return nil, err
	}
	resized := resizeExact(src, AvatarSize, AvatarSize)
	return encodeJPEG(resized, AvatarJPEGQuality)
}

// NormalizePhoto decodes raw image bytes, flattens to RGB and re-encodes as
// JPEG at the contact-photo quality. Dimensions are preserved.
func NormalizePhoto(raw []byte) ([]byte, error) {
	src, err := decode(raw)
	if err != nil {
		return nil, err
	}
	return encodeJPEG(toRGB(src), PhotoJPEGQuality)
}

func decode(raw []byte) (image.Image, error) {
	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUndecodable, err)
	}
	return src, nil
}

// toRGB draws the source onto an opaque RGBA canvas, discarding palette,
// grayscale or alpha representations before JPEG encoding.
func toRGB(src image.Image) *image.RGBA {
	if rgba, ok := src.(*image.RGBA); ok {
		return rgba
	}
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}

// resizeExact scales the source to exactly w x h with CatmullRom
// resampling. Aspect ratio is not preserved, matching the product's
// historical avatar behavior.
func resizeExact(src image.Image, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}

func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
