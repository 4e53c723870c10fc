// Package imagefmt normaliza las imágenes subidas (banners, paquetes) antes de enviarlas al backend.
package imagefmt

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/disintegration/imaging"

	"github.com/viajespy/agencia-api/internal/application/ports"
)

var _ ports.ImageNormalizer = (*Normalizer)(nil)

// DefaultMaxBytes tamaño máximo aceptado de la imagen subida.
const DefaultMaxBytes = 8 << 20

var (
	ErrTooLarge    = errors.New("imagefmt: la imagen supera el tamaño máximo")
	ErrUnsupported = errors.New("imagefmt: formato de imagen no soportado")
)

// Normalizer decodifica, reduce al ancho máximo y re-codifica (PNG se mantiene PNG, el resto va a JPEG).
type Normalizer struct {
	maxWidth int
	maxBytes int64
}

// NewNormalizer construye el normalizador. maxWidth <= 0 desactiva el redimensionado.
func NewNormalizer(maxWidth int) *Normalizer {
	return &Normalizer{maxWidth: maxWidth, maxBytes: DefaultMaxBytes}
}

// Normalize procesa la imagen completa en memoria.
func (n *Normalizer) Normalize(r io.Reader) (*ports.NormalizedImage, error) {
	data, err := io.ReadAll(io.LimitReader(r, n.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("imagefmt: leer: %w", err)
	}
	if int64(len(data)) > n.maxBytes {
		return nil, ErrTooLarge
	}

	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupported, err)
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupported, err)
	}
	if n.maxWidth > 0 && img.Bounds().Dx() > n.maxWidth {
		img = imaging.Resize(img, n.maxWidth, 0, imaging.Lanczos)
	}

	out := imaging.JPEG
	name := "JPEG"
	if format == "png" {
		out, name = imaging.PNG, "PNG"
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, out, imaging.JPEGQuality(85)); err != nil {
		return nil, fmt.Errorf("imagefmt: codificar: %w", err)
	}
	b := img.Bounds()
	return &ports.NormalizedImage{Data: buf.Bytes(), Format: name, Width: b.Dx(), Height: b.Dy()}, nil
}
