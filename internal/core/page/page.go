// Package page defines the scanned page domain model.
package page

import (
	"fmt"
	"path/filepath"
	"time"
)

// Rotation is a clockwise rotation applied to a page at display/export time.
type Rotation int

// Supported rotations. Anything else is rejected by Validate.
const (
	Rotate0   Rotation = 0
	Rotate90  Rotation = 90
	Rotate180 Rotation = 180
	Rotate270 Rotation = 270
)

// Variant selects which image file represents a page.
type Variant string

const (
	// VariantCropped is the plain cropped capture.
	VariantCropped Variant = "cropped"
	// VariantEnhanced is the post-processed capture, when the pipeline produced one.
	VariantEnhanced Variant = "enhanced"
)

// Meta holds capture metadata extracted from the image file.
// All fields are best-effort; scanners and phone cameras vary wildly in
// what EXIF they emit.
type Meta struct {
	Width      int
	Height     int
	CapturedAt time.Time
	Software   string
}

// Page is one scanned document page. Pages are value types: edits produce
// a replacement rather than mutating in place, and the ID survives the
// replacement so in-flight references stay valid across reorders.
type Page struct {
	// ID is an opaque identity token assigned at import. It is the
	// authoritative reference during drag operations and editor handoffs;
	// positions are a display concern only.
	ID string

	// CroppedPath is the cropped capture image. Always set.
	CroppedPath string

	// EnhancedPath is the enhanced variant, empty when the capture
	// pipeline did not produce one.
	EnhancedPath string

	// UseEnhanced prefers the enhanced variant for display and export.
	UseEnhanced bool

	Rotation Rotation
	Label    string
	Meta     Meta

	CreatedAt time.Time
}

// HasEnhanced reports whether an enhanced variant exists.
func (p Page) HasEnhanced() bool {
	return p.EnhancedPath != ""
}

// DisplayImage returns the image path that represents this page: the
// enhanced variant when preferred and present, otherwise the cropped capture.
func (p Page) DisplayImage() string {
	if p.UseEnhanced && p.HasEnhanced() {
		return p.EnhancedPath
	}
	return p.CroppedPath
}

// DisplayVariant returns which variant DisplayImage resolves to.
func (p Page) DisplayVariant() Variant {
	if p.UseEnhanced && p.HasEnhanced() {
		return VariantEnhanced
	}
	return VariantCropped
}

// DisplayName returns a short human label for the page: the user label when
// set, otherwise the display image's basename.
func (p Page) DisplayName() string {
	if p.Label != "" {
		return p.Label
	}
	return filepath.Base(p.DisplayImage())
}

// Validate checks structural invariants on the page value.
func (p Page) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("page has no ID")
	}
	if p.CroppedPath == "" {
		return fmt.Errorf("page %s has no cropped image", p.ID)
	}
	switch p.Rotation {
	case Rotate0, Rotate90, Rotate180, Rotate270:
	default:
		return fmt.Errorf("page %s has invalid rotation %d", p.ID, p.Rotation)
	}
	return nil
}
