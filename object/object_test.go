package object

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindPixmap, "Pixmap"},
		{KindMipmap, "Mipmap"},
		{Kind(9), "Unknown(9)"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestIDsAreUniqueAndNeverReused(t *testing.T) {
	p := NewPool()
	seen := make(map[ID]bool)
	for range 10 {
		tex := p.NewTexture(KindPixmap, nil)
		if tex.ID() == 0 {
			t.Fatal("ID() = 0 for live texture")
		}
		if seen[tex.ID()] {
			t.Fatalf("ID %d reused", tex.ID())
		}
		seen[tex.ID()] = true
		tex.Release()
	}
	if p.Len() != 0 {
		t.Errorf("Len() = %d after releasing everything, want 0", p.Len())
	}
}

func TestIDsAreUniqueAcrossPools(t *testing.T) {
	seen := make(map[ID]bool)
	for range 3 {
		p := NewPool()
		s := p.NewStorage(1, 1)
		tex := p.NewTexture(KindPixmap, s)
		for _, id := range []ID{s.ID(), tex.ID()} {
			if seen[id] {
				t.Fatalf("ID %d issued by two pools", id)
			}
			seen[id] = true
		}
	}
}

func TestEditIndexStartsAtOneAndGrows(t *testing.T) {
	p := NewPool()
	tex := p.NewTexture(KindPixmap, nil)
	if got := tex.EditIndex(); got != 1 {
		t.Errorf("EditIndex() = %d, want 1", got)
	}
	if got := tex.Edited(); got != 2 {
		t.Errorf("Edited() = %d, want 2", got)
	}
	if got := tex.EditIndex(); got != 2 {
		t.Errorf("EditIndex() = %d, want 2", got)
	}
}

func TestSetStorageBumpsTextureEditIndex(t *testing.T) {
	p := NewPool()
	a := p.NewStorage(4, 4)
	b := p.NewStorage(8, 8)
	tex := p.NewTexture(KindPixmap, a)

	before := tex.EditIndex()
	if err := tex.SetStorage(b); err != nil {
		t.Fatalf("SetStorage() = %v", err)
	}
	if tex.EditIndex() == before {
		t.Error("SetStorage did not bump the texture edit index")
	}
	if tex.Storage() != b {
		t.Error("Storage() did not return the new storage")
	}
	if got := tex.StorageEditIndex(); got != b.EditIndex() {
		t.Errorf("StorageEditIndex() = %d, want %d", got, b.EditIndex())
	}
}

func TestTextureWithoutStorage(t *testing.T) {
	p := NewPool()
	tex := p.NewTexture(KindMipmap, nil)
	if tex.Storage() != nil {
		t.Error("Storage() != nil for texture created without storage")
	}
	if got := tex.StorageEditIndex(); got != 0 {
		t.Errorf("StorageEditIndex() = %d, want 0", got)
	}
}

func TestTextureHoldsStorageReference(t *testing.T) {
	p := NewPool()
	s := p.NewStorage(2, 2)
	tex := p.NewTexture(KindPixmap, s)

	s.Release() // drop the creator's reference
	if s.Destroyed() {
		t.Fatal("storage destroyed while texture still references it")
	}

	tex.Release()
	if !s.Destroyed() {
		t.Error("storage survived the last texture release")
	}
	if p.Len() != 0 {
		t.Errorf("Len() = %d, want 0", p.Len())
	}
}

func TestSetStorageReleasesOldStorage(t *testing.T) {
	p := NewPool()
	old := p.NewStorage(2, 2)
	tex := p.NewTexture(KindPixmap, old)
	old.Release()

	if err := tex.SetStorage(nil); err != nil {
		t.Fatalf("SetStorage(nil) = %v", err)
	}
	if !old.Destroyed() {
		t.Error("old storage not destroyed after SetStorage dropped the last reference")
	}
}

func TestRetainRelease(t *testing.T) {
	p := NewPool()
	tex := p.NewTexture(KindPixmap, nil)
	tex.Retain()

	tex.Release()
	if tex.Destroyed() {
		t.Fatal("texture destroyed with one reference left")
	}
	tex.Release()
	if !tex.Destroyed() {
		t.Fatal("texture alive after last release")
	}

	// Extra releases and retains are tolerated.
	tex.Release()
	tex.Retain()
	if !tex.Destroyed() {
		t.Error("retain resurrected a destroyed texture")
	}
}

func TestMutatingDestroyedObjects(t *testing.T) {
	p := NewPool()
	tex := p.NewTexture(KindPixmap, nil)
	s := p.NewStorage(1, 1)
	tex.Release()
	s.Release()

	if err := tex.SetStorage(nil); !errors.Is(err, ErrDestroyed) {
		t.Errorf("SetStorage() on destroyed texture = %v, want ErrDestroyed", err)
	}
	if err := s.Replace(image.NewRGBA(image.Rect(0, 0, 1, 1))); !errors.Is(err, ErrDestroyed) {
		t.Errorf("Replace() on destroyed storage = %v, want ErrDestroyed", err)
	}
	if got := tex.Edited(); got != 0 {
		t.Errorf("Edited() on destroyed texture = %d, want 0", got)
	}
}

func TestWeakRef(t *testing.T) {
	p := NewPool()
	tex := p.NewTexture(KindPixmap, nil)
	w := tex.Weak()

	if !w.Valid() {
		t.Fatal("Valid() = false for live texture")
	}
	if got, ok := w.Texture(); !ok || got != tex {
		t.Errorf("Texture() = %v, %v; want %v, true", got, ok, tex)
	}

	tex.Release()
	if w.Valid() {
		t.Error("Valid() = true after texture destroyed")
	}
	if _, ok := w.Texture(); ok {
		t.Error("Texture() ok after texture destroyed")
	}
	if w.ID() != tex.ID() {
		t.Errorf("ID() = %d, want %d", w.ID(), tex.ID())
	}
}

func TestWeakRefSurvivesSlotReuse(t *testing.T) {
	p := NewPool()
	a := p.NewTexture(KindPixmap, nil)
	w := a.Weak()
	a.Release()

	// The freed slot is recycled for b; the old weak reference must not see it.
	b := p.NewTexture(KindPixmap, nil)
	if w.Valid() {
		t.Error("weak reference to destroyed texture became valid after slot reuse")
	}
	if got, ok := w.Texture(); ok {
		t.Errorf("Texture() = %v, want nothing", got)
	}
	if !b.Weak().Valid() {
		t.Error("new texture weak reference invalid")
	}
}

func TestZeroWeakRef(t *testing.T) {
	var w WeakRef
	if w.Valid() {
		t.Error("zero WeakRef is valid")
	}
	if _, ok := w.Texture(); ok {
		t.Error("zero WeakRef resolved to a texture")
	}
}

func TestStorageReplace(t *testing.T) {
	p := NewPool()
	s := p.NewStorage(2, 2)
	before := s.EditIndex()

	src := image.NewUniform(color.RGBA{R: 255, A: 255})
	img := image.NewRGBA(image.Rect(10, 10, 14, 13))
	for y := 10; y < 13; y++ {
		for x := 10; x < 14; x++ {
			img.Set(x, y, src.C)
		}
	}

	if err := s.Replace(img); err != nil {
		t.Fatalf("Replace() = %v", err)
	}
	if s.EditIndex() == before {
		t.Error("Replace did not bump the storage edit index")
	}
	if got := s.Bounds(); got != image.Rect(0, 0, 4, 3) {
		t.Errorf("Bounds() = %v, want (0,0)-(4,3)", got)
	}
	if got := s.Image().RGBAAt(3, 2); got != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("pixel (3,2) = %v, want opaque red", got)
	}
}

func TestStorageReplaceErrors(t *testing.T) {
	p := NewPool()
	s := p.NewStorage(1, 1)
	if err := s.Replace(nil); !errors.Is(err, ErrNilImage) {
		t.Errorf("Replace(nil) = %v, want ErrNilImage", err)
	}
	if err := s.Replace(image.NewRGBA(image.Rectangle{})); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("Replace(empty) = %v, want ErrInvalidDimensions", err)
	}
}

func TestNewStorageFromImage(t *testing.T) {
	p := NewPool()
	gray := image.NewGray(image.Rect(0, 0, 3, 3))
	gray.SetGray(1, 1, color.Gray{Y: 200})

	s, err := p.NewStorageFromImage(gray)
	if err != nil {
		t.Fatalf("NewStorageFromImage() = %v", err)
	}
	if got := s.Image().RGBAAt(1, 1); got != (color.RGBA{R: 200, G: 200, B: 200, A: 255}) {
		t.Errorf("pixel (1,1) = %v, want gray 200", got)
	}
	if _, err := p.NewStorageFromImage(nil); !errors.Is(err, ErrNilImage) {
		t.Errorf("NewStorageFromImage(nil) = %v, want ErrNilImage", err)
	}
}

func TestStoragePixels(t *testing.T) {
	p := NewPool()
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	src.SetRGBA(2, 3, color.RGBA{R: 1, G: 2, B: 3, A: 4})
	sub := src.SubImage(image.Rect(1, 2, 4, 4))

	s, err := p.NewStorageFromImage(sub)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Release()

	w, h, rgba := s.Pixels()
	if w != 3 || h != 2 || len(rgba) != 3*2*4 {
		t.Fatalf("Pixels() = %dx%d, %d bytes; want 3x2, 24 bytes", w, h, len(rgba))
	}
	// (2,3) in src is (1,1) in the storage.
	if got := rgba[4*(1*3+1) : 4*(1*3+1)+4]; got[0] != 1 || got[3] != 4 {
		t.Errorf("pixel (1,1) = %v, want [1 2 3 4]", got)
	}

	rgba[0] = 99
	if s.Image().Pix[0] == 99 {
		t.Error("Pixels() aliases the storage image")
	}
}
