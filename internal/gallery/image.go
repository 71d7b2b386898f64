// Package gallery persists saved láminas. The whole collection lives as one
// JSON array under a fixed key and is rewritten on every mutation.
package gallery

import (
	"encoding/base64"
	"fmt"
	"sort"
	"time"
)

// Kind is the pipeline stage that produced an image.
type Kind string

const (
	KindNormal   Kind = "normal"
	KindImproved Kind = "improved"
)

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	return k == KindNormal || k == KindImproved
}

// SavedImage is a persisted lámina.
type SavedImage struct {
	ID          string `json:"id"`
	Type        Kind   `json:"type"`
	ImageBase64 string `json:"imageBase64"`
	SavedAt     int64  `json:"savedAt"` // unix milliseconds
}

// Bytes decodes the stored image.
func (s SavedImage) Bytes() ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(s.ImageBase64)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", s.ID, err)
	}
	return data, nil
}

// Time returns SavedAt as a time.Time.
func (s SavedImage) Time() time.Time {
	return time.UnixMilli(s.SavedAt)
}

// Collection is the ordered list of saved images, newest save first.
type Collection []SavedImage

// NewImage builds a record for image with an id unique within c.
func (c Collection) NewImage(kind Kind, image []byte, now time.Time) SavedImage {
	return SavedImage{
		ID:          c.NewID(now),
		Type:        kind,
		ImageBase64: base64.StdEncoding.EncodeToString(image),
		SavedAt:     now.UnixMilli(),
	}
}

// NewID returns lamina-<unix ms>, suffixed with -<n> when that id is taken.
func (c Collection) NewID(now time.Time) string {
	base := fmt.Sprintf("lamina-%d", now.UnixMilli())
	id := base
	for n := 2; c.has(id); n++ {
		id = fmt.Sprintf("%s-%d", base, n)
	}
	return id
}

func (c Collection) has(id string) bool {
	_, ok := c.Find(id)
	return ok
}

// Prepend returns a new collection with img in front.
func (c Collection) Prepend(img SavedImage) Collection {
	out := make(Collection, 0, len(c)+1)
	out = append(out, img)
	return append(out, c...)
}

// Remove returns a new collection without id and whether it was present.
// The order of the remaining records is unchanged.
func (c Collection) Remove(id string) (Collection, bool) {
	out := make(Collection, 0, len(c))
	found := false
	for _, img := range c {
		if img.ID == id {
			found = true
			continue
		}
		out = append(out, img)
	}
	return out, found
}

// Find looks up a record by id.
func (c Collection) Find(id string) (SavedImage, bool) {
	for _, img := range c {
		if img.ID == id {
			return img, true
		}
	}
	return SavedImage{}, false
}

// Partition splits c by type, each side sorted by SavedAt descending.
func (c Collection) Partition() (normal, improved Collection) {
	for _, img := range c {
		switch img.Type {
		case KindNormal:
			normal = append(normal, img)
		case KindImproved:
			improved = append(improved, img)
		}
	}
	byNewest := func(s Collection) {
		sort.SliceStable(s, func(i, j int) bool { return s[i].SavedAt > s[j].SavedAt })
	}
	byNewest(normal)
	byNewest(improved)
	return normal, improved
}
