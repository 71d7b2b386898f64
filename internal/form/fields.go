// Package form holds the lámina form: the twenty free-text fields a user
// fills in and the optional template image that replaces the visual-style
// fields. Fields carry no validation; every value is an optional string.
package form

// Fields is the flat record behind the generator form.
type Fields struct {
	SheetColor string `yaml:"sheetColor" json:"sheetColor"`
	Header     string `yaml:"header" json:"header"`

	TitleLine1 string `yaml:"titleLine1" json:"titleLine1"`
	TitleLine2 string `yaml:"titleLine2" json:"titleLine2"`
	TitleLine3 string `yaml:"titleLine3" json:"titleLine3"`

	Bullet1Line1 string `yaml:"bullet1Line1" json:"bullet1Line1"`
	Bullet1Line2 string `yaml:"bullet1Line2" json:"bullet1Line2"`
	Bullet1Line3 string `yaml:"bullet1Line3" json:"bullet1Line3"`
	Bullet2Line1 string `yaml:"bullet2Line1" json:"bullet2Line1"`
	Bullet2Line2 string `yaml:"bullet2Line2" json:"bullet2Line2"`
	Bullet2Line3 string `yaml:"bullet2Line3" json:"bullet2Line3"`
	Bullet3Line1 string `yaml:"bullet3Line1" json:"bullet3Line1"`
	Bullet3Line2 string `yaml:"bullet3Line2" json:"bullet3Line2"`
	Bullet3Line3 string `yaml:"bullet3Line3" json:"bullet3Line3"`
	Bullet4Line1 string `yaml:"bullet4Line1" json:"bullet4Line1"`
	Bullet4Line2 string `yaml:"bullet4Line2" json:"bullet4Line2"`
	Bullet4Line3 string `yaml:"bullet4Line3" json:"bullet4Line3"`

	Footer       string `yaml:"footer" json:"footer"`
	Texture      string `yaml:"texture" json:"texture"`
	OtherDetails string `yaml:"otherDetails" json:"otherDetails"`
}

// Defaults returns the values a new session starts with.
func Defaults() Fields {
	return Fields{
		SheetColor:   "White with a subtle grain texture",
		Header:       "UNLOCK YOUR POTENTIAL",
		TitleLine1:   "The Art of Productivity",
		TitleLine2:   "Master Your Day",
		Bullet1Line1: "Morning Routine: Start your day with intention.",
		Bullet1Line2: "Set clear, achievable goals.",
		Bullet2Line1: "Time Blocking: Allocate specific time slots for tasks.",
		Bullet2Line2: "Eliminate distractions.",
		Bullet3Line1: "Deep Work: Focus on one high-impact task at a time.",
		Bullet3Line2: "Take regular breaks to recharge.",
		Footer:       "yourhandle | yourwebsite.com",
		Texture:      "Modern, clean, sans-serif fonts, with gold accents.",
		OtherDetails: "Include minimalist line art icons for each bullet point.",
	}
}

// Bullet returns the three lines of body point n (1-4). Out of range
// points are empty.
func (f Fields) Bullet(n int) [3]string {
	switch n {
	case 1:
		return [3]string{f.Bullet1Line1, f.Bullet1Line2, f.Bullet1Line3}
	case 2:
		return [3]string{f.Bullet2Line1, f.Bullet2Line2, f.Bullet2Line3}
	case 3:
		return [3]string{f.Bullet3Line1, f.Bullet3Line2, f.Bullet3Line3}
	case 4:
		return [3]string{f.Bullet4Line1, f.Bullet4Line2, f.Bullet4Line3}
	}
	return [3]string{}
}

// ClearVisual empties the fields a template image replaces.
func (f *Fields) ClearVisual() {
	f.SheetColor = ""
	f.Texture = ""
	f.OtherDetails = ""
}

// Get returns the value stored under key. Unknown keys read as empty.
func (f *Fields) Get(key Key) string {
	if p := f.ptr(key); p != nil {
		return *p
	}
	return ""
}

// Set stores value under key and reports whether the key exists.
func (f *Fields) Set(key Key, value string) bool {
	p := f.ptr(key)
	if p == nil {
		return false
	}
	*p = value
	return true
}

func (f *Fields) ptr(key Key) *string {
	switch key {
	case KeySheetColor:
		return &f.SheetColor
	case KeyHeader:
		return &f.Header
	case KeyTitleLine1:
		return &f.TitleLine1
	case KeyTitleLine2:
		return &f.TitleLine2
	case KeyTitleLine3:
		return &f.TitleLine3
	case KeyBullet1Line1:
		return &f.Bullet1Line1
	case KeyBullet1Line2:
		return &f.Bullet1Line2
	case KeyBullet1Line3:
		return &f.Bullet1Line3
	case KeyBullet2Line1:
		return &f.Bullet2Line1
	case KeyBullet2Line2:
		return &f.Bullet2Line2
	case KeyBullet2Line3:
		return &f.Bullet2Line3
	case KeyBullet3Line1:
		return &f.Bullet3Line1
	case KeyBullet3Line2:
		return &f.Bullet3Line2
	case KeyBullet3Line3:
		return &f.Bullet3Line3
	case KeyBullet4Line1:
		return &f.Bullet4Line1
	case KeyBullet4Line2:
		return &f.Bullet4Line2
	case KeyBullet4Line3:
		return &f.Bullet4Line3
	case KeyFooter:
		return &f.Footer
	case KeyTexture:
		return &f.Texture
	case KeyOtherDetails:
		return &f.OtherDetails
	}
	return nil
}
