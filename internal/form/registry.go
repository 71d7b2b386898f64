package form

// Key names a form field. Keys match the YAML/JSON field names.
type Key string

const (
	KeySheetColor   Key = "sheetColor"
	KeyHeader       Key = "header"
	KeyTitleLine1   Key = "titleLine1"
	KeyTitleLine2   Key = "titleLine2"
	KeyTitleLine3   Key = "titleLine3"
	KeyBullet1Line1 Key = "bullet1Line1"
	KeyBullet1Line2 Key = "bullet1Line2"
	KeyBullet1Line3 Key = "bullet1Line3"
	KeyBullet2Line1 Key = "bullet2Line1"
	KeyBullet2Line2 Key = "bullet2Line2"
	KeyBullet2Line3 Key = "bullet2Line3"
	KeyBullet3Line1 Key = "bullet3Line1"
	KeyBullet3Line2 Key = "bullet3Line2"
	KeyBullet3Line3 Key = "bullet3Line3"
	KeyBullet4Line1 Key = "bullet4Line1"
	KeyBullet4Line2 Key = "bullet4Line2"
	KeyBullet4Line3 Key = "bullet4Line3"
	KeyFooter       Key = "footer"
	KeyTexture      Key = "texture"
	KeyOtherDetails Key = "otherDetails"
)

// Section is one of the eight labeled groups of the form.
type Section struct {
	Number int
	Title  string
}

// Spec describes how a field is presented.
type Spec struct {
	Key     Key
	Section int
	Group   string // sub-heading inside a section (body bullets)
	Label   string
	// Visual fields are ignored when a template image is set.
	Visual bool
}

// Sections lists the form sections in display order. Section 8 holds the
// template picker and has no text fields.
func Sections() []Section {
	return []Section{
		{1, "Color de la Lámina"},
		{2, "Encabezado de la Lámina"},
		{3, "Título de la Lámina"},
		{4, "Cuerpo de la Lámina"},
		{5, "Pie de la Lámina"},
		{6, "Textura y Estilo de la Lámina"},
		{7, "Otros Detalles de Diseño"},
		{8, "Subir Plantilla de Lámina (Opcional)"},
	}
}

// Specs lists every field in display order.
var Specs = []Spec{
	{Key: KeySheetColor, Section: 1, Label: "Color de fondo y estilo general", Visual: true},
	{Key: KeyHeader, Section: 2, Label: "Texto del encabezado"},
	{Key: KeyTitleLine1, Section: 3, Label: "Primera Línea"},
	{Key: KeyTitleLine2, Section: 3, Label: "Segunda Línea"},
	{Key: KeyTitleLine3, Section: 3, Label: "Tercera Línea"},
	{Key: KeyBullet1Line1, Section: 4, Group: "Viñeta Número Uno", Label: "Primera Línea"},
	{Key: KeyBullet1Line2, Section: 4, Group: "Viñeta Número Uno", Label: "Segunda Línea"},
	{Key: KeyBullet1Line3, Section: 4, Group: "Viñeta Número Uno", Label: "Tercera Línea"},
	{Key: KeyBullet2Line1, Section: 4, Group: "Viñeta Número Dos", Label: "Primera Línea"},
	{Key: KeyBullet2Line2, Section: 4, Group: "Viñeta Número Dos", Label: "Segunda Línea"},
	{Key: KeyBullet2Line3, Section: 4, Group: "Viñeta Número Dos", Label: "Tercera Línea"},
	{Key: KeyBullet3Line1, Section: 4, Group: "Viñeta Número Tres", Label: "Primera Línea"},
	{Key: KeyBullet3Line2, Section: 4, Group: "Viñeta Número Tres", Label: "Segunda Línea"},
	{Key: KeyBullet3Line3, Section: 4, Group: "Viñeta Número Tres", Label: "Tercera Línea"},
	{Key: KeyBullet4Line1, Section: 4, Group: "Viñeta Número Cuatro", Label: "Primera Línea"},
	{Key: KeyBullet4Line2, Section: 4, Group: "Viñeta Número Cuatro", Label: "Segunda Línea"},
	{Key: KeyBullet4Line3, Section: 4, Group: "Viñeta Número Cuatro", Label: "Tercera Línea"},
	{Key: KeyFooter, Section: 5, Label: "Texto del pie"},
	{Key: KeyTexture, Section: 6, Label: "Textura, estilo de fuente, acentos", Visual: true},
	{Key: KeyOtherDetails, Section: 7, Label: "Iconos, elementos gráficos, etc.", Visual: true},
}

// Lookup returns the spec for key.
func Lookup(key Key) (Spec, bool) {
	for _, s := range Specs {
		if s.Key == key {
			return s, true
		}
	}
	return Spec{}, false
}
