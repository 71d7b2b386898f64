// Package prompt turns form fields into the natural-language instructions
// sent to the image and text models. Every builder is pure: the same fields
// always produce the same string, and empty fields keep their labeled slot.
package prompt

import (
	"fmt"
	"strings"

	"lamina/internal/form"
)

// Canvas geometry. The generation prompt frames the post by aspect ratio
// while the template prompt names a fixed pixel safe area; the two are kept
// as they are until the intended output geometry is confirmed.
const (
	AspectRatio    = "3:4"
	CanvasWidth    = 1080
	CanvasHeight   = 1440
	SafeAreaWidth  = 1030
	SafeAreaHeight = 1300
)

// Generation builds the prompt for creating a graphic from scratch.
func Generation(f form.Fields) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Create a visually appealing graphic for an Instagram post, with dimensions of %dx%d pixels (a %s aspect ratio).\n\n",
		CanvasWidth, CanvasHeight, AspectRatio)

	b.WriteString("**Visual Style:**\n")
	fmt.Fprintf(&b, "- Background Color: %s\n", orDefault(f.SheetColor, "light gray"))
	fmt.Fprintf(&b, "- Texture/Style: %s\n", orDefault(f.Texture, "minimalist and clean"))
	fmt.Fprintf(&b, "- Other Design Details: %s\n\n", orDefault(f.OtherDetails, "none"))

	b.WriteString("**Text Content and Layout:**\n")
	b.WriteString("The entire text block must be contained within a safe area, ensuring clear margins from all edges. All text must be strictly left-aligned. Use a clean, modern, and highly readable font.\n\n")

	b.WriteString("**Header (Top Section, smaller text):**\n")
	fmt.Fprintf(&b, "\"%s\"\n\n", f.Header)

	b.WriteString("**Title (Main Focus, prominent text):**\n")
	writeTitle(&b, f)
	b.WriteString("\n")

	b.WriteString("**Main Body (Middle Section):**\n")
	b.WriteString("Organize the following points clearly, for example with bullet points or subtle separators.\n")
	writeBody(&b, f)
	b.WriteString("\n")

	b.WriteString("**Footer (Bottom Section):**\n")
	fmt.Fprintf(&b, "- \"%s\"\n\n", f.Footer)

	b.WriteString("Generate the image based on these detailed instructions. Do not add any text or elements not specified here.")
	return b.String()
}

// TemplateEdit builds the prompt that overlays the form text onto a
// user-supplied template image. Visual-style fields are not used.
func TemplateEdit(f form.Fields) string {
	var b strings.Builder
	b.WriteString("Take the provided image template and add the following text content onto it.\n")
	b.WriteString("The text must be perfectly integrated, respecting the original design, style, and color palette.\n")
	fmt.Fprintf(&b, "All text must be strictly left-aligned and placed within a safe area of %dx%d pixels to ensure margins.\n",
		SafeAreaWidth, SafeAreaHeight)
	b.WriteString("Use a font that complements the template's existing typography.\n\n")

	b.WriteString("**Header:**\n")
	fmt.Fprintf(&b, "- \"%s\"\n\n", f.Header)

	b.WriteString("**Title:**\n")
	writeTitle(&b, f)
	b.WriteString("\n")

	b.WriteString("**Body:**\n")
	writeBody(&b, f)
	b.WriteString("\n")

	b.WriteString("**Footer:**\n")
	fmt.Fprintf(&b, "- \"%s\"", f.Footer)
	return b.String()
}

// ImprovementDirective builds the meta-prompt asking a text model for one
// creative directive. The form text is context for tone, not for rendering.
func ImprovementDirective(f form.Fields) string {
	var b strings.Builder
	b.WriteString("You are a world-class graphic designer and art director. Your task is to generate a clear, direct, and impactful instruction for an image editing AI (Nano Banana). This instruction must creatively enhance an existing Instagram graphic.\n\n")

	b.WriteString("Instead of subtle tweaks, propose a noticeable visual upgrade. Focus on one or two of these areas:\n")
	b.WriteString("- **Typography:** Suggest a more dynamic font pairing or a different weight/style for the title to make it pop.\n")
	b.WriteString("- **Color Palette:** Propose a complementary accent color or a slight shift in the background hue to improve mood and readability.\n")
	b.WriteString("- **Layout:** Suggest a minor adjustment in spacing or alignment to create a better visual flow.\n")
	b.WriteString("- **Graphic Elements:** Suggest adding a subtle, non-intrusive graphic element (like a geometric shape, a gradient overlay, or a border) that complements the theme.\n\n")

	b.WriteString("Your output must be ONLY the instruction/prompt itself. Be specific.\n\n")

	b.WriteString("Here is the text content of the graphic:\n")
	fmt.Fprintf(&b, "- Header: \"%s\"\n", f.Header)
	fmt.Fprintf(&b, "- Title: \"%s\", \"%s\", \"%s\"\n", f.TitleLine1, f.TitleLine2, f.TitleLine3)
	for n := 1; n <= 4; n++ {
		fmt.Fprintf(&b, "- Body Point %d: \"%s\"\n", n, point(f, n))
	}
	fmt.Fprintf(&b, "- Footer: \"%s\"\n\n", f.Footer)

	b.WriteString(`Example of a strong instruction: "Change the title font to a bold, elegant serif to create more contrast. Introduce a soft gradient to the background using a slightly darker shade of the current color. Add thin, clean lines to separate the bullet points for better organization."`)
	b.WriteString("\n\nGenerate the enhancement prompt now.")
	return b.String()
}

// EditInstruction wraps a directive for the image-editing model. The
// model is told to keep every piece of original text; nothing checks it did.
func EditInstruction(directive string) string {
	var b strings.Builder
	b.WriteString("You are 'Nano Banana', an advanced image editing AI. You have received an image and a creative directive from an art director. Your mission is to apply this directive to the image.\n\n")
	b.WriteString("**Art Director's Directive:**\n")
	fmt.Fprintf(&b, "\"%s\"\n\n", directive)
	b.WriteString("Execute this directive precisely. You MUST preserve all original text content and its wording. The goal is to visually transform and enhance the existing image according to the directive, not to create a new one from scratch.")
	return b.String()
}

func writeTitle(b *strings.Builder, f form.Fields) {
	fmt.Fprintf(b, "- Line 1: \"%s\"\n", f.TitleLine1)
	fmt.Fprintf(b, "- Line 2: \"%s\"\n", f.TitleLine2)
	fmt.Fprintf(b, "- Line 3: \"%s\"\n", f.TitleLine3)
}

func writeBody(b *strings.Builder, f form.Fields) {
	for n := 1; n <= 4; n++ {
		fmt.Fprintf(b, "- Point %d: \"%s\"\n", n, point(f, n))
	}
}

// point joins the three lines of a bullet with single spaces, empty lines
// included, so each point always has the same shape.
func point(f form.Fields, n int) string {
	lines := f.Bullet(n)
	return lines[0] + " " + lines[1] + " " + lines[2]
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
