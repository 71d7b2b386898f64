package prompt

import (
	"fmt"
	"strings"
	"testing"

	"lamina/internal/form"

	"github.com/stretchr/testify/assert"
)

// filled returns fields where every value is distinct and recognizable.
func filled() form.Fields {
	var f form.Fields
	for i, s := range form.Specs {
		f.Set(s.Key, fmt.Sprintf("<%s #%d \"quoted\" ñ>", s.Key, i))
	}
	return f
}

func TestGeneration_ContainsEveryField(t *testing.T) {
	f := filled()
	got := Generation(f)
	for _, s := range form.Specs {
		assert.Contains(t, got, f.Get(s.Key), "missing %s", s.Key)
	}
	assert.Contains(t, got, "1080x1440")
	assert.Contains(t, got, "3:4")
}

func TestGeneration_Deterministic(t *testing.T) {
	f := form.Defaults()
	assert.Equal(t, Generation(f), Generation(f))
	assert.Equal(t, TemplateEdit(f), TemplateEdit(f))
	assert.Equal(t, ImprovementDirective(f), ImprovementDirective(f))
}

func TestGeneration_EmptyFieldsKeepSlots(t *testing.T) {
	got := Generation(form.Fields{})

	for _, label := range []string{
		"**Header (Top Section, smaller text):**",
		"- Line 1: \"\"",
		"- Line 3: \"\"",
		"- Point 4: \"  \"",
		"**Footer (Bottom Section):**",
	} {
		assert.Contains(t, got, label)
	}
	assert.Contains(t, got, "- Background Color: light gray")
	assert.Contains(t, got, "- Texture/Style: minimalist and clean")
	assert.Contains(t, got, "- Other Design Details: none")
}

func TestGeneration_BulletLinesJoined(t *testing.T) {
	f := form.Fields{Bullet2Line1: "a", Bullet2Line2: "b", Bullet2Line3: "c"}
	assert.Contains(t, Generation(f), "- Point 2: \"a b c\"")
}

func TestTemplateEdit(t *testing.T) {
	f := filled()
	got := TemplateEdit(f)

	assert.Contains(t, got, "1030x1300 pixels")
	assert.NotContains(t, got, "3:4")
	for _, s := range form.Specs {
		if s.Visual {
			assert.NotContains(t, got, f.Get(s.Key), "visual field %s leaked", s.Key)
			continue
		}
		assert.Contains(t, got, f.Get(s.Key), "missing %s", s.Key)
	}
}

func TestImprovementDirective(t *testing.T) {
	f := form.Fields{Header: "X", TitleLine1: "Y", Footer: "Z"}
	got := ImprovementDirective(f)

	assert.Contains(t, got, "- Header: \"X\"")
	assert.Contains(t, got, "- Title: \"Y\", \"\", \"\"")
	assert.Contains(t, got, "- Footer: \"Z\"")
	assert.True(t, strings.HasSuffix(got, "Generate the enhancement prompt now."))
}

func TestEditInstruction(t *testing.T) {
	got := EditInstruction("Make the title bold.")
	assert.Contains(t, got, "\"Make the title bold.\"")
	assert.Contains(t, got, "You MUST preserve all original text content")
}
