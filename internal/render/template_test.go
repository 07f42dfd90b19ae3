package render

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/qiuyun/cipai-meter/internal/cipai"
	"github.com/qiuyun/cipai-meter/internal/tone"
)

func intPtr(n int) *int       { return &n }
func strPtr(s string) *string { return &s }

func sampleTemplate() *cipai.Template {
	return &cipai.Template{
		Names:       []string{"如梦令", "忆仙姿"},
		Description: strPtr("单调，三十三字"),
		Meter: []cipai.Line{
			{
				{Type: tone.TypeZe, RhymeGroup: intPtr(0)},
				{Type: tone.TypePing},
			},
			{},
		},
	}
}

func TestDisplayTemplatePlainIncludesNamesAndDescription(t *testing.T) {
	out := DisplayTemplate(sampleTemplate(), false)
	assert.Contains(t, out, "如梦令 / 忆仙姿")
	assert.Contains(t, out, "单调，三十三字")
	assert.Contains(t, out, "仄（韵0）")
	assert.Contains(t, out, "平")
}

func TestDisplayTemplateSkipsEmptyStructuralLines(t *testing.T) {
	out := DisplayTemplate(sampleTemplate(), false)
	assert.NotContains(t, out, "\n\n")
}

func TestDisplayTemplateWithVariant(t *testing.T) {
	tpl := sampleTemplate()
	tpl.Variant = strPtr("别体")
	out := DisplayTemplate(tpl, false)
	assert.Contains(t, out, "（别体）")
}
