package markup

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/testconfig"
	"github.com/stretchr/testify/assert"
)

func TestStripRestoreRoundTrip(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	input := "Die {FN:1} moderne <i>Typografie</i> ist wichtig"
	stripped, shield := Strip(input)
	assert.NotContains(t, stripped, "{FN:1}")
	assert.NotContains(t, stripped, "<i>")

	restored := shield.Restore(stripped)
	assert.Equal(t, input, restored)
}

func TestStripRestoreSurvivesBackendErasure(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	input := "Die {FN:1} moderne <i>Typografie</i> ist wichtig"
	stripped, shield := Strip(input)

	// simulate a backend that erases every Latin word it cannot parse as
	// a placeholder, but preserves the synthetic tokens verbatim
	var kept []string
	for _, word := range strings.Fields(stripped) {
		if strings.HasPrefix(word, "__PLACEHOLDER_") {
			kept = append(kept, word)
		}
	}
	translated := strings.Join(kept, " ")

	restored := shield.Restore(translated)
	assert.Equal(t, strings.Count(restored, "{FN:1}"), 1)
	assert.Contains(t, restored, "<i>Typografie</i>")
}

func TestStripNoMarkup(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	input := "plain text only"
	stripped, shield := Strip(input)
	assert.Equal(t, input, stripped)
	assert.Equal(t, input, shield.Restore(stripped))
}

func TestStripMultiplePlaceholders(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	input := "{A} text {B} more {C}"
	stripped, shield := Strip(input)
	assert.Equal(t, "__PLACEHOLDER_0__ text __PLACEHOLDER_1__ more __PLACEHOLDER_2__", stripped)
	assert.Equal(t, input, shield.Restore(stripped))
}
