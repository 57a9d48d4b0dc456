package glossary

import (
	"testing"

	"github.com/npillmayer/schuko/testconfig"
	"github.com/stretchr/testify/assert"

	"github.com/zenpl/GPTrans/core/model"
)

func TestApplyCaseSensitive(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	g := model.Glossary{
		{Source: "Schmidt", Target: "史密特", CaseSensitive: true},
	}
	got := Apply("Herr Schmidt kommt", g)
	assert.Equal(t, "Herr 史密特 kommt", got)
	// lower-case occurrence is left untouched under case-sensitive matching
	got2 := Apply("herr schmidt kommt", g)
	assert.Equal(t, "herr schmidt kommt", got2)
}

func TestApplyCaseInsensitive(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	g := model.Glossary{
		{Source: "Schmidt", Target: "史密特", CaseSensitive: false},
	}
	got := Apply("herr SCHMIDT kommt", g)
	assert.Equal(t, "herr 史密特 kommt", got)
}

func TestApplyEarlierTermsWin(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	g := model.Glossary{
		{Source: "Berlin", Target: "柏林一号", CaseSensitive: true},
		{Source: "Berlin", Target: "WRONG", CaseSensitive: true},
	}
	got := Apply("Berlin ist groß", g)
	assert.Equal(t, "柏林一号 ist groß", got)
}

func TestApplyLaterTermsSeeSubstitutedText(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	// later-listed terms scan the text as left by earlier ones, per the
	// applier's sequential-priority contract
	g := model.Glossary{
		{Source: "cat", Target: "catfish", CaseSensitive: true},
		{Source: "fish", Target: "NOPE", CaseSensitive: true},
	}
	got := Apply("cat", g)
	assert.Equal(t, "catNOPE", got)
}

func TestApplySingleTermNotReappliedToOwnOutput(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	// a single term's own substitution is not fed back through itself
	g := model.Glossary{
		{Source: "a", Target: "aa", CaseSensitive: true},
	}
	got := Apply("a", g)
	assert.Equal(t, "aa", got)
}
