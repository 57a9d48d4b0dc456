/*
Package translate implements the paragraph translator: it composes the
markup shield, the glossary applier, an opaque translation backend, and
a length policy into the single `translate_paragraph` operation the rest
of the engine calls.
*/
package translate

import (
	"context"
	"strings"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"

	"github.com/zenpl/GPTrans/core/model"
	"github.com/zenpl/GPTrans/engine/markup"
)

// T traces to the engine tracer.
func T() tracing.Trace {
	return gtrace.EngineTracer
}

// Backend is the external translation collaborator. Implementations must
// produce a non-empty string for non-empty input, apply glossary
// substitutions, and honor lengthPolicy.
type Backend interface {
	Translate(ctx context.Context, text, sourceLang, targetLang string, glossary model.Glossary, lengthPolicy model.LengthPolicy) (string, error)
}

// TranslateParagraph runs the shield → backend → restore pipeline. An
// empty (or whitespace-only) input is returned unchanged without
// consulting the backend.
func TranslateParagraph(ctx context.Context, backend Backend, text, sourceLang, targetLang string, glossary model.Glossary, lengthPolicy model.LengthPolicy) (string, error) {
	if strings.TrimSpace(text) == "" {
		return text, nil
	}
	stripped, shield := markup.Strip(text)
	translated, err := backend.Translate(ctx, stripped, sourceLang, targetLang, glossary, lengthPolicy)
	if err != nil {
		return "", err
	}
	return shield.Restore(translated), nil
}

// Shortener adapts TranslateParagraph into the fitloop.Shortener
// signature: a concise re-translation of the same source text.
func Shortener(backend Backend, sourceLang, targetLang string, glossary model.Glossary) func(ctx context.Context, text string) (string, error) {
	return func(ctx context.Context, text string) (string, error) {
		return TranslateParagraph(ctx, backend, text, sourceLang, targetLang, glossary, model.LengthConcise)
	}
}
