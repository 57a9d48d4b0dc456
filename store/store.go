/*
Package store defines the data-store contract the engine reads pages,
blocks and glossary terms through, and writes translation/status updates
back to, plus an in-memory reference implementation.

A real backing store (a relational database, say) is outside this
module's scope; callers wire their own Store implementation against
whatever persistence layer they run.
*/
package store

import (
	"context"
	"sync"

	"github.com/zenpl/GPTrans/core"
	"github.com/zenpl/GPTrans/core/model"
)

// Store is the data-store contract consumed by the engine: read-only
// access to pages/blocks/glossary, and a per-block atomic write-back of
// translated text and status.
type Store interface {
	ReadPage(ctx context.Context, pageID string) (model.Page, error)
	ReadGlossary(ctx context.Context) (model.Glossary, error)
	WriteTranslation(ctx context.Context, pageID, blockID, translated string) error
	WriteStatus(ctx context.Context, pageID, blockID string, status model.Status) error
}

// MemStore is an in-memory Store, useful for tests and for running the
// engine without a real backing database.
type MemStore struct {
	mu       sync.Mutex
	pages    map[string]model.Page
	glossary model.Glossary
}

// NewMemStore builds an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{pages: make(map[string]model.Page)}
}

// PutPage seeds the store with a page, as ingestion would after OCR.
func (m *MemStore) PutPage(page model.Page) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pages[page.ID] = page
}

// PutGlossary seeds the store's glossary.
func (m *MemStore) PutGlossary(g model.Glossary) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.glossary = g
}

// ReadPage implements Store.
func (m *MemStore) ReadPage(ctx context.Context, pageID string) (model.Page, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	page, ok := m.pages[pageID]
	if !ok {
		return model.Page{}, core.Error(core.EMISSING, "page %q not found", pageID)
	}
	return page, nil
}

// ReadGlossary implements Store.
func (m *MemStore) ReadGlossary(ctx context.Context) (model.Glossary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.glossary, nil
}

// WriteTranslation implements Store, updating the named block atomically.
func (m *MemStore) WriteTranslation(ctx context.Context, pageID, blockID, translated string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	page, ok := m.pages[pageID]
	if !ok {
		return core.Error(core.EMISSING, "page %q not found", pageID)
	}
	for i := range page.Blocks {
		if page.Blocks[i].ID == blockID {
			page.Blocks[i].TextTranslated = translated
			page.Blocks[i].HasTranslation = true
			m.pages[pageID] = page
			return nil
		}
	}
	return core.Error(core.EMISSING, "block %q not found on page %q", blockID, pageID)
}

// WriteStatus implements Store, updating the named block's status atomically.
func (m *MemStore) WriteStatus(ctx context.Context, pageID, blockID string, status model.Status) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	page, ok := m.pages[pageID]
	if !ok {
		return core.Error(core.EMISSING, "page %q not found", pageID)
	}
	for i := range page.Blocks {
		if page.Blocks[i].ID == blockID {
			page.Blocks[i].Status = status
			m.pages[pageID] = page
			return nil
		}
	}
	return core.Error(core.EMISSING, "block %q not found on page %q", blockID, pageID)
}

var _ Store = (*MemStore)(nil)
