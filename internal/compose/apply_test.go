package compose

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"pagecomposer/internal/models"
)

// recordingStore keeps every block in call order and can fail on a given
// call.
type recordingStore struct {
	blocks  []models.ContentBlock
	failAt  int
	cleared []string
}

func newRecordingStore() *recordingStore { return &recordingStore{failAt: -1} }

func (s *recordingStore) CreateBlock(ctx context.Context, b models.ContentBlock) (models.ContentBlock, error) {
	if len(s.blocks) == s.failAt {
		return models.ContentBlock{}, errors.New("status 500")
	}
	b.ID = fmt.Sprintf("blk-%d", len(s.blocks)+1)
	s.blocks = append(s.blocks, b)
	return b, nil
}

func (s *recordingStore) DeleteBlocksByPage(ctx context.Context, pageID string) error {
	s.cleared = append(s.cleared, pageID)
	return nil
}

// createOnlyStore has no way to clear a page.
type createOnlyStore struct{ inner *recordingStore }

func (s createOnlyStore) CreateBlock(ctx context.Context, b models.ContentBlock) (models.ContentBlock, error) {
	return s.inner.CreateBlock(ctx, b)
}

func TestApplier_OrderFollowsBundle(t *testing.T) {
	store := newRecordingStore()
	a := NewApplier(store)

	tmpl, _ := NewCatalog(BuiltinTemplates(), nil).Get("black-friday")
	res, err := a.Apply(context.Background(), tmpl, "page-1")
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !res.Complete() || res.Applied != 4 || res.FailedAt != -1 {
		t.Errorf("unexpected result: %+v", res)
	}
	if len(store.blocks) != len(tmpl.Components) {
		t.Fatalf("store got %d blocks, want %d", len(store.blocks), len(tmpl.Components))
	}

	wantTypes := []string{models.BlockTypeHero, models.BlockTypeProduct, models.BlockTypeText, models.BlockTypeBanner}
	for i, b := range store.blocks {
		if b.Order != i {
			t.Errorf("block %d order = %d", i, b.Order)
		}
		if b.Type != wantTypes[i] {
			t.Errorf("block %d type = %q, want %q", i, b.Type, wantTypes[i])
		}
		if b.PageID != "page-1" || !b.Published {
			t.Errorf("block %d: page %q published %v", i, b.PageID, b.Published)
		}
		if res.Blocks[i].ID != b.ID {
			t.Errorf("result block %d id = %q, want %q", i, res.Blocks[i].ID, b.ID)
		}
	}
	if store.blocks[0].Settings["background"] != "#000000" {
		t.Errorf("settings not copied: %v", store.blocks[0].Settings)
	}
}

func TestApplier_EmptyPageID(t *testing.T) {
	store := newRecordingStore()
	a := NewApplier(store)
	comps := []models.Component{{ID: "a", Fields: models.Text{}}}

	for _, id := range []string{"", "  "} {
		if _, err := a.ApplyComponents(context.Background(), comps, id); !errors.Is(err, ErrPageRequired) {
			t.Errorf("page %q: expected ErrPageRequired, got %v", id, err)
		}
	}
	if len(store.blocks) != 0 {
		t.Errorf("store called %d times", len(store.blocks))
	}
}

func TestApplier_PartialFailure(t *testing.T) {
	store := newRecordingStore()
	store.failAt = 2
	a := NewApplier(store)

	tmpl, _ := NewCatalog(BuiltinTemplates(), nil).Get("black-friday")
	res, err := a.Apply(context.Background(), tmpl, "page-1")

	var partial *PartialApplyError
	if !errors.As(err, &partial) {
		t.Fatalf("expected *PartialApplyError, got %v", err)
	}
	if partial.Applied != 2 || partial.FailedAt != 2 || partial.Total != 4 {
		t.Errorf("unexpected partial error: %+v", partial)
	}
	if res.Applied != 2 || res.FailedAt != 2 || len(res.Blocks) != 2 {
		t.Errorf("unexpected result: %+v", res)
	}
	if res.Complete() {
		t.Error("partial result reported complete")
	}
	if len(store.blocks) != 2 {
		t.Errorf("store holds %d blocks; no rollback expected", len(store.blocks))
	}
	if !strings.Contains(err.Error(), "status 500") {
		t.Errorf("error does not carry the cause: %v", err)
	}
}

func TestApplier_Payload(t *testing.T) {
	store := newRecordingStore()
	a := NewApplier(store, WithMediaResolver(func(ref string) string {
		return "https://cdn.test/" + ref
	}))

	comps := []models.Component{
		{ID: "h", Fields: models.Hero{Title: "<b>Big</b> sale", Subtitle: "Now", BackgroundURL: "media/bg.jpg", ButtonLabel: "Go"}},
		{ID: "p", Fields: models.PromotedItem{ProductID: "p1", Title: "Lamp", Description: "Bright", ImageURL: "media/lamp.jpg", Price: "10.00", ActionLabel: "Buy"}},
		{ID: "t", Fields: models.Text{Title: "Story", Body: "<p>Hello <script>alert(1)</script>world</p>"}},
		{ID: "c", Fields: models.CallToAction{Title: "Join", Description: "Today", ButtonLabel: "Sign up"}},
	}
	if _, err := a.ApplyComponents(context.Background(), comps, "pg"); err != nil {
		t.Fatalf("ApplyComponents: %v", err)
	}

	hero := store.blocks[0].Content
	if hero.Title != "Big sale" {
		t.Errorf("hero title not sanitized: %q", hero.Title)
	}
	if hero.ImageURL != "https://cdn.test/media/bg.jpg" || hero.ButtonText != "Go" || hero.Subtitle != "Now" {
		t.Errorf("hero content: %+v", hero)
	}

	product := store.blocks[1].Content
	if product.ProductID != "p1" || product.Price != "10.00" || product.Subtitle != "Bright" || product.ButtonText != "Buy" {
		t.Errorf("product content: %+v", product)
	}
	if product.ImageURL != "https://cdn.test/media/lamp.jpg" {
		t.Errorf("product image = %q", product.ImageURL)
	}

	text := store.blocks[2].Content
	if strings.Contains(text.Subtitle, "script") || !strings.Contains(text.Subtitle, "<p>") {
		t.Errorf("text body = %q", text.Subtitle)
	}

	cta := store.blocks[3]
	if cta.Type != models.BlockTypeBanner || cta.Content.Subtitle != "Today" || cta.Content.ButtonText != "Sign up" {
		t.Errorf("cta block: %+v", cta)
	}
}

func TestApplier_Replace(t *testing.T) {
	store := newRecordingStore()
	a := NewApplier(store)
	comps := []models.Component{{ID: "a", Fields: models.Text{Title: "x"}}}

	if _, err := a.Replace(context.Background(), comps, "pg"); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if len(store.cleared) != 1 || store.cleared[0] != "pg" {
		t.Errorf("cleared = %v", store.cleared)
	}

	plain := newRecordingStore()
	b := NewApplier(createOnlyStore{inner: plain})
	if _, err := b.Replace(context.Background(), comps, "pg"); err != nil {
		t.Fatalf("Replace without clearer: %v", err)
	}
	if len(plain.blocks) != 1 {
		t.Errorf("blocks = %d", len(plain.blocks))
	}
}

func TestApplier_NoStore(t *testing.T) {
	a := NewApplier(nil)
	if _, err := a.ApplyComponents(context.Background(), nil, "pg"); !errors.Is(err, ErrStoreMissing) {
		t.Errorf("expected ErrStoreMissing, got %v", err)
	}
}
