package store

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"pagecomposer/internal/models"
)

func TestPageStoreSaveAndFind(t *testing.T) {
	db := testDB(t)
	s := NewPageStore(db)
	ctx := context.Background()

	id := uuid.NewString()
	slug := "test-page-" + id[:8]
	t.Cleanup(func() { cleanPages(t, db, id) })

	saved, err := s.SavePage(ctx, models.Page{ID: id, Title: "Test Page", Slug: slug})
	if err != nil {
		t.Fatalf("SavePage: %v", err)
	}
	if saved.ID != id {
		t.Errorf("id: got %q, want %q", saved.ID, id)
	}

	// Second save updates in place.
	saved, err = s.SavePage(ctx, models.Page{ID: id, Title: "Renamed", Slug: slug, Published: true})
	if err != nil {
		t.Fatalf("SavePage update: %v", err)
	}
	if saved.Title != "Renamed" || !saved.Published {
		t.Errorf("update not applied: %+v", saved)
	}

	found, err := s.FindByID(ctx, id)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found == nil {
		t.Fatal("expected page, got nil")
	}
	if found.Title != "Renamed" || found.Slug != slug {
		t.Errorf("found: %+v", found)
	}
}

func TestPageStoreGeneratesID(t *testing.T) {
	db := testDB(t)
	p := testPage(t, db, "test-gen-"+uuid.NewString()[:8])
	if _, err := uuid.Parse(p.ID); err != nil {
		t.Errorf("expected a UUID, got %q", p.ID)
	}
}

func TestPageStoreSlugTaken(t *testing.T) {
	db := testDB(t)
	s := NewPageStore(db)
	slug := "test-dup-" + uuid.NewString()[:8]
	testPage(t, db, slug)

	other := uuid.NewString()
	t.Cleanup(func() { cleanPages(t, db, other) })
	_, err := s.SavePage(context.Background(), models.Page{ID: other, Title: "Other", Slug: slug})
	if !errors.Is(err, ErrSlugTaken) {
		t.Errorf("expected ErrSlugTaken, got %v", err)
	}
}

func TestPageStoreFindMissing(t *testing.T) {
	db := testDB(t)
	s := NewPageStore(db)

	for _, id := range []string{uuid.NewString(), "not-a-uuid"} {
		p, err := s.FindByID(context.Background(), id)
		if err != nil {
			t.Fatalf("FindByID(%q): %v", id, err)
		}
		if p != nil {
			t.Errorf("FindByID(%q) = %+v, want nil", id, p)
		}
	}
}
