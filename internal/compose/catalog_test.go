package compose

import (
	"context"
	"errors"
	"strings"
	"testing"

	"pagecomposer/internal/models"
)

type stubGenerator struct {
	reply *models.GeneratorReply
	err   error
	calls int
	last  models.GenerateRequest
}

func (g *stubGenerator) GenerateTemplate(ctx context.Context, req models.GenerateRequest) (*models.GeneratorReply, error) {
	g.calls++
	g.last = req
	return g.reply, g.err
}

func TestBuiltinTemplates_FreshValues(t *testing.T) {
	a := BuiltinTemplates()
	b := BuiltinTemplates()
	if len(a) == 0 {
		t.Fatal("expected built-in templates")
	}

	a[0].Name = "mutated"
	a[0].Components[0].Style["background"] = "mutated"
	if b[0].Name == "mutated" || b[0].Components[0].Style["background"] == "mutated" {
		t.Error("BuiltinTemplates calls share state")
	}

	seen := map[string]bool{}
	for _, tmpl := range BuiltinTemplates() {
		if len(tmpl.Components) == 0 {
			t.Errorf("%s has no components", tmpl.ID)
		}
		if tmpl.Origin != models.TemplateOriginCatalog {
			t.Errorf("%s origin = %q", tmpl.ID, tmpl.Origin)
		}
		for _, c := range tmpl.Components {
			if seen[c.ID] {
				t.Errorf("component id %q repeated", c.ID)
			}
			seen[c.ID] = true
		}
	}
}

func TestCatalog_IndependentInstances(t *testing.T) {
	a := NewCatalog(BuiltinTemplates(), nil)
	b := NewCatalog(BuiltinTemplates(), nil)

	if _, err := a.Duplicate("black-friday"); err != nil {
		t.Fatalf("Duplicate: %v", err)
	}
	if len(a.List()) != len(b.List())+1 {
		t.Errorf("catalogs share session entries: %d vs %d", len(a.List()), len(b.List()))
	}
}

func TestCatalog_GetReturnsCopy(t *testing.T) {
	c := NewCatalog(BuiltinTemplates(), nil)
	tmpl, ok := c.Get("black-friday")
	if !ok {
		t.Fatal("black-friday not found")
	}
	tmpl.Components[0].Style["background"] = "pink"
	tmpl.Components = nil

	again, _ := c.Get("black-friday")
	if len(again.Components) != 4 || again.Components[0].Style["background"] != "#000000" {
		t.Errorf("catalog entry modified through a copy: %+v", again.Components)
	}

	if _, ok := c.Get("nope"); ok {
		t.Error("unknown id should not be found")
	}
}

func TestCatalog_DuplicateBlackFriday(t *testing.T) {
	c := NewCatalog(BuiltinTemplates(), nil)
	src, _ := c.Get("black-friday")

	dup, err := c.Duplicate("black-friday")
	if err != nil {
		t.Fatalf("Duplicate: %v", err)
	}

	if !strings.Contains(dup.Name, "Black Friday") || !strings.Contains(dup.Name, CopyMarker) {
		t.Errorf("name = %q", dup.Name)
	}
	if len(dup.Components) != 4 {
		t.Fatalf("components = %d, want 4", len(dup.Components))
	}
	if dup.ID == src.ID || !strings.HasPrefix(dup.ID, "black-friday-copy-") {
		t.Errorf("id = %q", dup.ID)
	}
	if dup.Origin != models.TemplateOriginDuplicate {
		t.Errorf("origin = %q", dup.Origin)
	}

	srcIDs := map[string]bool{}
	for _, comp := range src.Components {
		srcIDs[comp.ID] = true
	}
	for i, comp := range dup.Components {
		if srcIDs[comp.ID] {
			t.Errorf("component %d reuses source id %q", i, comp.ID)
		}
		if comp.Variant() != src.Components[i].Variant() {
			t.Errorf("component %d variant = %q, want %q", i, comp.Variant(), src.Components[i].Variant())
		}
	}

	if _, ok := c.Get(dup.ID); !ok {
		t.Error("duplicate was not added to the catalog")
	}
	if _, err := c.Duplicate("missing"); !errors.Is(err, ErrTemplateNotFound) {
		t.Errorf("expected ErrTemplateNotFound, got %v", err)
	}
}

func TestCatalog_DuplicateTwiceUniqueNames(t *testing.T) {
	c := NewCatalog(BuiltinTemplates(), nil)
	first, _ := c.Duplicate("christmas")
	second, _ := c.Duplicate("christmas")

	if first.ID == second.ID {
		t.Errorf("duplicates share id %q", first.ID)
	}
	if first.Name == second.Name {
		t.Errorf("duplicates share name %q", first.Name)
	}
	if second.Name != "Christmas (copy) 2" {
		t.Errorf("second name = %q", second.Name)
	}
}

func TestCatalog_SynthesizeEmptyPrompt(t *testing.T) {
	gen := &stubGenerator{}
	c := NewCatalog(nil, gen)

	for _, p := range []string{"", "   ", "\n\t"} {
		if _, err := c.Synthesize(context.Background(), p, ""); !errors.Is(err, ErrEmptyPrompt) {
			t.Errorf("prompt %q: expected ErrEmptyPrompt, got %v", p, err)
		}
	}
	if gen.calls != 0 {
		t.Errorf("generator called %d times", gen.calls)
	}
	if len(c.List()) != 0 {
		t.Error("empty prompt added a template")
	}
}

func TestCatalog_SynthesizeFallbackOnServerError(t *testing.T) {
	gen := &stubGenerator{err: errors.New("generate template: status 500: internal error")}
	c := NewCatalog(BuiltinTemplates(), gen)

	prompt := "Dia das Mães, cores rosa"
	tmpl, err := c.Synthesize(context.Background(), prompt, "")
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}

	if tmpl.Origin != models.TemplateOriginFallback {
		t.Errorf("origin = %q, want fallback", tmpl.Origin)
	}
	if len(tmpl.Components) == 0 {
		t.Fatal("fallback has no components")
	}
	hero, ok := tmpl.Components[0].Fields.(models.Hero)
	if !ok {
		t.Fatalf("first component is %T, want Hero", tmpl.Components[0].Fields)
	}
	if !strings.HasPrefix(hero.Title, "DIA DAS MÃES") {
		t.Errorf("hero title = %q", hero.Title)
	}
	if _, ok := tmpl.Components[len(tmpl.Components)-1].Fields.(models.CallToAction); !ok {
		t.Error("fallback should end with a call to action")
	}
	if gen.last.BusinessType != DefaultBusinessType {
		t.Errorf("business type = %q", gen.last.BusinessType)
	}
	if _, ok := c.Get(tmpl.ID); !ok {
		t.Error("fallback template not added to the catalog")
	}
}

func TestCatalog_SynthesizeTruncatesFallbackTitle(t *testing.T) {
	c := NewCatalog(nil, nil)
	prompt := strings.Repeat("promoção ", 20)

	tmpl, err := c.Synthesize(context.Background(), prompt, "")
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	title := tmpl.Components[0].Fields.(models.Hero).Title
	if n := len([]rune(title)); n > fallbackTitleLen {
		t.Errorf("title has %d runes, want at most %d", n, fallbackTitleLen)
	}
	if !strings.HasPrefix(title, "PROMOÇÃO") {
		t.Errorf("title = %q", title)
	}
}

func TestCatalog_SynthesizeGenerated(t *testing.T) {
	tests := []struct {
		name      string
		reply     *models.GeneratorReply
		wantOrig  models.TemplateOrigin
		wantTypes []models.Variant
	}{
		{
			name: "explicit components",
			reply: &models.GeneratorReply{
				Name: "Spring",
				Components: []models.ReplyComponent{
					{Type: "hero", Title: "Spring is here"},
					{Type: "product", Title: "Tulips", Price: "9.99"},
					{Type: "banner", Title: "Order today"},
				},
			},
			wantOrig:  models.TemplateOriginGenerated,
			wantTypes: []models.Variant{models.VariantHero, models.VariantPromotedItem, models.VariantCallToAction},
		},
		{
			name: "canonical triple",
			reply: &models.GeneratorReply{
				HeroTitle:      "Welcome",
				SectionTitle:   "About",
				SectionContent: "We bake bread.",
				CTATitle:       "Visit us",
			},
			wantOrig:  models.TemplateOriginGenerated,
			wantTypes: []models.Variant{models.VariantHero, models.VariantText, models.VariantCallToAction},
		},
		{
			name: "unknown component types use the triple",
			reply: &models.GeneratorReply{
				Components: []models.ReplyComponent{{Type: "carousel"}},
				HeroTitle:  "Welcome",
			},
			wantOrig:  models.TemplateOriginGenerated,
			wantTypes: []models.Variant{models.VariantHero, models.VariantText, models.VariantCallToAction},
		},
		{
			name:      "empty reply falls back",
			reply:     &models.GeneratorReply{Name: "Nothing"},
			wantOrig:  models.TemplateOriginFallback,
			wantTypes: []models.Variant{models.VariantHero, models.VariantCallToAction},
		},
		{
			name:      "nil reply falls back",
			reply:     nil,
			wantOrig:  models.TemplateOriginFallback,
			wantTypes: []models.Variant{models.VariantHero, models.VariantCallToAction},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &stubGenerator{reply: tt.reply}
			c := NewCatalog(nil, gen, WithBusinessType("bakery"))

			tmpl, err := c.Synthesize(context.Background(), "spring campaign", "")
			if err != nil {
				t.Fatalf("Synthesize: %v", err)
			}
			if tmpl.Origin != tt.wantOrig {
				t.Errorf("origin = %q, want %q", tmpl.Origin, tt.wantOrig)
			}
			if len(tmpl.Components) != len(tt.wantTypes) {
				t.Fatalf("components = %d, want %d", len(tmpl.Components), len(tt.wantTypes))
			}
			for i, v := range tt.wantTypes {
				if tmpl.Components[i].Variant() != v {
					t.Errorf("component %d = %q, want %q", i, tmpl.Components[i].Variant(), v)
				}
			}
			if gen.last.BusinessType != "bakery" {
				t.Errorf("business type = %q", gen.last.BusinessType)
			}
		})
	}
}

func TestCatalog_SynthesizeNameCollision(t *testing.T) {
	gen := &stubGenerator{reply: &models.GeneratorReply{Name: "Black Friday", HeroTitle: "Deals"}}
	c := NewCatalog(BuiltinTemplates(), gen)

	first, _ := c.Synthesize(context.Background(), "black friday", "")
	second, _ := c.Synthesize(context.Background(), "black friday", "")

	if first.Name != "Black Friday 2" || second.Name != "Black Friday 3" {
		t.Errorf("names = %q, %q", first.Name, second.Name)
	}
	if first.ID == second.ID || first.ID == "black-friday" {
		t.Errorf("ids collide: %q, %q", first.ID, second.ID)
	}
}

func TestCatalog_SynthesizeAlwaysHasComponents(t *testing.T) {
	prompts := []string{"a", "Dia das Mães, cores rosa", "🎉🎉🎉", strings.Repeat("x", 500)}
	gens := []Generator{nil, &stubGenerator{err: context.DeadlineExceeded}, &stubGenerator{reply: &models.GeneratorReply{}}}

	for _, g := range gens {
		c := NewCatalog(nil, g)
		for _, p := range prompts {
			tmpl, err := c.Synthesize(context.Background(), p, "")
			if err != nil {
				t.Fatalf("Synthesize(%q): %v", p, err)
			}
			if len(tmpl.Components) == 0 {
				t.Errorf("Synthesize(%q) returned no components", p)
			}
		}
	}
}
