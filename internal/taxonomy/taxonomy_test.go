package taxonomy

import (
	"context"
	"errors"
	"testing"

	"github.com/dirtflix/dfx/internal/models"
)

type fakeSource struct {
	genres      []string
	itemStudios []string
	studios     []string

	genresErr      error
	itemStudiosErr error
	studiosErr     error

	lastKinds []models.Kind
}

func (f *fakeSource) GenreNames(ctx context.Context, kinds []models.Kind) ([]string, error) {
	f.lastKinds = kinds
	return f.genres, f.genresErr
}

func (f *fakeSource) ItemStudioNames(ctx context.Context, kinds []models.Kind) ([]string, error) {
	f.lastKinds = kinds
	return f.itemStudios, f.itemStudiosErr
}

func (f *fakeSource) StudioNames(ctx context.Context) ([]string, error) {
	return f.studios, f.studiosErr
}

func TestGenreAdmissible(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"Comedy", true},
		{"Science Fiction", true},
		{"Sci-Fi", true},
		{"Film Noir", true},
		{"4K Remasters", true},
		{"sci-Fi", false},
		{"based on a novel", false},
		{"Based on a Novel", false},
		{"", false},
		{"Fiction: General", false},
		{"Shelf; Misc", false},
		{"A. B. Special", false},
		{"FIC123456", false},
		{"ABC123456", false},
		{"Xyz123456", false},
		{"ISBN 1234567", false},
		{"ISBN1234", false},
	}

	for _, tt := range tests {
		if got := GenreAdmissible(tt.name); got != tt.want {
			t.Errorf("GenreAdmissible(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestStudioAdmissible(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"Warner Bros.", true},
		{"A24", true},
		{"20th Century Fox", true},
		{"O'Brien Films", true},
		{"", false},
		{"Studio !K7 (Berlin)", false},
		{"lowercase films", false},
		{"123456", false},
		{"Stud�o", false},
		{"A.B.C.D. & Co.", false},
	}

	for _, tt := range tests {
		if got := StudioAdmissible(tt.name); got != tt.want {
			t.Errorf("StudioAdmissible(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestLoaderGenres(t *testing.T) {
	t.Run("filters and deduplicates", func(t *testing.T) {
		src := &fakeSource{genres: []string{"Comedy", "FIC123456", "Comedy", "Drama", "based on a play"}}
		loader := NewLoader(src)

		got, err := loader.Genres(context.Background(), []models.Kind{models.KindMovie})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := []string{"Comedy", "Drama"}
		if len(got) != len(want) {
			t.Fatalf("expected %v, got %v", want, got)
		}
		for i := range got {
			if got[i] != want[i] {
				t.Errorf("position %d: expected %q, got %q", i, want[i], got[i])
			}
		}
	})

	t.Run("empty kind selection widens to all kinds", func(t *testing.T) {
		src := &fakeSource{}
		loader := NewLoader(src)

		if _, err := loader.Genres(context.Background(), nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(src.lastKinds) != len(models.KnownKinds) {
			t.Errorf("expected all known kinds, got %v", src.lastKinds)
		}
	})

	t.Run("propagates source failure", func(t *testing.T) {
		srcErr := errors.New("boom")
		loader := NewLoader(&fakeSource{genresErr: srcErr})

		_, err := loader.Genres(context.Background(), nil)
		if !errors.Is(err, srcErr) {
			t.Errorf("expected wrapped source error, got %v", err)
		}
	})
}

func TestLoaderStudios(t *testing.T) {
	t.Run("prefers the item-derived listing", func(t *testing.T) {
		src := &fakeSource{
			itemStudios: []string{"A24", "A24", "lowercase films"},
			studios:     []string{"ShouldNotBeUsed"},
		}
		loader := NewLoader(src)

		got, err := loader.Studios(context.Background(), []models.Kind{models.KindMovie})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 1 || got[0] != "A24" {
			t.Errorf("expected [A24], got %v", got)
		}
	})

	t.Run("falls back to the unscoped listing", func(t *testing.T) {
		src := &fakeSource{
			itemStudiosErr: errors.New("items endpoint down"),
			studios:        []string{"Lionsgate", "123456"},
		}
		loader := NewLoader(src)

		got, err := loader.Studios(context.Background(), nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 1 || got[0] != "Lionsgate" {
			t.Errorf("expected [Lionsgate], got %v", got)
		}
	})

	t.Run("propagates failure when both listings fail", func(t *testing.T) {
		fallbackErr := errors.New("also down")
		loader := NewLoader(&fakeSource{
			itemStudiosErr: errors.New("items endpoint down"),
			studiosErr:     fallbackErr,
		})

		_, err := loader.Studios(context.Background(), nil)
		if !errors.Is(err, fallbackErr) {
			t.Errorf("expected wrapped fallback error, got %v", err)
		}
	})
}

func TestSampleVocabularies(t *testing.T) {
	for _, genre := range SampleGenres {
		if !GenreAdmissible(genre) {
			t.Errorf("built-in genre %q fails its own admissibility check", genre)
		}
	}
	for _, studio := range SampleStudios {
		if !StudioAdmissible(studio) {
			t.Errorf("built-in studio %q fails its own admissibility check", studio)
		}
	}
}
