package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"reciteflow-backend/internal/models"
)

const (
	cacheKey   = "catalog:chapters"
	DefaultTTL = 24 * time.Hour
)

// Service serves the chapter catalog. Lookups go to the cache first, then
// the primary endpoint, then the fallback endpoint; if every source fails
// the small built-in list keeps the app usable offline.
type Service struct {
	http        *http.Client
	cache       Cache
	primaryURL  string
	fallbackURL string
	ttl         time.Duration
}

func NewService(cache Cache, primaryURL, fallbackURL string, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{
		http:        &http.Client{Timeout: 15 * time.Second},
		cache:       cache,
		primaryURL:  primaryURL,
		fallbackURL: fallbackURL,
		ttl:         ttl,
	}
}

// Chapters returns the full chapter list. Network failures are logged but
// never propagated; the caller always gets a usable list.
func (s *Service) Chapters(ctx context.Context) []models.Chapter {
	if cached, err := s.cache.Get(ctx, cacheKey); err == nil {
		var chapters []models.Chapter
		if err := json.Unmarshal([]byte(cached), &chapters); err == nil && len(chapters) > 0 {
			return chapters
		}
	} else if err != ErrCacheMiss {
		log.Printf("catalog: cache read failed: %v", err)
	}

	for _, url := range []string{s.primaryURL, s.fallbackURL} {
		if url == "" {
			continue
		}
		chapters, err := s.fetch(ctx, url)
		if err != nil {
			log.Printf("catalog: fetch from %s failed: %v", url, err)
			continue
		}
		s.store(ctx, chapters)
		return chapters
	}

	return staticChapters()
}

// Chapter looks up one chapter by number.
func (s *Service) Chapter(ctx context.Context, id int) (models.Chapter, bool) {
	for _, c := range s.Chapters(ctx) {
		if c.ID == id {
			return c, true
		}
	}
	return models.Chapter{}, false
}

type chapterPayload struct {
	Data []struct {
		Number                 int    `json:"number"`
		Name                   string `json:"name"`
		EnglishName            string `json:"englishName"`
		EnglishNameTranslation string `json:"englishNameTranslation"`
		NumberOfAyahs          int    `json:"numberOfAyahs"`
	} `json:"data"`
}

func (s *Service) fetch(ctx context.Context, url string) ([]models.Chapter, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var payload chapterPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	if len(payload.Data) == 0 {
		return nil, fmt.Errorf("empty catalog payload")
	}

	chapters := make([]models.Chapter, len(payload.Data))
	for i, c := range payload.Data {
		chapters[i] = models.Chapter{
			ID:             c.Number,
			Name:           c.EnglishName,
			NativeName:     c.Name,
			TranslatedName: c.EnglishNameTranslation,
			Passages:       c.NumberOfAyahs,
		}
	}
	return chapters, nil
}

func (s *Service) store(ctx context.Context, chapters []models.Chapter) {
	data, err := json.Marshal(chapters)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, cacheKey, string(data), s.ttl); err != nil {
		log.Printf("catalog: cache write failed: %v", err)
	}
}

// staticChapters is the offline fallback: the chapters most programs start
// with, so pickers stay populated when both endpoints are down.
func staticChapters() []models.Chapter {
	return []models.Chapter{
		{ID: 1, Name: "Al-Fatihah", NativeName: "الفاتحة", TranslatedName: "The Opening", Passages: 7},
		{ID: 2, Name: "Al-Baqarah", NativeName: "البقرة", TranslatedName: "The Cow", Passages: 286},
		{ID: 3, Name: "Aal-E-Imran", NativeName: "آل عمران", TranslatedName: "The Family of Imran", Passages: 200},
		{ID: 36, Name: "Ya-Sin", NativeName: "يس", TranslatedName: "Ya-Sin", Passages: 83},
		{ID: 55, Name: "Ar-Rahman", NativeName: "الرحمن", TranslatedName: "The Most Merciful", Passages: 78},
		{ID: 67, Name: "Al-Mulk", NativeName: "الملك", TranslatedName: "The Sovereignty", Passages: 30},
		{ID: 112, Name: "Al-Ikhlas", NativeName: "الإخلاص", TranslatedName: "The Sincerity", Passages: 4},
		{ID: 113, Name: "Al-Falaq", NativeName: "الفلق", TranslatedName: "The Daybreak", Passages: 5},
		{ID: 114, Name: "An-Nas", NativeName: "الناس", TranslatedName: "Mankind", Passages: 6},
	}
}
