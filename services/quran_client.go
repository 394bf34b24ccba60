// noor-companion-service/services/quran_client.go
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"
)

const DefaultReciter = "ar.alafasy"
const DefaultTafsirEdition = "ar.muyassar"

// QuranAyahCount: total ayahs across the mushaf, used for the daily ayah pick.
const QuranAyahCount = 6236

type QuranClient struct {
	BaseURL string
	Client  *http.Client
}

type Ayah struct {
	Number         int      `json:"number"`
	NumberInSurah  int      `json:"numberInSurah"`
	Text           string   `json:"text"`
	Audio          string   `json:"audio,omitempty"`
	AudioSecondary []string `json:"audioSecondary,omitempty"`
}

type Surah struct {
	Number                 int    `json:"number"`
	Name                   string `json:"name"`
	EnglishName            string `json:"englishName"`
	EnglishNameTranslation string `json:"englishNameTranslation"`
	NumberOfAyahs          int    `json:"numberOfAyahs"`
	RevelationType         string `json:"revelationType"`
}

type SurahDetail struct {
	Surah
	Ayahs []Ayah `json:"ayahs"`
}

// AyahDetail is a single ayah with its surah context (daily ayah endpoint).
type AyahDetail struct {
	Ayah
	Surah Surah `json:"surah"`
}

func NewQuranClient() *QuranClient {
	baseURL := os.Getenv("QURAN_API_URL")
	if baseURL == "" {
		baseURL = "https://api.alquran.cloud/v1"
	}
	return &QuranClient{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// getJSON fetches an alquran.cloud endpoint and decodes the data field of its
// {code, status, data} envelope into out.
func (c *QuranClient) getJSON(ctx context.Context, path string, out interface{}) error {
	url := c.BaseURL + path
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return err
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return fmt.Errorf("quran api unreachable: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		log.Printf("QuranAPI %s returned %d: %.200s", path, resp.StatusCode, string(body))
		return fmt.Errorf("quran api returned status %d", resp.StatusCode)
	}

	var envelope struct {
		Code int             `json:"code"`
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return fmt.Errorf("failed to decode quran api response: %w", err)
	}
	if envelope.Code != http.StatusOK {
		return fmt.Errorf("quran api returned code %d", envelope.Code)
	}
	return json.Unmarshal(envelope.Data, out)
}

// ListSurahs returns the 114-entry surah index.
func (c *QuranClient) ListSurahs(ctx context.Context) ([]Surah, error) {
	var surahs []Surah
	if err := c.getJSON(ctx, "/surah", &surahs); err != nil {
		return nil, err
	}
	return surahs, nil
}

// GetSurah returns one surah's ayahs with audio for the given reciter
// edition.
func (c *QuranClient) GetSurah(ctx context.Context, number int, reciter string) (*SurahDetail, error) {
	if number < 1 || number > 114 {
		return nil, fmt.Errorf("surah number %d out of range", number)
	}
	if reciter == "" {
		reciter = DefaultReciter
	}
	var detail SurahDetail
	if err := c.getJSON(ctx, fmt.Sprintf("/surah/%d/%s", number, reciter), &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// GetTafsir returns one surah's commentary text for the given edition.
func (c *QuranClient) GetTafsir(ctx context.Context, number int, edition string) (*SurahDetail, error) {
	if number < 1 || number > 114 {
		return nil, fmt.Errorf("surah number %d out of range", number)
	}
	if edition == "" {
		edition = DefaultTafsirEdition
	}
	var detail SurahDetail
	if err := c.getJSON(ctx, fmt.Sprintf("/surah/%d/%s", number, edition), &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// GetAyah returns a single ayah by its global number (1..6236).
func (c *QuranClient) GetAyah(ctx context.Context, number int, edition string) (*AyahDetail, error) {
	if number < 1 || number > QuranAyahCount {
		return nil, fmt.Errorf("ayah number %d out of range", number)
	}
	if edition == "" {
		edition = "quran-uthmani"
	}
	var detail AyahDetail
	if err := c.getJSON(ctx, fmt.Sprintf("/ayah/%d/%s", number, edition), &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}
