// noor-companion-service/services/prayer_client.go
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

// Fallback coordinates when the caller supplies none: Mecca.
const (
	DefaultLatitude  = 21.4225
	DefaultLongitude = 39.8262
)

type PrayerClient struct {
	BaseURL string
	Client  *http.Client
}

// PrayerTimes carries the six daily times plus the date strings the
// provider computes for them.
type PrayerTimes struct {
	Fajr      string `json:"fajr"`
	Sunrise   string `json:"sunrise"`
	Dhuhr     string `json:"dhuhr"`
	Asr       string `json:"asr"`
	Maghrib   string `json:"maghrib"`
	Isha      string `json:"isha"`
	Date      string `json:"date"`
	HijriDate string `json:"hijri_date"`
}

// NextPrayer is the first upcoming prayer relative to a wall-clock instant.
type NextPrayer struct {
	Name      string `json:"name"`
	Time      string `json:"time"`
	Remaining string `json:"remaining"`
}

func NewPrayerClient() *PrayerClient {
	baseURL := os.Getenv("PRAYER_API_URL")
	if baseURL == "" {
		baseURL = "https://api.aladhan.com/v1"
	}
	return &PrayerClient{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// GetTimings fetches today's timings for the given coordinates
// (calculation method 5, Umm al-Qura). Zero coordinates fall back to Mecca.
func (c *PrayerClient) GetTimings(ctx context.Context, latitude, longitude float64) (*PrayerTimes, error) {
	if latitude == 0 && longitude == 0 {
		latitude = DefaultLatitude
		longitude = DefaultLongitude
	}

	today := time.Now()
	dateStr := fmt.Sprintf("%d-%d-%d", today.Day(), int(today.Month()), today.Year())
	url := fmt.Sprintf("%s/timings/%s?latitude=%f&longitude=%f&method=5",
		c.BaseURL, dateStr, latitude, longitude)

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("prayer api unreachable: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		log.Printf("PrayerAPI returned %d: %.200s", resp.StatusCode, string(body))
		return nil, fmt.Errorf("prayer api returned status %d", resp.StatusCode)
	}

	var envelope struct {
		Code int `json:"code"`
		Data struct {
			Timings struct {
				Fajr    string `json:"Fajr"`
				Sunrise string `json:"Sunrise"`
				Dhuhr   string `json:"Dhuhr"`
				Asr     string `json:"Asr"`
				Maghrib string `json:"Maghrib"`
				Isha    string `json:"Isha"`
			} `json:"timings"`
			Date struct {
				Readable string `json:"readable"`
				Hijri    struct {
					Day   string `json:"day"`
					Year  string `json:"year"`
					Month struct {
						Ar string `json:"ar"`
					} `json:"month"`
				} `json:"hijri"`
			} `json:"date"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode prayer api response: %w", err)
	}
	if envelope.Code != http.StatusOK {
		return nil, fmt.Errorf("prayer api returned code %d", envelope.Code)
	}

	t := envelope.Data.Timings
	h := envelope.Data.Date.Hijri
	return &PrayerTimes{
		Fajr:      t.Fajr,
		Sunrise:   t.Sunrise,
		Dhuhr:     t.Dhuhr,
		Asr:       t.Asr,
		Maghrib:   t.Maghrib,
		Isha:      t.Isha,
		Date:      envelope.Data.Date.Readable,
		HijriDate: fmt.Sprintf("%s %s %s", h.Day, h.Month.Ar, h.Year),
	}, nil
}

// ComputeNextPrayer picks the first prayer of the day still ahead of now;
// after Isha the answer is tomorrow's Fajr.
func ComputeNextPrayer(pt *PrayerTimes, now time.Time) NextPrayer {
	prayers := []struct {
		name string
		time string
	}{
		{"الفجر", pt.Fajr},
		{"الشروق", pt.Sunrise},
		{"الظهر", pt.Dhuhr},
		{"العصر", pt.Asr},
		{"المغرب", pt.Maghrib},
		{"العشاء", pt.Isha},
	}

	for _, p := range prayers {
		at, err := time.ParseInLocation("15:04", p.time[:min(5, len(p.time))], now.Location())
		if err != nil {
			continue
		}
		at = time.Date(now.Year(), now.Month(), now.Day(), at.Hour(), at.Minute(), 0, 0, now.Location())
		if at.After(now) {
			diff := at.Sub(now)
			hours := int(diff.Hours())
			minutes := int(diff.Minutes()) % 60
			remaining := fmt.Sprintf("%d دقيقة", minutes)
			if hours > 0 {
				remaining = fmt.Sprintf("%d ساعة و %d دقيقة", hours, minutes)
			}
			return NextPrayer{Name: p.name, Time: p.time, Remaining: remaining}
		}
	}
	return NextPrayer{Name: "الفجر", Time: pt.Fajr, Remaining: "غداً"}
}
