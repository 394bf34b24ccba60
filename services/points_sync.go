// noor-companion-service/services/points_sync.go
package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// PointsSyncClient pushes cumulative counters to the profile service.
// The push is best-effort and fire-and-forget: the engines never block on it
// and a failed push is only logged, never retried transactionally.
type PointsSyncClient struct {
	BaseURL string
	Token   string
	Client  *http.Client
}

func NewPointsSyncClient(baseURL, token string) *PointsSyncClient {
	return &PointsSyncClient{
		BaseURL: baseURL,
		Token:   token,
		Client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type creditRequest struct {
	UserID    string `json:"user_id"`
	Points    int64  `json:"points,omitempty"`
	Tasbih    int64  `json:"tasbih,omitempty"`
	PagesRead int64  `json:"pages_read,omitempty"`
	Khatmas   int64  `json:"khatmas,omitempty"`
}

func (c *PointsSyncClient) credit(req creditRequest) {
	url := fmt.Sprintf("%s/api/v1/public/profiles/credit", c.BaseURL)
	jsonData, _ := json.Marshal(req)

	httpReq, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		log.Printf("❌ [POINTS_SYNC] build request failed: %v", err)
		return
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Service-Token", c.Token)

	resp, err := c.Client.Do(httpReq)
	if err != nil {
		log.Printf("❌ [POINTS_SYNC] credit for %s failed: %v", req.UserID, err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		log.Printf("❌ [POINTS_SYNC] profile service returned %d for %s: %s",
			resp.StatusCode, req.UserID, string(body))
	}
}

// CreditPoints mirrors points earned from challenge completions.
func (c *PointsSyncClient) CreditPoints(userID string, points int64) {
	c.credit(creditRequest{UserID: userID, Points: points})
}

// CreditTasbih mirrors tasbih taps; every 10 taps is worth one point remotely.
func (c *PointsSyncClient) CreditTasbih(userID string, count int64) {
	c.credit(creditRequest{UserID: userID, Tasbih: count, Points: count / 10})
}

// CreditPagesRead mirrors Quran pages read at 5 points per page.
func (c *PointsSyncClient) CreditPagesRead(userID string, pages int64) {
	c.credit(creditRequest{UserID: userID, PagesRead: pages, Points: pages * 5})
}

// CreditKhatma mirrors a completed khatma, worth 500 points remotely.
func (c *PointsSyncClient) CreditKhatma(userID string) {
	c.credit(creditRequest{UserID: userID, Khatmas: 1, Points: 500})
}
