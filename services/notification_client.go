// noor-companion-service/services/notification_client.go
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

// NotificationClient hands wall-clock reminders to the notification service.
// Fire-and-forget: failures are logged and there is no cancellation of
// already-dispatched reminders when settings change mid-flight.
type NotificationClient struct {
	BaseURL string
	Token   string
	Client  *http.Client
}

func NewNotificationClient(baseURL, token string) *NotificationClient {
	return &NotificationClient{
		BaseURL: baseURL,
		Token:   token,
		Client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Send pushes one notification for the user. Errors are logged, not returned.
func (c *NotificationClient) Send(userID, title, body string) {
	url := fmt.Sprintf("%s/api/v1/notifications", c.BaseURL)

	reqBody := map[string]string{
		"user_id": userID,
		"title":   title,
		"body":    body,
	}
	jsonData, _ := json.Marshal(reqBody)

	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		log.Printf("❌ [NOTIFY] build request failed: %v", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Service-Token", c.Token)

	resp, err := c.Client.Do(req)
	if err != nil {
		log.Printf("❌ [NOTIFY] send to %s failed: %v", userID, err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		log.Printf("❌ [NOTIFY] notification service returned %d for %s: %s",
			resp.StatusCode, userID, string(respBody))
	}
}
