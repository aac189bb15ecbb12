package services

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"sync"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"

	"communekit.com/project-community-app/models"
)

var (
	messagingClient *messaging.Client
	once            sync.Once
	initError       error
)

func InitFirebase(credentialsPath string) error {
	once.Do(func() {
		ctx := context.Background()

		log.Printf("[FCM] Initializing Firebase with credentials: %s", credentialsPath)

		opt := option.WithCredentialsFile(credentialsPath)
		app, err := firebase.NewApp(ctx, nil, opt)
		if err != nil {
			initError = err
			log.Printf("[FCM][ERROR] Failed to init Firebase app: %v", err)
			return
		}

		messagingClient, err = app.Messaging(ctx)
		if err != nil {
			initError = err
			log.Printf("[FCM][ERROR] Failed to get messaging client: %v", err)
			return
		}

		log.Println("[FCM] Firebase Messaging client initialized")
	})

	return initError
}

func getMessagingClient() (*messaging.Client, error) {
	if messagingClient == nil {
		return nil, fmt.Errorf("messaging client not initialized (initError=%v)", initError)
	}
	return messagingClient, nil
}

// SendMultipleNotifications multicasts one message to a set of device
// tokens and deletes tokens Firebase reports as unregistered.
func SendMultipleNotifications(db *sql.DB, tokens []string, title, body string, data map[string]string) (int, int, error) {
	client, err := getMessagingClient()
	if err != nil {
		return 0, 0, err
	}

	log.Printf("[FCM] Sending multicast | tokens=%d title=%q", len(tokens), title)

	message := &messaging.MulticastMessage{
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data:   data,
		Tokens: tokens,
	}

	response, err := client.SendEachForMulticast(context.Background(), message)
	if err != nil {
		log.Printf("[FCM][ERROR] Multicast send failed entirely: %v", err)
		return 0, 0, err
	}

	log.Printf("[FCM] Multicast result | success=%d failure=%d",
		response.SuccessCount, response.FailureCount)

	for i, resp := range response.Responses {
		if resp.Success {
			continue
		}

		token := tokens[i]
		log.Printf("[FCM][TOKEN ERROR] token=%s error=%v", token, resp.Error)

		if messaging.IsUnregistered(resp.Error) {
			log.Printf("[FCM] Deleting dead token: %s", token)

			if _, err := db.Exec(`DELETE FROM fcm_tokens WHERE token = $1`, token); err != nil {
				log.Printf("[FCM][ERROR] Failed to delete token %s: %v", token, err)
			}
		}
	}

	return response.SuccessCount, response.FailureCount, nil
}

func ownerTokens(db *sql.DB, userID int) []string {
	rows, err := db.Query(`
		SELECT token FROM fcm_tokens
		WHERE user_id = $1 AND token IS NOT NULL AND token != ''`,
		userID)
	if err != nil {
		log.Printf("[FCM] Error fetching tokens for user %d: %v", userID, err)
		return nil
	}
	defer rows.Close()

	var tokens []string
	for rows.Next() {
		var token string
		if err := rows.Scan(&token); err == nil {
			tokens = append(tokens, token)
		}
	}
	return tokens
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n-3] + "..."
	}
	return s
}

// NotifyOwnerOfLike pushes a notification to the content owner's
// devices when their project or article receives a like.
func NotifyOwnerOfLike(db *sql.DB, item *models.ContentItem) {
	if item.AuthorID == 0 {
		return
	}

	tokens := ownerTokens(db, item.AuthorID)
	if len(tokens) == 0 {
		return
	}

	title := fmt.Sprintf("Someone liked your %s", item.Kind)
	body := truncate(item.Title, 100)

	data := map[string]string{
		"type":    "content_like",
		"kind":    string(item.Kind),
		"item_id": fmt.Sprintf("%d", item.ID),
	}

	success, failure, err := SendMultipleNotifications(db, tokens, title, body, data)
	if err != nil {
		log.Printf("Error sending like notification: %v", err)
		return
	}

	log.Printf("Sent like notification for %s %d: %d successful, %d failed",
		item.Kind, item.ID, success, failure)
}

// NotifyOwnerOfComment pushes a notification to the content owner's
// devices when their project or article receives a comment.
func NotifyOwnerOfComment(db *sql.DB, item *models.ContentItem, commenterName, commentText string) {
	if item.AuthorID == 0 {
		return
	}

	tokens := ownerTokens(db, item.AuthorID)
	if len(tokens) == 0 {
		return
	}

	title := fmt.Sprintf("%s commented on your %s", commenterName, item.Kind)
	body := truncate(commentText, 100)

	data := map[string]string{
		"type":    "content_comment",
		"kind":    string(item.Kind),
		"item_id": fmt.Sprintf("%d", item.ID),
	}

	success, failure, err := SendMultipleNotifications(db, tokens, title, body, data)
	if err != nil {
		log.Printf("Error sending comment notification: %v", err)
		return
	}

	log.Printf("Sent comment notification for %s %d: %d successful, %d failed",
		item.Kind, item.ID, success, failure)
}
