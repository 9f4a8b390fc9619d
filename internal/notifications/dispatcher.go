// Package notifications delivers push notifications through Firebase Cloud Messaging topics.
// Devices subscribe to "all", "admin", "category-<name>" and "panchayath-<name>".
package notifications

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"

	"firebase.google.com/go/v4/messaging"
	"github.com/sedp-portal/backend/internal/models"
)

// Sender is the subset of the FCM client used for delivery
type Sender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// Dispatcher sends notifications to their audience topic
type Dispatcher struct {
	sender Sender
}

func NewDispatcher(sender Sender) *Dispatcher {
	return &Dispatcher{sender: sender}
}

var topicUnsafe = regexp.MustCompile(`[^a-z0-9\-_.~%]+`)

// Topic returns the FCM topic for a notification's audience
func Topic(n *models.PushNotification) (string, error) {
	switch n.TargetAudience {
	case models.AudienceAll, models.AudienceAdmin:
		return string(n.TargetAudience), nil
	case models.AudienceCategory, models.AudiencePanchayath:
		if n.TargetValue == nil || strings.TrimSpace(*n.TargetValue) == "" {
			return "", fmt.Errorf("%s audience requires a target value", n.TargetAudience)
		}
		value := topicUnsafe.ReplaceAllString(strings.ToLower(strings.TrimSpace(*n.TargetValue)), "-")
		return string(n.TargetAudience) + "-" + strings.Trim(value, "-"), nil
	}
	return "", fmt.Errorf("invalid target audience %q", n.TargetAudience)
}

// Dispatch sends n to its topic
func (d *Dispatcher) Dispatch(ctx context.Context, n *models.PushNotification) error {
	topic, err := Topic(n)
	if err != nil {
		return err
	}

	message := &messaging.Message{
		Topic: topic,
		Notification: &messaging.Notification{
			Title: n.Title,
			Body:  n.Content,
		},
		Data: map[string]string{
			"notification_id": n.ID,
			"target_audience": string(n.TargetAudience),
		},
	}

	id, err := d.sender.Send(ctx, message)
	if err != nil {
		return fmt.Errorf("sending to topic %s: %w", topic, err)
	}
	log.Printf("Notification %s sent to topic %s (%s)", n.ID, topic, id)
	return nil
}
