/*
Copyright 2024 Ladrillo Finance Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package notification

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"

	"github.com/ladrillo-finance/ladrillo/config"
	"github.com/ladrillo-finance/ladrillo/internal/request"
)

// WebhookEvent is the envelope posted to the configured notification webhook.
type WebhookEvent struct {
	Event   string      `json:"event"`
	Payload interface{} `json:"data"`
}

// NotifyError logs the error and, when a webhook is configured, posts it as a
// system.error event. Runs asynchronously so callers never block on delivery.
func NotifyError(systemError error) {
	go func(systemError error) {
		logrus.Error(systemError)

		conf, err := config.Fetch()
		if err != nil {
			log.Println(err)
			return
		}
		if conf.Notification.Webhook.Url == "" {
			return
		}

		event := WebhookEvent{
			Event: "system.error",
			Payload: map[string]interface{}{
				"error": systemError.Error(),
				"time":  time.Now().Format(time.RFC822),
			},
		}
		if err := SendWebhook(event); err != nil {
			log.Println(err)
		}
	}(systemError)
}

// SendWebhook posts the event to the configured webhook URL, retrying with
// exponential backoff for up to a minute. Delivery failures after the final
// retry are returned to the caller.
func SendWebhook(event WebhookEvent) error {
	conf, err := config.Fetch()
	if err != nil {
		return err
	}
	if conf.Notification.Webhook.Url == "" {
		return nil
	}

	operation := func() error {
		payload, err := request.ToJsonReq(&event)
		if err != nil {
			return backoff.Permanent(err)
		}

		req, err := http.NewRequest("POST", conf.Notification.Webhook.Url, payload)
		if err != nil {
			return backoff.Permanent(err)
		}
		for key, value := range conf.Notification.Webhook.Headers {
			req.Header.Set(key, value)
		}

		var response map[string]interface{}
		resp, err := request.Call(req, &response)
		if err != nil {
			return err
		}
		if resp.StatusCode >= http.StatusInternalServerError {
			return fmt.Errorf("webhook returned status %d", resp.StatusCode)
		}
		return nil
	}

	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = time.Minute

	return backoff.Retry(operation, policy)
}
