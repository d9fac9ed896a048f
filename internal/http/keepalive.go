package http

import (
	"context"
	"net/http"
	"remindbot/internal/core/domain/logging"
	"strings"
	"time"
)

// KeepAlive requests externalURL/ping every interval until ctx is done.
// Some hosting platforms put idle services to sleep without inbound traffic.
func KeepAlive(ctx context.Context, log logging.Logger, client *http.Client, externalURL string, interval time.Duration) {
	url := strings.TrimRight(externalURL, "/") + "/ping"
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Info(ctx, "Self-ping started.", logging.Entry("url", url), logging.Entry("interval", interval))
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := ping(ctx, client, url); err != nil {
				log.Warning(ctx, "Self-ping failed.", logging.Entry("url", url), logging.Entry("err", err))
			}
		}
	}
}

func ping(ctx context.Context, client *http.Client, url string) error {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	response, err := client.Do(request)
	if err != nil {
		return err
	}
	return response.Body.Close()
}
