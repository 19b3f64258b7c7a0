package transport

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/modwatch-lab/tattler/pkg/domain/interfaces"
	"github.com/modwatch-lab/tattler/pkg/domain/model/errs"
	"github.com/modwatch-lab/tattler/pkg/utils/safe"
)

// HTTP posts JSON payloads to webhook endpoints. It carries both webhook
// families; payload shape is the caller's concern.
type HTTP struct {
	client *http.Client
}

var _ interfaces.NotificationTransport = &HTTP{}

func New(options ...Option) *HTTP {
	t := &HTTP{
		client: http.DefaultClient,
	}
	for _, opt := range options {
		opt(t)
	}
	return t
}

type Option func(*HTTP)

func WithClient(client *http.Client) Option {
	return func(t *HTTP) {
		t.client = client
	}
}

func (x *HTTP) Post(ctx context.Context, url string, payload []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return goerr.Wrap(err, "failed to build webhook request", goerr.T(errs.TagDelivery))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := x.client.Do(req)
	if err != nil {
		return goerr.Wrap(err, "failed to post webhook", goerr.T(errs.TagDelivery))
	}
	defer safe.Close(ctx, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return goerr.New("webhook endpoint returned error",
			goerr.T(errs.TagDelivery),
			goerr.V("status", resp.StatusCode),
			goerr.V("body", string(body)),
		)
	}
	return nil
}
