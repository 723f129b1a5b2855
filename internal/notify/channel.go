package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/julianstephens/beastmode/internal/models"
)

// Channel delivers one rendered notification over one outbound request.
type Channel interface {
	Name() string
	Send(ctx context.Context, p models.UserProgress, t MessageType, achievement string) error
}

// nowFunc is swapped in tests.
var nowFunc = time.Now

type request struct {
	method      string
	url         string
	contentType string
	body        io.Reader
	header      http.Header
	basicUser   string
	basicPass   string
}

func jsonRequest(endpoint string, payload any) (request, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return request{}, err
	}
	return request{
		method:      http.MethodPost,
		url:         endpoint,
		contentType: "application/json",
		body:        bytes.NewReader(data),
		header:      http.Header{},
	}, nil
}

func formRequest(endpoint string, form url.Values) request {
	return request{
		method:      http.MethodPost,
		url:         endpoint,
		contentType: "application/x-www-form-urlencoded",
		body:        strings.NewReader(form.Encode()),
		header:      http.Header{},
	}
}

// do issues r once. Any non-2xx status is an error; the body is only read for the message.
func do(ctx context.Context, client *http.Client, r request) error {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, r.method, r.url, r.body)
	if err != nil {
		return err
	}
	for k, vs := range r.header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Content-Type", r.contentType)
	if r.basicUser != "" {
		req.SetBasicAuth(r.basicUser, r.basicPass)
	}

	res, err := client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= 200 && res.StatusCode < 300 {
		return nil
	}

	body, _ := io.ReadAll(io.LimitReader(res.Body, 512))
	return fmt.Errorf("notification failed with status %d: %s", res.StatusCode, strings.TrimSpace(string(body)))
}
