package util

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// HTTPError is returned by the JSON helpers when the remote endpoint
// answers with a non 2xx status.
type HTTPError struct {
	Status int
	Body   string
}

func (this *HTTPError) Error() string {
	return fmt.Sprintf("http status %d: %s", this.Status, this.Body)
}

// Send a JSON request and decode the JSON response in `out` (if not nil).
// A nil `body` sends no request body.
func DoJSON(ctx context.Context, client *http.Client, method, url string, body, out interface{}) error {
	var request *http.Request
	var response *http.Response
	var reader io.Reader
	var payload []byte
	var err error

	if body != nil {
		payload, err = json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	request, err = http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return err
	}

	request.Header.Set("Accept", "application/json")
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	response, err = client.Do(request)
	if err != nil {
		return err
	}

	defer response.Body.Close()

	payload, err = io.ReadAll(response.Body)
	if err != nil {
		return err
	}

	if (response.StatusCode < 200) || (response.StatusCode >= 300) {
		return &HTTPError{response.StatusCode, string(payload)}
	}

	if out == nil {
		return nil
	}

	return json.Unmarshal(payload, out)
}

func GetJSON(ctx context.Context, client *http.Client, url string, out interface{}) error {
	return DoJSON(ctx, client, http.MethodGet, url, nil, out)
}

func PostJSON(ctx context.Context, client *http.Client, url string, body, out interface{}) error {
	return DoJSON(ctx, client, http.MethodPost, url, body, out)
}
