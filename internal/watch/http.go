package watch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"kiosk-fleet-health/internal/fleet"
)

var ErrFetchFailed = errors.New("snapshot fetch failed")

// HTTPFetcher pulls the device snapshot from the collector's REST API.
type HTTPFetcher struct {
	BaseURL string
	Client  *http.Client
}

func (f *HTTPFetcher) FetchDevices(ctx context.Context) ([]fleet.DeviceRecord, error) {
	const fn = "HTTPFetcher:FetchDevices"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.BaseURL+"/api/devices", nil)
	if err != nil {
		return nil, fmt.Errorf("%s:%w:%w", fn, ErrFetchFailed, err)
	}
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s:%w:%w", fn, ErrFetchFailed, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s:%w: unexpected status %d", fn, ErrFetchFailed, resp.StatusCode)
	}

	var body struct {
		Success bool                 `json:"success"`
		Devices []fleet.DeviceRecord `json:"devices"`
		Error   string               `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%s:%w:%w", fn, ErrFetchFailed, err)
	}
	if !body.Success {
		return nil, fmt.Errorf("%s:%w: %s", fn, ErrFetchFailed, body.Error)
	}
	return body.Devices, nil
}
