// Package traintracker is a client for the CTA Train Tracker arrivals API.
package traintracker

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/ctabridge/ctabridge/pkg/transit"
	"github.com/rs/zerolog/log"
)

const DefaultBaseURL = "http://lapi.transitchicago.com/api/1.0"

// arrivalTimeLayout is the arrT format, second resolution in Chicago local
// time.
const arrivalTimeLayout = "20060102 15:04:05"

type Client struct {
	APIKey  string
	BaseURL string

	httpClient *http.Client
	now        func() time.Time
}

func NewClient(apiKey string, timeout time.Duration) *Client {
	return &Client{
		APIKey:  apiKey,
		BaseURL: DefaultBaseURL,

		httpClient: &http.Client{
			Timeout: timeout,
		},
		now: time.Now,
	}
}

// GetArrivals fetches the raw arrivals document for a platform.
func (client *Client) GetArrivals(platformID string) (*Response, error) {
	params := url.Values{}
	params.Set("key", client.APIKey)
	params.Set("stpid", platformID)

	requestURL := fmt.Sprintf("%s/ttarrivals.aspx?%s", client.BaseURL, params.Encode())

	resp, err := client.httpClient.Get(requestURL)
	if err != nil {
		return nil, fmt.Errorf("train tracker request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("train tracker returned status %d", resp.StatusCode)
	}

	response, err := ParseXML(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("train tracker response parse: %w", err)
	}

	if response.ErrorCode != "" && response.ErrorCode != "0" {
		return nil, fmt.Errorf("train tracker error %s: %s", response.ErrorCode, response.ErrorMessage)
	}

	return response, nil
}

// SoonestPrediction returns the nearest upcoming arrival at the platform, or
// nil when nothing is predicted. The API returns arrivals for every platform
// of a station when given a station id, so arrivals are filtered down to the
// requested platform before selection.
func (client *Client) SoonestPrediction(platformID string) (*transit.Prediction, error) {
	response, err := client.GetArrivals(platformID)
	if err != nil {
		return nil, err
	}

	now := client.now()

	var soonest *transit.Prediction
	for _, arrival := range response.Arrivals {
		if arrival.PlatformID != platformID {
			// Opposite direction of the same station
			continue
		}

		arrivalTime, err := time.ParseInLocation(arrivalTimeLayout, arrival.ArrivalTime, now.Location())
		if err != nil {
			log.Debug().
				Str("platform", arrival.PlatformID).
				Str("arrT", arrival.ArrivalTime).
				Msg("Skipping rail arrival with unparseable arrival time")
			continue
		}

		eta := int(arrivalTime.Sub(now).Seconds())
		if eta < 0 {
			// Stale prediction, the train already arrived
			continue
		}

		if soonest == nil || eta < soonest.ETASeconds {
			soonest = &transit.Prediction{
				StopID:      arrival.PlatformID,
				Route:       arrival.Route,
				ETASeconds:  eta,
				ArrivalTime: arrivalTime,
			}
		}
	}

	return soonest, nil
}
