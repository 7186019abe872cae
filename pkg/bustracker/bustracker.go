// Package bustracker is a client for the CTA Bus Tracker prediction API.
package bustracker

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/ctabridge/ctabridge/pkg/transit"
	"github.com/rs/zerolog/log"
)

const DefaultBaseURL = "http://www.ctabustracker.com/bustime/api/v2"

// predictedTimeLayout is the prdtm format, minute resolution in Chicago
// local time.
const predictedTimeLayout = "20060102 15:04"

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

// GetPredictions fetches the raw prediction document for a single
// (stop, route) pair.
func (client *Client) GetPredictions(stop transit.Stop) (*Response, error) {
	params := url.Values{}
	params.Set("key", client.APIKey)
	params.Set("stpid", stop.ID)
	if stop.Route != "" {
		params.Set("rt", stop.Route)
	}

	requestURL := fmt.Sprintf("%s/getpredictions?%s", client.BaseURL, params.Encode())

	resp, err := client.httpClient.Get(requestURL)
	if err != nil {
		return nil, fmt.Errorf("bus tracker request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bus tracker returned status %d", resp.StatusCode)
	}

	response, err := ParseXML(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("bus tracker response parse: %w", err)
	}

	return response, nil
}

// SoonestPrediction returns the nearest upcoming arrival for the pair, or
// nil when the API has no prediction for it. API-reported per-stop errors
// ("No service scheduled" and friends) count as no prediction, not as a
// failure.
func (client *Client) SoonestPrediction(stop transit.Stop) (*transit.Prediction, error) {
	response, err := client.GetPredictions(stop)
	if err != nil {
		return nil, err
	}

	for _, responseError := range response.Errors {
		log.Debug().
			Str("stop", responseError.StopID).
			Str("route", responseError.Route).
			Str("message", responseError.Message).
			Msg("Bus tracker reported error for stop")
	}

	now := client.now()

	var soonest *transit.Prediction
	for _, arrival := range response.Predictions {
		arrivalTime, err := time.ParseInLocation(predictedTimeLayout, arrival.PredictedTime, now.Location())
		if err != nil {
			log.Debug().
				Str("stop", arrival.StopID).
				Str("prdtm", arrival.PredictedTime).
				Msg("Skipping bus prediction with unparseable arrival time")
			continue
		}

		eta := int(arrivalTime.Sub(now).Seconds())
		if eta < 0 {
			// Stale prediction, the vehicle already arrived
			continue
		}

		if soonest == nil || eta < soonest.ETASeconds {
			soonest = &transit.Prediction{
				StopID:      arrival.StopID,
				Route:       arrival.Route,
				ETASeconds:  eta,
				ArrivalTime: arrivalTime,
			}
		}
	}

	return soonest, nil
}
