package bustracker

import (
	"encoding/xml"
	"io"

	"golang.org/x/net/html/charset"
)

// Response is the Bus Tracker getpredictions document (<bustime-response>).
type Response struct {
	XMLName xml.Name `xml:"bustime-response"`

	Predictions []ArrivalPrediction `xml:"prd"`
	Errors      []ResponseError     `xml:"error"`
}

type ArrivalPrediction struct {
	Timestamp      string `xml:"tmstmp"`
	Type           string `xml:"typ"`
	StopName       string `xml:"stpnm"`
	StopID         string `xml:"stpid"`
	VehicleID      string `xml:"vid"`
	Route          string `xml:"rt"`
	RouteDirection string `xml:"rtdir"`
	Destination    string `xml:"des"`
	PredictedTime  string `xml:"prdtm"`
	Countdown      string `xml:"prdctdn"`
	Delayed        bool   `xml:"dly"`
}

// ResponseError is an API-reported error (e.g. "No service scheduled") for
// one of the requested stops.
type ResponseError struct {
	StopID  string `xml:"stpid"`
	Route   string `xml:"rt"`
	Message string `xml:"msg"`
}

func ParseXML(reader io.Reader) (*Response, error) {
	response := Response{}

	d := xml.NewDecoder(reader)
	d.CharsetReader = charset.NewReaderLabel

	if err := d.Decode(&response); err != nil {
		return nil, err
	}

	return &response, nil
}
