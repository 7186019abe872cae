package traintracker

import (
	"encoding/xml"
	"io"

	"golang.org/x/net/html/charset"
)

// Response is the Train Tracker ttarrivals document (<ctatt>).
type Response struct {
	XMLName xml.Name `xml:"ctatt"`

	Timestamp    string `xml:"tmst"`
	ErrorCode    string `xml:"errCd"`
	ErrorMessage string `xml:"errNm"`

	Arrivals []ArrivalPrediction `xml:"eta"`
}

type ArrivalPrediction struct {
	StationID       string `xml:"staId"`
	PlatformID      string `xml:"stpId"`
	StationName     string `xml:"staNm"`
	PlatformDesc    string `xml:"stpDe"`
	RunNumber       string `xml:"rn"`
	Route           string `xml:"rt"`
	DestinationID   string `xml:"destSt"`
	DestinationName string `xml:"destNm"`
	Direction       string `xml:"trDr"`
	PredictedAt     string `xml:"prdt"`
	ArrivalTime     string `xml:"arrT"`
	Approaching     string `xml:"isApp"`
	Scheduled       string `xml:"isSch"`
	Delayed         string `xml:"isDly"`
	Faulted         string `xml:"isFlt"`
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
