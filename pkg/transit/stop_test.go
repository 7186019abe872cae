package transit

import "testing"

func TestStopTopic(t *testing.T) {
	tests := []struct {
		name     string
		stop     Stop
		expected string
	}{
		{
			name:     "bus stop with route",
			stop:     Stop{ID: "1151", Route: "77"},
			expected: "CTApredictions/BUS/1151/77",
		},
		{
			name:     "bus stop with express route",
			stop:     Stop{ID: "5676", Route: "X9"},
			expected: "CTApredictions/BUS/5676/X9",
		},
		{
			name:     "rail platform",
			stop:     Stop{ID: "30231"},
			expected: "CTApredictions/RAIL/30231",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if topic := tc.stop.Topic(); topic != tc.expected {
				t.Errorf("Topic() = %q, expected %q", topic, tc.expected)
			}
		})
	}
}

func TestStopIsRail(t *testing.T) {
	if (Stop{ID: "30016"}).IsRail() != true {
		t.Error("platform without route should be rail")
	}
	if (Stop{ID: "5670", Route: "80"}).IsRail() != false {
		t.Error("stop with route should not be rail")
	}
}
