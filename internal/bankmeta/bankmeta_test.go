package bankmeta

import (
	"encoding/json"
	"testing"
	"time"
)

func TestBankMetaDataString(t *testing.T) {
	meta := &BankMetaData{
		Identifier:   "westbank",
		Floors:       8,
		Cars:         3,
		TickInterval: 2 * time.Second,
	}

	serialised := meta.String()
	if serialised == "" {
		t.Fatal("String() = \"\", expected JSON")
	}

	var roundTrip BankMetaData
	if err := json.Unmarshal([]byte(serialised), &roundTrip); err != nil {
		t.Fatalf("Unmarshal(%q) failed: %v", serialised, err)
	}
	if roundTrip != *meta {
		t.Errorf("round trip = %+v, expected %+v", roundTrip, *meta)
	}
}
