package bankmeta

import (
	"encoding/json"
	"time"

	"github.com/elevlab/dispatch/internal/logger"
)

var Log = logger.GetLogger()

// BankMetaData describes one running elevator bank.
type BankMetaData struct {
	Identifier   string        `json:"identifier"`
	Floors       int           `json:"floors"`
	Cars         int           `json:"cars"`
	TickInterval time.Duration `json:"tick_interval"`
}

func (bankMetaData *BankMetaData) String() string {
	jsonData, err := json.Marshal(bankMetaData)
	if err != nil {
		Log.Error().Msg("Error serialising BankMetaData to JSON")
		return ""
	}
	return string(jsonData)
}
