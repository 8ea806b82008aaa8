package notify

import (
	"encoding/json"
	"time"

	"github.com/lixenwraith/rhythm-detective/constants"
)

// Record is the completion message delivered to every sink
type Record struct {
	Type          string    `json:"type"`
	BlockID       string    `json:"blockId"`
	Completed     bool      `json:"completed"`
	Score         int       `json:"score"`
	MaxScore      int       `json:"maxScore"`
	PlaythroughID string    `json:"playthroughId"`
	CompletedAt   time.Time `json:"completedAt"`
}

// NewRecord builds a completion record; an empty blockID falls back to the default
func NewRecord(blockID, playthroughID string, score, maxScore int, at time.Time) Record {
	if blockID == "" {
		blockID = constants.DefaultBlockID
	}
	return Record{
		Type:          constants.CompletionEventType,
		BlockID:       blockID,
		Completed:     true,
		Score:         score,
		MaxScore:      maxScore,
		PlaythroughID: playthroughID,
		CompletedAt:   at.UTC(),
	}
}

// Marshal returns the JSON wire form
func (r Record) Marshal() ([]byte, error) {
	return json.Marshal(r)
}
