package model

// ScoreResult is the structured rating extracted from a model response
type ScoreResult struct {
	Score           int      `json:"score" bson:"score"`
	Explanation     string   `json:"explanation" bson:"explanation"`
	Category        string   `json:"category" bson:"category"`
	ImprovementTips []string `json:"improvementTips" bson:"improvementTips"`
}

// Equal reports value equality, including tip order
func (r ScoreResult) Equal(other ScoreResult) bool {
	if r.Score != other.Score || r.Explanation != other.Explanation || r.Category != other.Category {
		return false
	}
	if len(r.ImprovementTips) != len(other.ImprovementTips) {
		return false
	}
	for i := range r.ImprovementTips {
		if r.ImprovementTips[i] != other.ImprovementTips[i] {
			return false
		}
	}
	return true
}
