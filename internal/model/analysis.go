package model

import "time"

// AnalyzeRequest is the body of POST /v1/analyze
type AnalyzeRequest struct {
	Text        string `json:"text"`
	Topic       string `json:"topic,omitempty"`
	CustomTopic string `json:"customTopic,omitempty"`
	Scale       string `json:"scale,omitempty"`
	SessionID   string `json:"sessionId,omitempty"` // WebSocket session to notify
}

// Analysis is one completed analysis, as returned to the client and stored in history
type Analysis struct {
	ID        string      `json:"id" bson:"_id"`
	Scale     string      `json:"scale" bson:"scale"`
	Topic     string      `json:"topic,omitempty" bson:"topic,omitempty"`
	Text      string      `json:"text" bson:"text"`
	Result    ScoreResult `json:"result" bson:"result"`
	Degraded  bool        `json:"degraded" bson:"degraded"`         // Result came from the plain-text fallback
	Reason    string      `json:"reason,omitempty" bson:"reason"` // Why the fallback was used
	Cached    bool        `json:"cached" bson:"-"`
	CreatedAt time.Time   `json:"createdAt" bson:"createdAt"`
}

// Display carries the UI hints derived from the score
type Display struct {
	Category    string `json:"category"`
	Label       string `json:"label"`
	Badge       string `json:"badge"`
	ScoreColor  string `json:"scoreColor"`
	LevelColor  string `json:"levelColor"`
	Description string `json:"description"`
	Percent     int    `json:"percent"`
	Max         int    `json:"max"`
	LowLabel    string `json:"lowLabel"`
	HighLabel   string `json:"highLabel"`
}

// AnalyzeResponse is the body returned by POST /v1/analyze
type AnalyzeResponse struct {
	Analysis *Analysis `json:"analysis"`
	Display  *Display  `json:"display"`
}
