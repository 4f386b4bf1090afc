package service

// Progress event types pushed to a browser session
const (
	MsgAnalysisStarted   = "analysis_started"
	MsgAnalysisRetrying  = "analysis_retrying"
	MsgAnalysisCompleted = "analysis_completed"
	MsgAnalysisFailed    = "analysis_failed"
)

// Broadcaster interface for WebSocket broadcasting (avoids import cycle)
type Broadcaster interface {
	BroadcastToSession(sessionID string, msgType string, payload interface{})
}
