package store

// CaptureSession is the per-user guided-capture state held in memory (or
// Redis). Exactly one exists per username at a time.
type CaptureSession struct {
	Username  string            `json:"username"`
	Active    bool              `json:"active"`
	StepIndex int               `json:"step_index"`
	Collected map[string]string `json:"collected"`
}

// NewCaptureSession returns the idle session for a user.
func NewCaptureSession(username string) *CaptureSession {
	return &CaptureSession{
		Username:  username,
		Collected: make(map[string]string),
	}
}

// Reset discards any partial capture and returns the session to idle.
func (s *CaptureSession) Reset() {
	s.Active = false
	s.StepIndex = 0
	s.Collected = make(map[string]string)
}
