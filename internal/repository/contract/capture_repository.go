package contract

import "bestill-chatbot-be/pkg/store"

// CaptureRepository holds the per-user guided-capture sessions. Lock gives
// per-key isolation: two simultaneous requests for the same user must not
// race on step increments, while different users proceed in parallel.
type CaptureRepository interface {
	// Lock acquires the user's key lock and returns the release func.
	Lock(username string) func()

	// Get returns the user's session, creating an idle one if absent.
	Get(username string) *store.CaptureSession

	Save(session *store.CaptureSession)
	Delete(username string)
}
