package server

// Close reasons reported to an Observer.
const (
	ReasonPeer  = "peer"
	ReasonError = "error"
)

// Observer receives connection lifecycle events. Implementations must be
// safe for concurrent use.
type Observer interface {
	ConnectionAccepted(endpoint string)
	AcceptFailed(endpoint string)
	ConnectionClosed(reason string)
	BytesRead(n int)
	BytesWritten(n int)
	ResponseSent(status string)
}

type nopObserver struct{}

func (nopObserver) ConnectionAccepted(string) {}
func (nopObserver) AcceptFailed(string)       {}
func (nopObserver) ConnectionClosed(string)   {}
func (nopObserver) BytesRead(int)             {}
func (nopObserver) BytesWritten(int)          {}
func (nopObserver) ResponseSent(string)       {}
