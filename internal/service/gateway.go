package service

import "bitwise74/file-linker/internal/model"

// Decision is the outcome of asking the gateway whether a request may get
// the object behind a link. Nothing is remembered between requests.
type Decision int

const (
	// Granted releases the object reference for this request only
	Granted Decision = iota
	// Challenge means the caller has to be shown the password prompt
	Challenge
	// Rejected is a failed submission, the prompt is shown again with a 401
	Rejected
)

func (d Decision) String() string {
	switch d {
	case Granted:
		return "granted"
	case Challenge:
		return "challenge"
	case Rejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Probe decides a bare request (no credential submitted)
func Probe(l *model.Link) Decision {
	d := Granted
	if l.Locked() {
		d = Challenge
	}

	gatewayDecisionsTotal.WithLabelValues(d.String()).Inc()
	return d
}

// Submit decides a request carrying a credential. The comparison is plain,
// case sensitive equality with no attempt counting.
func Submit(l *model.Link, credential string) Decision {
	d := Granted
	if l.Locked() && (credential == "" || credential != *l.Password) {
		d = Rejected
	}

	gatewayDecisionsTotal.WithLabelValues(d.String()).Inc()
	return d
}
