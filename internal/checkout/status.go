package checkout

type Status string

const (
	StatusInitiated        Status = "INITIATED"
	StatusAwaitingCallback Status = "AWAITING_CALLBACK"
	StatusVerifying        Status = "VERIFYING"
	StatusPaid             Status = "PAID"
	StatusFailed           Status = "FAILED"
	StatusCancelled        Status = "CANCELLED"
)

// VERIFYING may re-enter itself: a user reloading the callback page
// after a gateway timeout retries the same verification.
var transitions = map[Status][]Status{
	StatusInitiated:        {StatusAwaitingCallback, StatusFailed},
	StatusAwaitingCallback: {StatusVerifying, StatusCancelled},
	StatusVerifying:        {StatusVerifying, StatusPaid, StatusFailed},
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, t := range transitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

func (s Status) IsTerminal() bool {
	return s == StatusPaid || s == StatusFailed || s == StatusCancelled
}

func (s Status) String() string {
	return string(s)
}
