package auth

// Decision is the result of an authorization query over a session.
type Decision string

const (
	DecisionAllowed               Decision = "allowed"
	DecisionDeniedUnauthenticated Decision = "denied-unauthenticated"
	DecisionDeniedForbidden       Decision = "denied-forbidden"
)

// Authorize decides whether s may access a view requiring one of required.
// An empty required set only demands authentication.
func Authorize(s Session, required ...Role) Decision {
	if !s.IsAuthenticated() {
		return DecisionDeniedUnauthenticated
	}
	if len(required) > 0 && !s.HasRole(required...) {
		return DecisionDeniedForbidden
	}
	return DecisionAllowed
}

// Outcome is what the route guard does with a navigation.
type Outcome string

const (
	OutcomePending              Outcome = "pending"
	OutcomeAllow                Outcome = "allow"
	OutcomeRedirectLogin        Outcome = "redirect-login"
	OutcomeRedirectUnauthorized Outcome = "redirect-unauthorized"
)

// GuardOutcome maps a session snapshot and its authorization decision to a navigation outcome.
// The guard holds no state of its own; it is evaluated on every request.
func GuardOutcome(s Session, d Decision) Outcome {
	if !s.IsSettled() {
		return OutcomePending
	}
	switch d {
	case DecisionAllowed:
		return OutcomeAllow
	case DecisionDeniedForbidden:
		return OutcomeRedirectUnauthorized
	default:
		return OutcomeRedirectLogin
	}
}
