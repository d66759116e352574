package metrics

// Attribute keys shared by every instrument.
const (
	AttrMethod   = "method"
	AttrPath     = "path"
	AttrStatus   = "status"
	AttrEndpoint = "endpoint"
	AttrOutcome  = "outcome"
)

// Values of AttrOutcome.
const (
	OutcomeHit     = "hit"
	OutcomeMiss    = "miss"
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

func cacheOutcome(hit bool) string {
	if hit {
		return OutcomeHit
	}
	return OutcomeMiss
}

func errOutcome(err error) string {
	if err != nil {
		return OutcomeError
	}
	return OutcomeSuccess
}
