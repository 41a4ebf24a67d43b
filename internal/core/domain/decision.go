package domain

// GateAction is the terminal outcome of the access gate for one request.
type GateAction string

const (
	GateAllow    GateAction = "allow"
	GateRedirect GateAction = "redirect"
	GateReject   GateAction = "reject"
)

// Denial reasons. They are logged and counted, never returned to the caller.
const (
	ReasonAnonymous    = "anonymous"
	ReasonNotAdmin     = "not_admin"
	ReasonDisabled     = "disabled"
	ReasonNotFound     = "profile_not_found"
	ReasonLookupFailed = "lookup_failed"
)

// Decision is the result of evaluating a request against the access policy.
type Decision struct {
	Class    RouteClass
	Action   GateAction
	Status   int    // response status for redirect/reject
	Location string // redirect target
	Message  string // generic JSON error message for reject
	Reason   string // internal denial reason
	Security SecurityPolicy
	Identity *Identity
	Access   *Access // set when a role lookup succeeded
}

// Allowed reports whether the request may proceed downstream.
func (d Decision) Allowed() bool {
	return d.Action == GateAllow
}
