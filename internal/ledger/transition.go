package ledger

import (
	"barangay/internal/apperr"
	"barangay/internal/model"
)

// Action is an admin decision on a request's status.
type Action string

const (
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
	ActionProcess Action = "process"
	ActionReady   Action = "ready"
)

type transition struct {
	from  model.RequestStatus
	to    model.RequestStatus
	guard func(*model.DocumentRequest) error
}

var transitions = map[Action]transition{
	ActionApprove: {from: model.StatusPending, to: model.StatusProcessing},
	ActionReject:  {from: model.StatusPending, to: model.StatusRejected},
	ActionProcess: {from: model.StatusPaymentNeeded, to: model.StatusProcessing, guard: requireVerifiedPayment},
	ActionReady:   {from: model.StatusProcessing, to: model.StatusReadyForPickup},
}

func requireVerifiedPayment(r *model.DocumentRequest) error {
	if r.PaymentStatus != model.PaymentVerified {
		return invalidTransition("payment is %s, not verified", r.PaymentStatus)
	}
	return nil
}

// ParseAction maps a path segment such as "approve" to an Action.
func ParseAction(s string) (Action, error) {
	a := Action(s)
	if _, ok := transitions[a]; !ok {
		return "", &apperr.FieldError{Field: "action", Reason: "is not supported"}
	}
	return a, nil
}
