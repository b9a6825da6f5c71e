package withdraw

// FlowState is where the withdrawal form stands. It is always re-derived from
// the current inputs, never stepped.
type FlowState int

const (
	FlowNoAccount FlowState = iota
	FlowInputEmpty
	FlowInputInvalid
	FlowValidNoWarning
	FlowValidWithWarning
	// FlowSubmitted belongs to whoever submits the transaction; DeriveFlowState never returns it.
	FlowSubmitted
)

func (f FlowState) String() string {
	switch f {
	case FlowNoAccount:
		return "no-account"
	case FlowInputEmpty:
		return "input-empty"
	case FlowInputInvalid:
		return "input-invalid"
	case FlowValidNoWarning:
		return "valid"
	case FlowValidWithWarning:
		return "valid-with-warning"
	case FlowSubmitted:
		return "submitted"
	default:
		return "unknown"
	}
}

func (f FlowState) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// DeriveFlowState maps the evaluated inputs onto a FlowState.
func DeriveFlowState(account string, status ValidationStatus, slippage SlippageResult) FlowState {
	switch {
	case account == "":
		return FlowNoAccount
	case status == StatusEmpty:
		return FlowInputEmpty
	case status != StatusValid:
		return FlowInputInvalid
	case slippage.ShouldWarn:
		return FlowValidWithWarning
	default:
		return FlowValidNoWarning
	}
}
