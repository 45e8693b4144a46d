package actions

// ReceiptStatus is the outcome of the receipt an action was part of.
type ReceiptStatus uint8

const (
	ReceiptStatusFailure ReceiptStatus = 1
	ReceiptStatusSuccess ReceiptStatus = 2
)

func (s ReceiptStatus) String() string {
	switch s {
	case ReceiptStatusFailure:
		return "Failure"
	case ReceiptStatusSuccess:
		return "Success"
	default:
		return "Unknown"
	}
}

func (s ReceiptStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ActionKind is the action type stored in the actions table.
type ActionKind uint8

const (
	ActionCreateAccount  ActionKind = 1
	ActionDeployContract ActionKind = 2
	ActionFunctionCall   ActionKind = 3
	ActionTransfer       ActionKind = 4
	ActionStake          ActionKind = 5
	ActionAddKey         ActionKind = 6
	ActionDeleteKey      ActionKind = 7
	ActionDeleteAccount  ActionKind = 8
	ActionDelegate       ActionKind = 9
)

var actionKindNames = map[ActionKind]string{
	ActionCreateAccount:  "CreateAccount",
	ActionDeployContract: "DeployContract",
	ActionFunctionCall:   "FunctionCall",
	ActionTransfer:       "Transfer",
	ActionStake:          "Stake",
	ActionAddKey:         "AddKey",
	ActionDeleteKey:      "DeleteKey",
	ActionDeleteAccount:  "DeleteAccount",
	ActionDelegate:       "Delegate",
}

func (k ActionKind) String() string {
	if name, ok := actionKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

func (k ActionKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Action is the subset of an actions row the API reads.
// Status and Kind are stored as UInt8; use ReceiptStatus and ActionKind to interpret them.
type Action struct {
	BlockHeight    uint64  `ch:"block_height"`
	BlockTimestamp uint64  `ch:"block_timestamp"`
	ReceiptID      string  `ch:"receipt_id"`
	AccountID      string  `ch:"account_id"`
	PublicKey      *string `ch:"public_key"`
	Status         uint8   `ch:"status"`
	Kind           uint8   `ch:"action"`
}

func (a Action) ReceiptStatus() ReceiptStatus {
	return ReceiptStatus(a.Status)
}

func (a Action) ActionKind() ActionKind {
	return ActionKind(a.Kind)
}
