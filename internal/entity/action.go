package entity

const (
	ActionTypeURL    = "ir.actions.act_url"
	ActionTargetSelf = "self"
)

// URLAction tells the client to open URL, the way the accounting UI expects
// from a server action.
type URLAction struct {
	Type   string `json:"type"`
	URL    string `json:"url"`
	Target string `json:"target"`
}
