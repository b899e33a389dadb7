package entity

// AccountMethod names an operation the wallet SDK exposes on an account.
type AccountMethod string

const (
	MethodQuoteSendTransaction AccountMethod = "quoteSendTransaction"
	MethodTransfer             AccountMethod = "transfer"
	MethodQuoteTransfer        AccountMethod = "quoteTransfer"
	MethodSign                 AccountMethod = "sign"
	MethodVerify               AccountMethod = "verify"
)

// AccountCallParams carries the arguments of an account method call.
// Native sends use To/Value, token sends use Recipient/Amount/Token.
type AccountCallParams struct {
	To        string `json:"to,omitempty"`
	Value     string `json:"value,omitempty"`
	Recipient string `json:"recipient,omitempty"`
	Amount    string `json:"amount,omitempty"`
	Token     string `json:"token,omitempty"`
	Message   string `json:"message,omitempty"`
	Signature string `json:"signature,omitempty"`
}

// AccountCallResult is the mock response of an account method call.
type AccountCallResult struct {
	Method    AccountMethod `json:"method"`
	Network   string        `json:"network"`
	Index     int           `json:"index"`
	From      string        `json:"from,omitempty"`
	To        string        `json:"to,omitempty"`
	Token     string        `json:"token,omitempty"`
	Value     string        `json:"value,omitempty"`
	Fee       string        `json:"fee,omitempty"`
	Hash      string        `json:"hash,omitempty"`
	Signature string        `json:"signature,omitempty"`
	Valid     *bool         `json:"isValid,omitempty"`
}
