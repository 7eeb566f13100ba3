package bank

// MaxAccounts bounds the ID space. IDs are drawn from [1, MaxAccounts].
const MaxAccounts = 999999

// Account represents a bank account held in the ledger.
//
// ID is assigned once at creation and never reassigned. Name and Balance are
// mutable, but only through the ledger service; the entity itself never
// touches the store. Lookup identity is by ID or by Name, never by object
// identity.
type Account struct {
	ID      int
	Name    string
	Balance int64
}

// ServerAccount is the reserved well-known counterparty used when no human
// sender exists (server payouts, notices). It is never persisted and never
// queried from the store.
var ServerAccount = Account{ID: 0, Name: "Server"}

// IsServer reports whether a is the reserved server account.
func (a Account) IsServer() bool { return a.ID == ServerAccount.ID && a.Name == ServerAccount.Name }
