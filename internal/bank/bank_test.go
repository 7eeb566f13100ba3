package bank

import "testing"

func TestParseIdentifier(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		wantID int
		byID   bool
		isZero bool
	}{
		{name: "numeric string is an ID", raw: "42", wantID: 42, byID: true},
		{name: "zero-padded numeric is an ID", raw: "000123", wantID: 123, byID: true},
		{name: "plain name", raw: "Alice", byID: false},
		{name: "name with digits inside", raw: "Alice2", byID: false},
		{name: "blank means no lookup", raw: "", isZero: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ident := ParseIdentifier(tc.raw)
			if ident.IsZero() != tc.isZero {
				t.Fatalf("IsZero() = %v, want %v", ident.IsZero(), tc.isZero)
			}
			id, ok := ident.ID()
			if ok != tc.byID {
				t.Fatalf("ID() ok = %v, want %v", ok, tc.byID)
			}
			if tc.byID && id != tc.wantID {
				t.Fatalf("ID() = %d, want %d", id, tc.wantID)
			}
			if !tc.byID && !tc.isZero {
				name, ok := ident.Name()
				if !ok || name != tc.raw {
					t.Fatalf("Name() = %q, %v, want %q, true", name, ok, tc.raw)
				}
			}
		})
	}
}

func TestIdentifierMatches(t *testing.T) {
	a := Account{ID: 7, Name: "Alice", Balance: 10}
	if !ByID(7).Matches(a) {
		t.Fatal("ByID(7) should match account 7")
	}
	if ByID(8).Matches(a) {
		t.Fatal("ByID(8) should not match account 7")
	}
	if !ByName("Alice").Matches(a) {
		t.Fatal("ByName(Alice) should match")
	}
	if ByName("alice").Matches(a) {
		t.Fatal("name match must be exact")
	}
	if (Identifier{}).Matches(a) {
		t.Fatal("zero identifier must match nothing")
	}
}

func TestFormatterMoney(t *testing.T) {
	long := Formatter{Name: "coin", Plural: "coins", Short: "c"}
	short := Formatter{Name: "coin", Plural: "coins", Short: "c", UseShort: true}

	tests := []struct {
		f      Formatter
		amount int64
		want   string
	}{
		{long, 0, "0 coins"},
		{long, 1, "1 coin"},
		{long, 250, "250 coins"},
		{short, 250, "c250"},
		{Formatter{}, 99, "99"},
	}
	for _, tc := range tests {
		if got := tc.f.Money(tc.amount); got != tc.want {
			t.Errorf("Money(%d) = %q, want %q", tc.amount, got, tc.want)
		}
	}
}

func TestServerAccount(t *testing.T) {
	if !ServerAccount.IsServer() {
		t.Fatal("ServerAccount must report IsServer")
	}
	if (Account{ID: 1, Name: "Server"}).IsServer() {
		t.Fatal("persisted accounts are never the server account")
	}
}
