package enums

import "fmt"

// AccountStatus mirrors the state of a resident credit account upstream.
type AccountStatus string

const (
	AccountStatusActive  AccountStatus = "ACTIVE"
	AccountStatusBlocked AccountStatus = "BLOCKED"
)

var validAccountStatuses = []AccountStatus{
	AccountStatusActive,
	AccountStatusBlocked,
}

func (a AccountStatus) String() string {
	return string(a)
}

func (a AccountStatus) IsValid() bool {
	for _, candidate := range validAccountStatuses {
		if candidate == a {
			return true
		}
	}
	return false
}

func ParseAccountStatus(value string) (AccountStatus, error) {
	for _, candidate := range validAccountStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid account status %q", value)
}
