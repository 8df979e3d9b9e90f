package protocols

import "github.com/giovaniif/device-rental/domain/account"

type TokenIssuer interface {
	Issue(identity account.Identity) (string, error)
}
