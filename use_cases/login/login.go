package login

import (
	"github.com/giovaniif/device-rental/domain/account"
	"github.com/giovaniif/device-rental/protocols"
)

type Login struct {
	accountRepository account.Repository
	tokenIssuer       protocols.TokenIssuer
}

func NewLogin(accountRepository account.Repository, tokenIssuer protocols.TokenIssuer) *Login {
	return &Login{
		accountRepository: accountRepository,
		tokenIssuer:       tokenIssuer,
	}
}

func (l *Login) Login(input Input) (Output, error) {
	identity, err := l.accountRepository.Authenticate(input.Username, input.Password)
	if err != nil {
		return Output{}, err
	}
	token, err := l.tokenIssuer.Issue(identity)
	if err != nil {
		return Output{}, err
	}
	return Output{Identity: identity, Token: token}, nil
}

type Input struct {
	Username string
	Password string
}

type Output struct {
	Identity account.Identity
	Token    string
}
