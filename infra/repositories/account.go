package repositories

import (
	"errors"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/giovaniif/device-rental/domain"
	"github.com/giovaniif/device-rental/domain/account"
)

type AccountRepository struct {
	mutex    sync.RWMutex
	accounts map[string]account.Account
	cost     int
}

func NewAccountRepository() *AccountRepository {
	return &AccountRepository{
		accounts: make(map[string]account.Account),
		cost:     bcrypt.DefaultCost,
	}
}

func (r *AccountRepository) Register(username, password string, role account.Role) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return errors.New("username and password are required")
	}
	if role != account.RoleCustomer && role != account.RoleStaff {
		return errors.New("unknown role " + string(role))
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), r.cost)
	if err != nil {
		return err
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()
	if _, exists := r.accounts[username]; exists {
		return domain.NewAlreadyExistsError("account " + username)
	}
	r.accounts[username] = account.Account{Username: username, PasswordHash: hash, Role: role}
	return nil
}

func (r *AccountRepository) Authenticate(username, password string) (account.Identity, error) {
	r.mutex.RLock()
	stored, ok := r.accounts[strings.TrimSpace(username)]
	r.mutex.RUnlock()
	if !ok {
		return account.Identity{}, domain.ErrAuthFailed
	}
	if err := bcrypt.CompareHashAndPassword(stored.PasswordHash, []byte(password)); err != nil {
		return account.Identity{}, domain.ErrAuthFailed
	}
	return account.Identity{Username: stored.Username, Role: stored.Role}, nil
}
