package account

type Role string

const (
	RoleCustomer Role = "customer"
	RoleStaff    Role = "staff"
)

type Account struct {
	Username     string
	PasswordHash []byte
	Role         Role
}

// Identity is an already authenticated caller.
type Identity struct {
	Username string
	Role     Role
}

func (i Identity) IsStaff() bool {
	return i.Role == RoleStaff
}

type Repository interface {
	Register(username, password string, role Role) error
	Authenticate(username, password string) (Identity, error)
}
