package api

import (
	"github.com/shopspring/decimal"

	"github.com/giovaniif/device-rental/domain/account"
	"github.com/giovaniif/device-rental/domain/item"
)

type seedAccount struct {
	username string
	password string
	role     account.Role
}

var seedItems = []item.Item{
	{Id: "D001", Name: "Speaker", Description: "High power speaker", PricePerDay: decimal.NewFromInt(100), Stock: 10},
	{Id: "D002", Name: "Microphone", Description: "Wireless mic", PricePerDay: decimal.NewFromInt(50), Stock: 15},
}

var seedAccounts = []seedAccount{
	{username: "cust1", password: "pass1", role: account.RoleCustomer},
	{username: "admin", password: "adminpass", role: account.RoleStaff},
}

func seed(items item.Repository, accounts account.Repository) error {
	for _, it := range seedItems {
		if err := items.Add(it); err != nil {
			return err
		}
	}
	for _, a := range seedAccounts {
		if err := accounts.Register(a.username, a.password, a.role); err != nil {
			return err
		}
	}
	return nil
}
