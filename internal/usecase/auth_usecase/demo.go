package auth

import (
	"strings"

	"clothco/internal/domain/model"
)

// デモ用の固定アカウント（DBには入れない）
type demoAccount struct {
	principal model.Principal
	password  string
}

var demoAccounts = []demoAccount{
	{
		principal: model.Principal{ID: "demo-admin", Email: "admin@example.com", Name: "Admin", Role: model.RoleAdmin},
		password:  "admin123",
	},
	{
		principal: model.Principal{ID: "demo-user", Email: "user@example.com", Name: "Demo User", Role: model.RoleUser},
		password:  "user123",
	},
}

func findDemo(email string) (demoAccount, bool) {
	email = normalizeEmail(email)
	for _, a := range demoAccounts {
		if a.principal.Email == email {
			return a, true
		}
	}
	return demoAccount{}, false
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
