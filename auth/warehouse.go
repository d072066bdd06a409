package auth

import (
	"os"

	"golang.org/x/crypto/bcrypt"
)

const warehouseUserID = "warehouse"

// Warehouse managers are a local credential, not a backend account: the
// operational view must stay reachable even when the customer backend is
// down. WAREHOUSE_EMAIL and the bcrypt WAREHOUSE_PASSWORD_HASH come from
// the environment; when either is unset the fallback is disabled.
func warehouseLogin(email, password string) bool {
	configuredEmail := os.Getenv("WAREHOUSE_EMAIL")
	passwordHash := os.Getenv("WAREHOUSE_PASSWORD_HASH")
	if configuredEmail == "" || passwordHash == "" {
		return false
	}
	if email != configuredEmail {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password)) == nil
}
