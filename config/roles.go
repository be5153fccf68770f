package config

import (
	"strings"

	domainuser "github.com/target/mmk-usersession/internal/domain/user"
)

// RoleConfig holds the role ids that mark vendors, managers and directors.
type RoleConfig struct {
	VendorID   string `env:"VENDOR_ID"   envDefault:"b3ab233d-75bd-4477-8520-e4c3a4681bea"`
	ManagerID  string `env:"MANAGER_ID"  envDefault:"f0fa8dc0-6962-4d03-886d-650eafe194ed"`
	DirectorID string `env:"DIRECTOR_ID" envDefault:"cd62eb09-a31f-4659-92e0-cbfbff9574d8"`
}

// Sanitize trims whitespace from the configured ids.
func (c *RoleConfig) Sanitize() {
	c.VendorID = strings.TrimSpace(c.VendorID)
	c.ManagerID = strings.TrimSpace(c.ManagerID)
	c.DirectorID = strings.TrimSpace(c.DirectorID)
}

// RoleIDs converts the config into the domain role table.
func (c RoleConfig) RoleIDs() domainuser.RoleIDs {
	return domainuser.RoleIDs{
		Vendor:   c.VendorID,
		Manager:  c.ManagerID,
		Director: c.DirectorID,
	}
}
