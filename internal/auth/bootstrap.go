// AngelaMos | 2026
// bootstrap.go

package auth

import (
	"github.com/carterperez-dev/templates/energy-service/internal/config"
)

// Grant is the starting state handed to a newly registered identity.
type Grant struct {
	Energy  int64
	IsAdmin bool
}

// BootstrapPolicy maps normalized emails to seeded grants. Any email not
// listed receives the default grant.
type BootstrapPolicy struct {
	seeds    map[string]Grant
	fallback Grant
}

func NewBootstrapPolicy(cfg config.BootstrapConfig) *BootstrapPolicy {
	p := &BootstrapPolicy{
		seeds:    make(map[string]Grant, len(cfg.Identities)+1),
		fallback: Grant{Energy: cfg.DefaultEnergy},
	}

	for _, id := range cfg.Identities {
		p.seeds[NormalizeEmail(id.Email)] = Grant{
			Energy:  id.Energy,
			IsAdmin: id.IsAdmin,
		}
	}

	if email := NormalizeEmail(cfg.AdminEmail); email != "" {
		p.seeds[email] = Grant{Energy: cfg.AdminEnergy, IsAdmin: true}
	}

	return p
}

func (p *BootstrapPolicy) GrantFor(email string) Grant {
	if g, ok := p.seeds[NormalizeEmail(email)]; ok {
		return g
	}
	return p.fallback
}
