package state

import (
	"github.com/sidereusnuntius/goreads/internal/config"
	"github.com/sidereusnuntius/goreads/internal/db"
)

type State struct {
	DB     db.DB
	Config config.Configuration
}
