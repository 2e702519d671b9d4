package sqlite

import (
	"github.com/tinoosan/smartbudget/internal/service/budget"
	"github.com/tinoosan/smartbudget/internal/service/user"
)

var (
	_ budget.Repo   = (*Store)(nil)
	_ budget.Writer = (*Store)(nil)
	_ user.Repo     = (*Store)(nil)
	_ user.Writer   = (*Store)(nil)
)
