package memory

import (
	"github.com/tinoosan/smartbudget/internal/service/budget"
	"github.com/tinoosan/smartbudget/internal/service/user"
)

// Compile-time interface assertions documenting which interfaces Store satisfies.
var (
	_ budget.Repo   = (*Store)(nil)
	_ budget.Writer = (*Store)(nil)
	_ user.Repo     = (*Store)(nil)
	_ user.Writer   = (*Store)(nil)
)
