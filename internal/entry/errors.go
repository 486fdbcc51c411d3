package entry

import (
	"fmt"

	"github.com/latchvault/latch-core/internal/latcherrors"
)

// ErrEmptyTitle is returned when Fields.Title is empty once trimmed.
var ErrEmptyTitle = fmt.Errorf("%w: title must not be empty", latcherrors.ErrInvalid)
