package utils

import (
	"database/sql"
	"errors"
)

// IsSQLNoRowsError reports whether err means an empty SQL result.
func IsSQLNoRowsError(err error) bool {
	return err != nil && errors.Is(err, sql.ErrNoRows)
}
