package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// MySQL error 1062: duplicate entry for a unique key.
const mysqlDupEntry = 1062

// IsDuplicate reports whether err is a unique-constraint violation. Callers
// that check-then-insert use it to catch the race the check cannot close.
func IsDuplicate(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlDupEntry
}
