// Package catalog_repo implements the catalog repositories over PostgreSQL.
package catalog_repo

import (
	"github.com/Masterminds/squirrel"
)

func builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}
