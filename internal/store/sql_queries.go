package store

import (
	"github.com/MKhiriev/go-auth-service/models"
	"github.com/Masterminds/squirrel"
)

var userColumns = []string{"id", "username", "email", "password_hash", "created_at"}

// buildCreateUserQuery returns a single INSERT ... RETURNING id statement.
func buildCreateUserQuery(builder squirrel.StatementBuilderType, user models.User) (string, []any, error) {
	return builder.
		Insert(user.TableName()).
		Columns(userColumns...).
		Values(user.UserID, user.Username, user.Email, user.PasswordHash, user.CreatedAt).
		Suffix("RETURNING id").
		ToSql()
}

func buildFindUserQuery(builder squirrel.StatementBuilderType, column, value string) (string, []any, error) {
	return builder.
		Select(userColumns...).
		From(models.User{}.TableName()).
		Where(squirrel.Eq{column: value}).
		ToSql()
}
