package auth

import (
	_ "embed"
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/casbin/casbin/v2/util"
	sqlxadapter "github.com/memwey/casbin-sqlx-adapter"
)

// Visitor is the subject every request is checked as. The sites have no
// login, so all traffic shares one set of permissions.
const Visitor = "anonymous"

//go:embed model.conf
var modelText string

// NewEnforcer creates a Casbin enforcer whose policies live in the
// casbin_rule table of the application database.
//
// Parameters:
//   - driverName: the database driver ("sqlite3" or "mysql").
//   - dsn: the Data Source Name for the database connection.
func NewEnforcer(driverName, dsn string) (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, fmt.Errorf("load casbin model: %w", err)
	}

	opts := &sqlxadapter.AdapterOptions{
		DriverName:     driverName,
		DataSourceName: dsn,
		TableName:      "casbin_rule",
	}
	adapter := sqlxadapter.NewAdapterFromOptions(opts)

	enforcer, err := casbin.NewEnforcer(m, adapter)
	if err != nil {
		return nil, err
	}
	enforcer.AddFunction("keyMatch2", util.KeyMatch2Func)

	if err := enforcer.LoadPolicy(); err != nil {
		return nil, err
	}
	return enforcer, nil
}

// NewMemoryEnforcer creates an enforcer with the same model and no storage.
// Policies added to it are lost when it is dropped.
func NewMemoryEnforcer() (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, fmt.Errorf("load casbin model: %w", err)
	}
	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}
	enforcer.AddFunction("keyMatch2", util.KeyMatch2Func)
	return enforcer, nil
}
