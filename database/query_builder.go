package database

import (
	"fmt"
	"strings"
)

const (
	columnProjectID   = "project_id"
	columnProjectName = "project_name"
	columnActive      = "active"
	columnTaskID      = "task_id"
	columnTask        = "task"
	columnStatus      = "status"
)

// QueryBuilder helps build WHERE clauses safely
type QueryBuilder struct {
	dialect    Dialect
	conditions []string
	args       []interface{}
	argCount   int
}

func NewQueryBuilder(dialect Dialect) *QueryBuilder {
	return &QueryBuilder{
		dialect:    dialect,
		conditions: []string{},
		args:       []interface{}{},
		argCount:   1,
	}
}

func (qb *QueryBuilder) placeholder() string {
	if qb.dialect == DialectPostgres {
		return fmt.Sprintf("$%d", qb.argCount)
	}
	return "?"
}

func (qb *QueryBuilder) AddCondition(column string, value interface{}) {
	qb.conditions = append(qb.conditions, fmt.Sprintf("%s = %s", column, qb.placeholder()))
	qb.args = append(qb.args, value)
	qb.argCount++
}

// AddContains matches rows whose column contains term, ignoring case.
// term is expected to be lowercase and free of LIKE wildcards.
func (qb *QueryBuilder) AddContains(column, term string) {
	qb.conditions = append(qb.conditions,
		fmt.Sprintf("LOWER(%s) LIKE %s", column, qb.placeholder()))
	qb.args = append(qb.args, "%"+term+"%")
	qb.argCount++
}

func (qb *QueryBuilder) WhereClause() string {
	if len(qb.conditions) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(qb.conditions, " AND ")
}

func (qb *QueryBuilder) Args() []interface{} {
	return qb.args
}

func (qb *QueryBuilder) NextArgNum() int {
	return qb.argCount
}
