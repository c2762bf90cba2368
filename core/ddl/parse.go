package ddl

import (
	"cmp"
	"fmt"
	"strings"

	pg_query "github.com/pganalyze/pg_query_go/v6"
)

// DefaultMethod is the access method PostgreSQL applies when CREATE INDEX has no USING clause.
const DefaultMethod = "btree"

// ParsedIndex is the structure of a CREATE INDEX statement.
type ParsedIndex struct {
	Name    string   `json:"name"`
	Schema  string   `json:"schema,omitempty"`
	Table   string   `json:"table"`
	Unique  bool     `json:"unique"`
	Method  string   `json:"method"`
	Columns []string `json:"columns"`
	Where   string   `json:"where,omitempty"`
}

// ParseCreateIndex parses a single CREATE INDEX statement, such as the indexdef
// column of pg_indexes, using the PostgreSQL parser.
func ParseCreateIndex(sql string) (*ParsedIndex, error) {
	result, err := pg_query.Parse(sql)
	if err != nil {
		return nil, fmt.Errorf("failed to parse index definition: %w", err)
	}
	if len(result.Stmts) != 1 {
		return nil, fmt.Errorf("expected one statement, got %d", len(result.Stmts))
	}

	stmt := result.Stmts[0].GetStmt().GetIndexStmt()
	if stmt == nil {
		return nil, fmt.Errorf("statement is not CREATE INDEX")
	}

	parsed := &ParsedIndex{
		Name:   stmt.Idxname,
		Unique: stmt.Unique,
		Method: cmp.Or(stmt.AccessMethod, DefaultMethod),
	}
	if rel := stmt.Relation; rel != nil {
		parsed.Schema = rel.Schemaname
		parsed.Table = rel.Relname
	}

	for _, param := range stmt.IndexParams {
		elem := param.GetIndexElem()
		if elem == nil {
			continue
		}
		if elem.Name != "" {
			parsed.Columns = append(parsed.Columns, elem.Name)
			continue
		}
		expr, err := deparseExpression(elem.Expr)
		if err != nil {
			return nil, err
		}
		parsed.Columns = append(parsed.Columns, expr)
	}

	if stmt.WhereClause != nil {
		where, err := deparseExpression(stmt.WhereClause)
		if err != nil {
			return nil, err
		}
		parsed.Where = where
	}

	return parsed, nil
}

// deparseExpression renders a single expression node back to SQL by wrapping it
// in a throwaway SELECT.
func deparseExpression(expr *pg_query.Node) (string, error) {
	tmp := &pg_query.ParseResult{
		Stmts: []*pg_query.RawStmt{{
			Stmt: &pg_query.Node{
				Node: &pg_query.Node_SelectStmt{SelectStmt: &pg_query.SelectStmt{
					TargetList: []*pg_query.Node{{
						Node: &pg_query.Node_ResTarget{ResTarget: &pg_query.ResTarget{Val: expr}},
					}},
				}},
			},
		}},
	}

	deparsed, err := pg_query.Deparse(tmp)
	if err != nil {
		return "", fmt.Errorf("failed to deparse expression: %w", err)
	}
	out, found := strings.CutPrefix(deparsed, "SELECT ")
	if !found {
		return "", fmt.Errorf("unexpected deparse output %q", deparsed)
	}
	return strings.TrimSpace(out), nil
}
