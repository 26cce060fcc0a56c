package graph

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/language/ast"
	"github.com/graphql-go/graphql/language/parser"
)

type Request struct {
	Query         string                 `json:"query" form:"query"`
	Variables     map[string]interface{} `json:"variables"`
	OperationName string                 `json:"operationName" form:"operationName"`
}

// isMutation reports whether the operation a request selects is a mutation.
// A document that does not parse is left for graphql.Do to report.
func isMutation(query, operationName string) bool {
	doc, err := parser.Parse(parser.ParseParams{Source: query})

	if err != nil {
		return false
	}

	for _, def := range doc.Definitions {
		op, ok := def.(*ast.OperationDefinition)
		if !ok {
			continue
		}

		if operationName != "" && (op.Name == nil || op.Name.Value != operationName) {
			continue
		}

		if op.Operation == ast.OperationTypeMutation {
			return true
		}
	}

	return false
}

// Handler serves GraphQL over HTTP: POST with a JSON body or GET with query
// parameters. GET only runs queries. Resolver failures are reported in the
// response's errors list with status 200.
func Handler(schema graphql.Schema) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req Request

		if ctx.Request.Method == http.MethodGet {
			req.Query = ctx.Query("query")
			req.OperationName = ctx.Query("operationName")

			if raw := ctx.Query("variables"); raw != "" {
				if err := json.Unmarshal([]byte(raw), &req.Variables); err != nil {
					ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid variables"})
					return
				}
			}
		} else if err := ctx.ShouldBindJSON(&req); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}

		if req.Query == "" {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Query is required"})
			return
		}

		if ctx.Request.Method == http.MethodGet && isMutation(req.Query, req.OperationName) {
			ctx.Header("Allow", http.MethodPost)
			ctx.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Mutations require POST"})
			return
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			OperationName:  req.OperationName,
			Context:        ctx.Request.Context(),
		})

		ctx.JSON(http.StatusOK, result)
	}
}
