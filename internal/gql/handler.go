package gql

import (
	"net/http"

	"github.com/dfryer1193/photogram/api"
	"github.com/gin-gonic/gin"
	"github.com/graph-gophers/graphql-go"
)

// Handler executes GraphQL requests against schema. Field errors are part of
// a 200 response; only an unreadable request body is a 400.
func Handler(schema *graphql.Schema) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req api.GraphQLRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, api.GraphQLErrorResponse{
				Errors: []api.GraphQLError{{Message: "invalid GraphQL request: " + err.Error()}},
			})
			return
		}

		resp := schema.Exec(c.Request.Context(), req.Query, req.OperationName, req.Variables)
		c.JSON(http.StatusOK, resp)
	}
}
